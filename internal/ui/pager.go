package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"

	"repopick/internal/domain"
)

// PagerOps shows long-form content in the ov pager, temporarily taking the
// terminal over from Bubble Tea
type PagerOps struct {
	program *tea.Program
}

// NewPagerOps creates a new pager handler
func NewPagerOps() *PagerOps {
	return &PagerOps{}
}

// SetProgram gives the pager the running program so it can release and
// restore the terminal
func (p *PagerOps) SetProgram(program *tea.Program) {
	p.program = program
}

// ShowInPager displays content using the ov pager
func (p *PagerOps) ShowInPager(content string) error {
	if p.program == nil {
		return fmt.Errorf("program not set")
	}

	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}

	defer func() {
		// Small delay so ov has fully exited before the terminal comes back
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	cfg := oviewer.NewConfig()
	cfg.IsWriteOnExit = false
	cfg.IsWriteOriginal = false
	root.SetConfig(cfg)

	return root.Run()
}

// helpContent renders the key reference shown by the help pager
func helpContent() string {
	var b strings.Builder

	b.WriteString("repopick\n")
	b.WriteString("========\n\n")
	b.WriteString("Navigation\n")
	b.WriteString("  up/down, k/j   move between repositories\n")
	b.WriteString("  g/G            jump to first/last\n\n")
	b.WriteString("Selection\n")
	b.WriteString("  space          select the highlighted repository\n")
	b.WriteString("  enter          select and confirm\n")
	b.WriteString("  ctrl+x         clear the selection\n\n")
	b.WriteString("Search\n")
	b.WriteString("  /              expand or collapse the search box\n")
	b.WriteString("  esc            collapse the search box (text is kept)\n\n")
	b.WriteString("Other\n")
	b.WriteString("  i              repository details\n")
	b.WriteString("  ?              this help\n")
	b.WriteString("  q, ctrl+c      quit without choosing\n")

	return b.String()
}

// detailsContent renders the pager view for one repository
func detailsContent(repo domain.Repository) string {
	var b strings.Builder

	b.WriteString(repo.Name + "\n")
	b.WriteString(strings.Repeat("=", len(repo.Name)) + "\n\n")
	b.WriteString(fmt.Sprintf("Path:        %s\n", repo.Path))
	if repo.MirrorPath != "" {
		b.WriteString(fmt.Sprintf("Mirror path: %s\n", repo.MirrorPath))
	}
	b.WriteString(fmt.Sprintf("Tool:        %s\n", repo.Tool))
	b.WriteString(fmt.Sprintf("ID:          %d\n", repo.ID))

	return b.String()
}
