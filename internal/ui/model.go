package ui

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"repopick/internal/config"
	"repopick/internal/domain"
	"repopick/internal/eventbus"
	"repopick/internal/ui/picker"
	"repopick/internal/ui/views"
)

// searchIcon is the affordance that expands and collapses the search box
const searchIcon = "[/]"

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Top     key.Binding
	Bottom  key.Binding
	Select  key.Binding
	Confirm key.Binding
	Clear   key.Binding
	Search  key.Binding
	Details key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Top:     key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "first")),
		Bottom:  key.NewBinding(key.WithKeys("G"), key.WithHelp("G", "last")),
		Select:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
		Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Clear:   key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "clear selection")),
		Search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Details: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "details")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// Model is the application frame around the picker widget: header, search
// row, list, status line. The widget logic itself lives in the picker
// package.
type Model struct {
	bus    eventbus.EventBus
	cfg    *config.Config
	list   *views.ListView
	picker *picker.Picker
	styles *views.Styles
	input  textinput.Model
	keys   keyMap
	pager  *PagerOps

	cursor   int // index into the visible rows
	width    int
	height   int
	scanning bool
	status   string
	choice   *domain.Repository
	quitting bool
}

// NewModel creates the UI model around an attached picker
func NewModel(bus eventbus.EventBus, cfg *config.Config, list *views.ListView, pk *picker.Picker) *Model {
	input := textinput.New()
	input.Placeholder = "type to filter"
	input.Prompt = ""
	input.CharLimit = 64

	m := &Model{
		bus:    bus,
		cfg:    cfg,
		list:   list,
		picker: pk,
		styles: views.NewStyles(),
		input:  input,
		keys:   defaultKeyMap(),
		pager:  NewPagerOps(),
	}

	// Focus follows the settled state: reachable only while expanded. The
	// text value deliberately survives a collapse.
	pk.Search().SetOnSettle(func(st picker.SearchState) {
		if st == picker.Expanded {
			m.input.Focus()
		} else {
			m.input.Blur()
		}
	})

	return m
}

// SetProgram hands the running program to the pager for terminal handoff
func (m *Model) SetProgram(program *tea.Program) {
	m.pager.SetProgram(program)
}

// Choice returns the confirmed repository, or nil when the user cancelled
func (m *Model) Choice() *domain.Repository {
	return m.choice
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// animTick schedules the next animation frame
func animTick() tea.Cmd {
	return tea.Tick(20*time.Millisecond, func(t time.Time) tea.Msg {
		return animTickMsg(t)
	})
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		avail := msg.Width - len(searchIcon) - 7 // frame padding + markers
		if avail < 0 {
			avail = 0
		}
		m.picker.Search().SetMaxWidth(avail)
		m.input.Width = m.picker.Search().Width()
		return m, nil

	case animTickMsg:
		inFlight := m.picker.Search().Step()
		m.input.Width = m.picker.Search().Width()
		if inFlight {
			return m, animTick()
		}
		return m, nil

	case pagerDoneMsg:
		if msg.err != nil {
			log.Printf("Pager error: %v", msg.err)
			m.status = fmt.Sprintf("pager failed: %v", msg.err)
		}
		return m, nil

	case EventMsg:
		return m.handleEvent(msg.Event)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleEvent reacts to domain events forwarded from the bus
func (m *Model) handleEvent(event eventbus.DomainEvent) (tea.Model, tea.Cmd) {
	switch e := event.(type) {
	case eventbus.ScanStartedEvent:
		m.scanning = true
		m.status = "scanning for repositories..."
	case eventbus.ScanCompletedEvent:
		m.scanning = false
		m.status = fmt.Sprintf("%d working copies found", e.ReposFound)
	case eventbus.RepoAddedEvent, eventbus.RepoRemovedEvent:
		// The list container already synced itself; just keep the cursor
		// on a real row
		m.clampCursor()
	case eventbus.RepoSelectedEvent:
		if e.Repo != nil {
			m.status = fmt.Sprintf("selected %s", e.Repo.Name)
		} else {
			m.status = "selection cleared"
		}
	case eventbus.ErrorEvent:
		m.status = e.Message
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the search box is expanded, most keys feed the filter input
	if m.input.Focused() {
		switch {
		case msg.Type == tea.KeyEsc:
			return m, m.toggleSearch()
		case key.Matches(msg, m.keys.Confirm):
			return m.confirm()
		case msg.Type == tea.KeyUp:
			m.moveCursor(-1)
			return m, nil
		case msg.Type == tea.KeyDown:
			m.moveCursor(1)
			return m, nil
		case msg.Type == tea.KeyCtrlC:
			m.quitting = true
			return m, tea.Quit
		}

		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.picker.ApplyFilter(m.input.Value())
		m.clampCursor()
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Search):
		return m, m.toggleSearch()
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.cursor = len(m.list.VisibleIDs()) - 1
		m.clampCursor()
	case key.Matches(msg, m.keys.Select):
		if repo := m.cursorRepo(); repo != nil {
			m.picker.SelectRecord(repo)
		}
	case key.Matches(msg, m.keys.Confirm):
		return m.confirm()
	case key.Matches(msg, m.keys.Clear):
		m.picker.SelectRecord(nil)
	case key.Matches(msg, m.keys.Details):
		if repo := m.cursorRepo(); repo != nil {
			return m, m.showPager(detailsContent(*repo))
		}
	case key.Matches(msg, m.keys.Help):
		return m, m.showPager(helpContent())
	}
	return m, nil
}

// toggleSearch flips the search box; on an immediate settle no frames are
// needed
func (m *Model) toggleSearch() tea.Cmd {
	if m.picker.ToggleSearch() {
		return animTick()
	}
	m.input.Width = m.picker.Search().Width()
	return nil
}

// confirm locks in the highlighted repository (or the standing selection)
// and quits
func (m *Model) confirm() (tea.Model, tea.Cmd) {
	if repo := m.cursorRepo(); repo != nil {
		m.picker.SelectRecord(repo)
	}
	m.choice = m.picker.Selected()
	if m.choice == nil {
		return m, nil
	}
	m.quitting = true
	return m, tea.Quit
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *Model) clampCursor() {
	n := len(m.list.VisibleIDs())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// cursorRepo returns the record under the cursor, nil when the filter hides
// everything
func (m *Model) cursorRepo() *domain.Repository {
	ids := m.list.VisibleIDs()
	if len(ids) == 0 || m.cursor >= len(ids) {
		return nil
	}
	view, ok := m.list.Get(ids[m.cursor])
	if !ok {
		return nil
	}
	repo := view.Repo()
	return &repo
}

// showPager runs content through the ov pager off the UI loop
func (m *Model) showPager(content string) tea.Cmd {
	return func() tea.Msg {
		return pagerDoneMsg{err: m.pager.ShowInPager(content)}
	}
}

// renderSearchRow draws the affordance icon and the (possibly mid-
// animation) search input
func (m *Model) renderSearchRow() string {
	sb := m.picker.Search()

	if sb.Width() == 0 {
		return m.styles.Filter.Render(searchIcon) +
			m.styles.Dim.Render(" press / to search")
	}

	// The icon slides right as the input grows, ending at the far edge
	return m.input.View() + " " + m.styles.Filter.Render(searchIcon)
}

// View implements tea.Model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.styles.Title.Render("repopick"))
	b.WriteString("\n")
	b.WriteString(m.styles.Header.Render("Choose a repository"))
	b.WriteString("\n\n")
	b.WriteString(m.renderSearchRow())
	b.WriteString("\n\n")

	cursorID := -1
	if ids := m.list.VisibleIDs(); len(ids) > 0 && m.cursor < len(ids) {
		cursorID = ids[m.cursor]
	}
	b.WriteString(m.list.Render(cursorID, m.cfg.UISettings.ShowTool))
	b.WriteString("\n")

	var statusParts []string
	if term := m.picker.Filter(); term != "" {
		statusParts = append(statusParts, m.styles.Filter.Render(fmt.Sprintf("[Filter: %s]", term)))
	}
	if m.scanning {
		statusParts = append(statusParts, "scanning...")
	}
	if m.status != "" {
		statusParts = append(statusParts, m.status)
	}
	if len(statusParts) > 0 {
		b.WriteString(m.styles.Status.Render(strings.Join(statusParts, "  ")))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Help.Render("↑/↓ move · space select · enter confirm · / search · ? help · q quit"))

	return m.styles.Main.Render(b.String())
}
