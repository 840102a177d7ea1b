package views

import (
	"strings"

	"repopick/internal/domain"
)

// ItemView renders a single repository entry. One exists per live record in
// the backing collection; the list view owns its lifecycle.
type ItemView struct {
	repo       domain.Repository
	filterName string // lower-cased display name, computed once
	visible    bool
	selected   bool
}

// NewItemView creates a sub-view for a record. New views start visible; the
// picker applies the current filter before first paint.
func NewItemView(repo domain.Repository) *ItemView {
	return &ItemView{
		repo:       repo,
		filterName: strings.ToLower(repo.DisplayName()),
		visible:    true,
	}
}

// Repo returns the record this view renders
func (v *ItemView) Repo() domain.Repository {
	return v.repo
}

// FilterName returns the precomputed lower-cased display name
func (v *ItemView) FilterName() string {
	return v.filterName
}

// Visible reports whether the view passes the current filter
func (v *ItemView) Visible() bool {
	return v.visible
}

// SetVisible updates the show/hide state
func (v *ItemView) SetVisible(visible bool) {
	v.visible = visible
}

// Selected reports whether the view carries the selection marker
func (v *ItemView) Selected() bool {
	return v.selected
}

// SetSelected toggles the selection marker
func (v *ItemView) SetSelected(selected bool) {
	v.selected = selected
}

// Render renders the entry as one line. Hidden views render empty.
func (v *ItemView) Render(styles *Styles, cursorOn bool, showTool bool) string {
	if !v.visible {
		return ""
	}

	var parts []string

	if cursorOn {
		parts = append(parts, styles.Cursor.Render("> "))
	} else {
		parts = append(parts, "  ")
	}

	if v.selected {
		parts = append(parts, styles.Marker.Render("● "))
	} else {
		parts = append(parts, "  ")
	}

	name := v.repo.DisplayName()
	if v.selected {
		parts = append(parts, styles.Selected.Render(name))
	} else {
		parts = append(parts, name)
	}

	if showTool && v.repo.Tool != "" {
		parts = append(parts, styles.Tool.Render(" ("+v.repo.Tool+")"))
	}

	return strings.Join(parts, "")
}
