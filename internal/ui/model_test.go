package ui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repopick/internal/collection"
	"repopick/internal/config"
	"repopick/internal/domain"
	"repopick/internal/eventbus"
	"repopick/internal/ui/picker"
	"repopick/internal/ui/views"
)

func newTestModel(t *testing.T, names ...string) *Model {
	t.Helper()

	bus := eventbus.New()
	list := views.NewListView(views.NewStyles())
	list.Attach(bus)
	pk := picker.New(bus, list, picker.NewSearchBox(200))
	t.Cleanup(func() {
		pk.Close()
		list.Close()
	})

	coll := collection.New(bus)
	for _, name := range names {
		coll.Add(domain.Repository{Name: name, Tool: "Git", Visible: true})
	}

	m := NewModel(bus, config.Default(), list, pk)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// pumpAnimation steps the search box until it settles, the way the tick
// loop would
func pumpAnimation(t *testing.T, m *Model) {
	t.Helper()
	for i := 0; m.picker.Search().Animating(); i++ {
		require.Less(t, i, 1000, "animation never settled")
		m.Update(animTickMsg(time.Now()))
	}
}

func TestNavigateAndConfirm(t *testing.T) {
	m := newTestModel(t, "alpha", "Beta", "gamma")

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd, "confirm quits the program")
	require.NotNil(t, m.Choice())
	assert.Equal(t, "gamma", m.Choice().Name)
}

func TestSpaceSelectsWithoutQuitting(t *testing.T) {
	m := newTestModel(t, "alpha", "Beta")

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(keyRunes(" "))

	assert.Nil(t, m.Choice(), "space selects but does not confirm")
	require.NotNil(t, m.picker.Selected())
	assert.Equal(t, "Beta", m.picker.Selected().Name)
	assert.False(t, m.quitting)
}

func TestQuitWithoutChoosing(t *testing.T) {
	m := newTestModel(t, "alpha")

	_, cmd := m.Update(keyRunes("q"))
	require.NotNil(t, cmd)
	assert.Nil(t, m.Choice())
	assert.True(t, m.quitting)
}

func TestSearchExpandFocusesInput(t *testing.T) {
	m := newTestModel(t, "alpha", "Beta")

	_, cmd := m.Update(keyRunes("/"))
	require.NotNil(t, cmd, "expansion needs animation frames")
	assert.False(t, m.input.Focused(), "focus arrives on settle, not before")

	pumpAnimation(t, m)
	assert.True(t, m.input.Focused())
	assert.Greater(t, m.picker.Search().Width(), 0)
}

func TestTypingFiltersIncrementally(t *testing.T) {
	m := newTestModel(t, "alpha", "Beta", "gamma")

	m.Update(keyRunes("/"))
	pumpAnimation(t, m)

	m.Update(keyRunes("b"))
	assert.Equal(t, "b", m.picker.Filter())
	assert.Len(t, m.list.VisibleIDs(), 1, "only Beta contains 'b'")

	m.Update(keyRunes("e"))
	assert.Equal(t, "be", m.picker.Filter())
	assert.Len(t, m.list.VisibleIDs(), 1)
}

func TestCollapseKeepsFilterText(t *testing.T) {
	m := newTestModel(t, "alpha", "Beta", "gamma")

	m.Update(keyRunes("/"))
	pumpAnimation(t, m)
	m.Update(keyRunes("b"))
	m.Update(keyRunes("e"))

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	pumpAnimation(t, m)

	assert.False(t, m.input.Focused(), "collapsed input is non-interactive")
	assert.Equal(t, "be", m.input.Value(), "text survives the collapse")
	assert.Equal(t, "be", m.picker.Filter())
	assert.Len(t, m.list.VisibleIDs(), 1, "filter still applied")
}

func TestConfirmWhileFiltering(t *testing.T) {
	m := newTestModel(t, "alpha", "Beta", "gamma")

	m.Update(keyRunes("/"))
	pumpAnimation(t, m)
	m.Update(keyRunes("g"))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	require.NotNil(t, m.Choice())
	assert.Equal(t, "gamma", m.Choice().Name)
}

func TestCursorClampedWhenFilterShrinksList(t *testing.T) {
	m := newTestModel(t, "alpha", "Beta", "gamma")

	m.Update(keyRunes("G")) // cursor on last row
	assert.Equal(t, 2, m.cursor)

	m.Update(keyRunes("/"))
	pumpAnimation(t, m)
	m.Update(keyRunes("b"))

	assert.Equal(t, 0, m.cursor)
}

func TestScanEventsUpdateStatus(t *testing.T) {
	m := newTestModel(t, "alpha")

	m.Update(EventMsg{Event: eventbus.ScanStartedEvent{Roots: []string{"/src"}}})
	assert.True(t, m.scanning)

	m.Update(EventMsg{Event: eventbus.ScanCompletedEvent{ReposFound: 4}})
	assert.False(t, m.scanning)
	assert.Contains(t, m.status, "4 working copies")
}

func TestViewShowsFilterIndicatorAndSelection(t *testing.T) {
	m := newTestModel(t, "alpha", "Beta", "gamma")

	m.Update(keyRunes("/"))
	pumpAnimation(t, m)
	m.Update(keyRunes("b"))
	m.Update(keyRunes("e"))

	out := m.View()
	assert.Contains(t, out, "[Filter: be]")
	assert.Contains(t, out, "Beta")
	assert.NotContains(t, out, "gamma")
}

func TestClearSelection(t *testing.T) {
	m := newTestModel(t, "alpha", "Beta")

	m.Update(keyRunes(" "))
	require.NotNil(t, m.picker.Selected())

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlX})
	assert.Nil(t, m.picker.Selected())
}
