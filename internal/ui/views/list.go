package views

import (
	"strings"
	"sync"

	"repopick/internal/domain"
	"repopick/internal/eventbus"
)

// ListView is the list container: it owns the authoritative mapping from
// record ID to ItemView and keeps it in sync with the backing collection.
// Everything else gets read-only access to the registry.
type ListView struct {
	mu       sync.RWMutex
	styles   *Styles
	views    map[int]*ItemView
	order    []int
	onCreate []func(*ItemView)
	unsubs   []func()
}

// NewListView creates an empty list view
func NewListView(styles *Styles) *ListView {
	return &ListView{
		styles: styles,
		views:  make(map[int]*ItemView),
	}
}

// Attach subscribes the list to collection mutations on the bus. Call Close
// to detach.
func (l *ListView) Attach(bus eventbus.EventBus) {
	l.unsubs = append(l.unsubs,
		bus.Subscribe(eventbus.EventRepoAdded, func(e eventbus.DomainEvent) {
			l.Add(e.(eventbus.RepoAddedEvent).Repo)
		}),
		bus.Subscribe(eventbus.EventRepoRemoved, func(e eventbus.DomainEvent) {
			l.Remove(e.(eventbus.RepoRemovedEvent).ID)
		}),
	)
}

// Close removes the bus subscriptions so a torn-down list leaves no
// dangling listeners behind
func (l *ListView) Close() {
	for _, unsub := range l.unsubs {
		unsub()
	}
	l.unsubs = nil
}

// OnCreate registers a hook that runs for every sub-view the moment it is
// created, before it can be rendered. Hooks must not call back into the
// list.
func (l *ListView) OnCreate(fn func(*ItemView)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onCreate = append(l.onCreate, fn)
}

// Add creates the sub-view for a record. Re-adding an existing ID replaces
// the record but keeps its position, marker and visibility.
func (l *ListView) Add(repo domain.Repository) *ItemView {
	l.mu.Lock()
	defer l.mu.Unlock()

	if existing, ok := l.views[repo.ID]; ok {
		selected := existing.Selected()
		view := NewItemView(repo)
		view.SetVisible(existing.Visible())
		view.SetSelected(selected)
		l.views[repo.ID] = view
		return view
	}

	view := NewItemView(repo)
	l.views[repo.ID] = view
	l.order = append(l.order, repo.ID)

	// Runs under the lock: the view must carry the current filter before
	// anything can paint it
	for _, fn := range l.onCreate {
		fn(view)
	}
	return view
}

// Remove destroys the sub-view for a record
func (l *ListView) Remove(id int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.views[id]; !ok {
		return
	}
	delete(l.views, id)
	for i, existing := range l.order {
		if existing == id {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
}

// Get returns the sub-view for a record ID
func (l *ListView) Get(id int) (*ItemView, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	view, ok := l.views[id]
	return view, ok
}

// Each calls fn for every sub-view in display order
func (l *ListView) Each(fn func(*ItemView)) {
	l.mu.RLock()
	views := make([]*ItemView, 0, len(l.order))
	for _, id := range l.order {
		views = append(views, l.views[id])
	}
	l.mu.RUnlock()

	for _, view := range views {
		fn(view)
	}
}

// Len returns the number of tracked sub-views
func (l *ListView) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.views)
}

// VisibleIDs returns the IDs of currently visible sub-views in display
// order, for cursor navigation
func (l *ListView) VisibleIDs() []int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	ids := make([]int, 0, len(l.order))
	for _, id := range l.order {
		if l.views[id].Visible() {
			ids = append(ids, id)
		}
	}
	return ids
}

// Render renders the visible entries, marking the one under the cursor
func (l *ListView) Render(cursorID int, showTool bool) string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var lines []string
	for _, id := range l.order {
		view := l.views[id]
		if !view.Visible() {
			continue
		}
		lines = append(lines, view.Render(l.styles, id == cursorID, showTool))
	}
	if len(lines) == 0 {
		return l.styles.Dim.Render("  no matching repositories")
	}
	return strings.Join(lines, "\n")
}
