// Package picker implements the repository-selection widget: single
// selection over the list container's sub-views, incremental filtering, and
// the collapsible search box.
package picker

import (
	"strings"
	"sync"

	"repopick/internal/domain"
	"repopick/internal/eventbus"
	"repopick/internal/ui/views"
)

// Picker coordinates the selection invariant, the filter, and the search
// box over the sub-views owned by the list container. It owns no record
// data.
//
// stateMu guards only the filter term and the selected record. It is never
// held while calling into the list, so the list's on-create hook may take
// it from inside the list's own lock without inverting lock order.
type Picker struct {
	stateMu  sync.Mutex
	bus      eventbus.EventBus
	list     *views.ListView
	search   *SearchBox
	filter   string // lower-cased filter term
	selected *domain.Repository
	unsubs   []func()
}

// New attaches a picker to an already-constructed list container. It
// registers the on-create hook that filters new sub-views before first
// paint, and reflects external activations from the collection as if they
// were clicks.
func New(bus eventbus.EventBus, list *views.ListView, search *SearchBox) *Picker {
	p := &Picker{
		bus:    bus,
		list:   list,
		search: search,
	}

	list.OnCreate(func(v *views.ItemView) {
		term, selected := p.snapshot()
		v.SetVisible(term == "" || strings.Contains(v.FilterName(), term))
		v.SetSelected(selected != nil && selected.ID == v.Repo().ID)
	})

	p.unsubs = append(p.unsubs,
		bus.Subscribe(eventbus.EventRepoActivated, func(e eventbus.DomainEvent) {
			p.SelectRecord(e.(eventbus.RepoActivatedEvent).Repo)
		}),
	)

	return p
}

// Close removes the picker's bus subscriptions
func (p *Picker) Close() {
	for _, unsub := range p.unsubs {
		unsub()
	}
	p.unsubs = nil
}

// SelectRecord sets the selection to record, or clears it when record is
// nil. Exactly the sub-view whose record matches carries the marker
// afterwards. A record that is not in the tracked set is silently ignored.
// The outbound selected notification is published synchronously before
// SelectRecord returns. Filter state is untouched.
func (p *Picker) SelectRecord(record *domain.Repository) {
	if record != nil {
		if _, ok := p.list.Get(record.ID); !ok {
			return
		}
	}

	p.stateMu.Lock()
	p.selected = record
	p.stateMu.Unlock()

	p.list.Each(func(v *views.ItemView) {
		v.SetSelected(record != nil && v.Repo().ID == record.ID)
	})

	p.bus.Publish(eventbus.RepoSelectedEvent{Repo: record})
}

// Selected returns the currently selected record, or nil
func (p *Picker) Selected() *domain.Repository {
	p.stateMu.Lock()
	defer p.stateMu.Unlock()
	return p.selected
}

// ApplyFilter sets the filter term and recomputes visibility for every
// tracked sub-view: visible iff the lower-cased display name contains the
// lower-cased term. The empty term shows everything. Selection state is
// untouched; a selected record may well be hidden.
func (p *Picker) ApplyFilter(term string) {
	term = strings.ToLower(strings.ToValidUTF8(term, ""))

	p.stateMu.Lock()
	p.filter = term
	p.stateMu.Unlock()

	p.list.Each(func(v *views.ItemView) {
		v.SetVisible(term == "" || strings.Contains(v.FilterName(), term))
	})
}

// Filter returns the current filter term
func (p *Picker) Filter() string {
	term, _ := p.snapshot()
	return term
}

// ToggleSearch flips the search box between collapsed and expanded. It
// reports whether an animation is now in flight and needs frame stepping.
// Selection and filter state are unaffected; in particular the search text
// survives a collapse.
func (p *Picker) ToggleSearch() bool {
	return p.search.Toggle()
}

// Search exposes the search box state machine
func (p *Picker) Search() *SearchBox {
	return p.search
}

func (p *Picker) snapshot() (string, *domain.Repository) {
	p.stateMu.Lock()
	defer p.stateMu.Unlock()
	return p.filter, p.selected
}
