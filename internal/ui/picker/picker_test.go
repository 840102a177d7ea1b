package picker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repopick/internal/collection"
	"repopick/internal/domain"
	"repopick/internal/eventbus"
	"repopick/internal/ui/views"
)

type fixture struct {
	bus    eventbus.EventBus
	coll   *collection.Collection
	list   *views.ListView
	picker *Picker
}

func newFixture(t *testing.T, names ...string) *fixture {
	t.Helper()

	bus := eventbus.New()
	list := views.NewListView(views.NewStyles())
	list.Attach(bus)
	p := New(bus, list, NewSearchBox(200))
	t.Cleanup(func() {
		p.Close()
		list.Close()
	})

	coll := collection.New(bus)
	for _, name := range names {
		coll.Add(domain.Repository{Name: name, Tool: "Git", Visible: true})
	}
	return &fixture{bus: bus, coll: coll, list: list, picker: p}
}

func (f *fixture) markedNames() []string {
	var names []string
	f.list.Each(func(v *views.ItemView) {
		if v.Selected() {
			names = append(names, v.Repo().Name)
		}
	})
	return names
}

func (f *fixture) visibleNames() []string {
	var names []string
	f.list.Each(func(v *views.ItemView) {
		if v.Visible() {
			names = append(names, v.Repo().Name)
		}
	})
	return names
}

func (f *fixture) repo(name string) *domain.Repository {
	for _, r := range f.coll.All() {
		if r.Name == name {
			repo := r
			return &repo
		}
	}
	return nil
}

func TestSelectionExclusivity(t *testing.T) {
	f := newFixture(t, "alpha", "Beta", "gamma")

	f.picker.SelectRecord(f.repo("alpha"))
	assert.Equal(t, []string{"alpha"}, f.markedNames())

	f.picker.SelectRecord(f.repo("gamma"))
	assert.Equal(t, []string{"gamma"}, f.markedNames())

	// Reselecting is idempotent on the marker set
	f.picker.SelectRecord(f.repo("gamma"))
	assert.Equal(t, []string{"gamma"}, f.markedNames())

	f.picker.SelectRecord(nil)
	assert.Empty(t, f.markedNames())
	assert.Nil(t, f.picker.Selected())
}

func TestSelectUnknownRecordIsSilentNoop(t *testing.T) {
	f := newFixture(t, "alpha")

	events := 0
	f.bus.Subscribe(eventbus.EventRepoSelected, func(eventbus.DomainEvent) { events++ })

	f.picker.SelectRecord(f.repo("alpha"))
	require.Equal(t, 1, events)

	f.picker.SelectRecord(&domain.Repository{ID: 999, Name: "ghost"})
	assert.Equal(t, 1, events, "unknown record must not emit")
	assert.Equal(t, []string{"alpha"}, f.markedNames())
	assert.Equal(t, "alpha", f.picker.Selected().Name)
}

func TestSelectedEventFiresSynchronously(t *testing.T) {
	f := newFixture(t, "alpha")

	var got *domain.Repository
	f.bus.Subscribe(eventbus.EventRepoSelected, func(e eventbus.DomainEvent) {
		got = e.(eventbus.RepoSelectedEvent).Repo
	})

	f.picker.SelectRecord(f.repo("alpha"))
	// Synchronous dispatch: the handler has run by the time the call returns
	require.NotNil(t, got)
	assert.Equal(t, "alpha", got.Name)

	f.picker.SelectRecord(nil)
	assert.Nil(t, got)
}

func TestFilterCorrectness(t *testing.T) {
	f := newFixture(t, "alpha", "Beta", "gamma")

	f.picker.ApplyFilter("a")
	assert.Equal(t, []string{"alpha", "Beta", "gamma"}, f.visibleNames(),
		"all three names contain an 'a' case-insensitively")

	f.picker.ApplyFilter("be")
	assert.Equal(t, []string{"Beta"}, f.visibleNames())

	f.picker.ApplyFilter("BE")
	assert.Equal(t, []string{"Beta"}, f.visibleNames(), "term is case-insensitive")

	f.picker.ApplyFilter("")
	assert.Equal(t, []string{"alpha", "Beta", "gamma"}, f.visibleNames())
}

func TestFilterCoercesInvalidUTF8(t *testing.T) {
	f := newFixture(t, "alpha")

	f.picker.ApplyFilter("AL\xff\xfe")
	assert.Equal(t, "al", f.picker.Filter())
}

func TestSelectionFilterIndependence(t *testing.T) {
	f := newFixture(t, "alpha", "Beta", "gamma")

	f.picker.ApplyFilter("be")
	f.picker.SelectRecord(f.repo("alpha"))

	// alpha is hidden by the filter yet carries the marker
	assert.Equal(t, []string{"Beta"}, f.visibleNames())
	assert.Equal(t, []string{"alpha"}, f.markedNames())

	// Filtering after selection never alters the marker
	f.picker.ApplyFilter("gam")
	assert.Equal(t, []string{"gamma"}, f.visibleNames())
	assert.Equal(t, []string{"alpha"}, f.markedNames())

	// Selecting never alters visibility
	view, ok := f.list.Get(f.repo("alpha").ID)
	require.True(t, ok)
	assert.False(t, view.Visible())
}

func TestNewItemGetsCurrentFilterBeforeFirstPaint(t *testing.T) {
	f := newFixture(t, "alpha")

	f.picker.ApplyFilter("be")
	assert.Empty(t, f.visibleNames())

	added := f.coll.Add(domain.Repository{Name: "Beta", Visible: true})
	view, ok := f.list.Get(added.ID)
	require.True(t, ok)
	assert.True(t, view.Visible())

	miss := f.coll.Add(domain.Repository{Name: "delta", Visible: true})
	view, ok = f.list.Get(miss.ID)
	require.True(t, ok)
	assert.False(t, view.Visible(), "must be filtered from the moment it exists")
}

func TestEchoSuppression(t *testing.T) {
	f := newFixture(t, "alpha", "Beta")

	outbound := 0
	activations := 0
	f.bus.Subscribe(eventbus.EventRepoSelected, func(eventbus.DomainEvent) { outbound++ })
	f.bus.Subscribe(eventbus.EventRepoActivated, func(eventbus.DomainEvent) { activations++ })

	// External actor marks a record chosen in the collection
	f.coll.Activate(f.repo("Beta").ID)

	assert.Equal(t, 1, outbound, "exactly one outbound selected event")
	assert.Equal(t, 1, activations, "no feedback notification into the collection")
	assert.Equal(t, []string{"Beta"}, f.markedNames())
}

func TestRemovedSelectionReappearsWithMarker(t *testing.T) {
	f := newFixture(t, "alpha", "Beta")

	repo := f.repo("alpha")
	f.picker.SelectRecord(repo)
	f.coll.Remove(repo.ID)
	assert.Empty(t, f.markedNames())

	// The record coming back gets its marker restored by the create hook
	f.coll.Add(*repo)
	assert.Equal(t, []string{"alpha"}, f.markedNames())
}

func TestScenarioFromTheFieldGuide(t *testing.T) {
	// collection = [alpha, Beta, gamma]; all visible, none selected
	f := newFixture(t, "alpha", "Beta", "gamma")
	require.Equal(t, []string{"alpha", "Beta", "gamma"}, f.visibleNames())
	require.Empty(t, f.markedNames())

	f.picker.ApplyFilter("a")
	assert.Equal(t, []string{"alpha", "Beta", "gamma"}, f.visibleNames())

	f.picker.ApplyFilter("be")
	assert.Equal(t, []string{"Beta"}, f.visibleNames())

	// Click on alpha even though it is hidden by the filter
	f.picker.SelectRecord(f.repo("alpha"))
	assert.Equal(t, []string{"alpha"}, f.markedNames())
	assert.Equal(t, []string{"Beta"}, f.visibleNames())

	// Toggle search open then closed without changing the text
	f.picker.Search().SetMaxWidth(40)
	f.picker.ToggleSearch()
	for f.picker.Search().Step() {
	}
	f.picker.ToggleSearch()
	for f.picker.Search().Step() {
	}

	assert.Equal(t, "be", f.picker.Filter(), "filter unchanged by toggling")
	assert.Equal(t, []string{"alpha"}, f.markedNames(), "selection unchanged by toggling")
	assert.Equal(t, []string{"Beta"}, f.visibleNames())
}
