package eventbus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repopick/internal/domain"
)

func TestPublishDispatchesSynchronously(t *testing.T) {
	bus := New()

	var got []domain.Repository
	bus.Subscribe(EventRepoAdded, func(e DomainEvent) {
		got = append(got, e.(RepoAddedEvent).Repo)
	})

	bus.Publish(RepoAddedEvent{Repo: domain.Repository{ID: 1, Name: "alpha"}})

	// No goroutines involved: the handler has already run
	require.Len(t, got, 1)
	assert.Equal(t, "alpha", got[0].Name)
}

func TestPublishOnlyReachesMatchingType(t *testing.T) {
	bus := New()

	added := 0
	removed := 0
	bus.Subscribe(EventRepoAdded, func(DomainEvent) { added++ })
	bus.Subscribe(EventRepoRemoved, func(DomainEvent) { removed++ })

	bus.Publish(RepoAddedEvent{})
	bus.Publish(RepoAddedEvent{})

	assert.Equal(t, 2, added)
	assert.Equal(t, 0, removed)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	bus := New()

	calls := 0
	unsub := bus.Subscribe(EventRepoSelected, func(DomainEvent) { calls++ })

	bus.Publish(RepoSelectedEvent{})
	unsub()
	bus.Publish(RepoSelectedEvent{})

	assert.Equal(t, 1, calls)
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	bus := New()

	calls := 0
	unsubA := bus.Subscribe(EventRepoSelected, func(DomainEvent) { calls++ })
	bus.Subscribe(EventRepoSelected, func(DomainEvent) { calls++ })

	unsubA()
	unsubA() // must not remove the surviving handler

	bus.Publish(RepoSelectedEvent{})
	assert.Equal(t, 1, calls)
}

func TestHandlerPanicDoesNotStopDispatch(t *testing.T) {
	bus := New()

	reached := false
	bus.Subscribe(EventError, func(DomainEvent) { panic("boom") })
	bus.Subscribe(EventError, func(DomainEvent) { reached = true })

	assert.NotPanics(t, func() {
		bus.Publish(ErrorEvent{Message: "x"})
	})
	assert.True(t, reached)
}
