// Package collection holds the backing collection of candidate
// repositories. It is the source of truth for the records the picker
// renders; the picker itself never mutates it.
package collection

import (
	"sync"

	"repopick/internal/domain"
	"repopick/internal/eventbus"
)

// Collection is an ordered, mutable set of repository records keyed by ID.
// Mutations publish domain events so the list container can keep its
// sub-views in sync. Safe for use from the discovery goroutine and the UI
// loop at the same time.
type Collection struct {
	mu     sync.RWMutex
	bus    eventbus.EventBus
	byID   map[int]*domain.Repository
	order  []int
	nextID int
}

// New creates an empty collection publishing on bus
func New(bus eventbus.EventBus) *Collection {
	return &Collection{
		bus:  bus,
		byID: make(map[int]*domain.Repository),
	}
}

// Add inserts a record at the end of the collection order and publishes
// RepoAddedEvent. A zero ID is replaced with the next free one. Adding an
// ID that already exists updates the record in place without reordering.
func (c *Collection) Add(repo domain.Repository) domain.Repository {
	c.mu.Lock()
	if repo.ID == 0 {
		c.nextID++
		repo.ID = c.nextID
	} else if repo.ID > c.nextID {
		c.nextID = repo.ID
	}

	_, exists := c.byID[repo.ID]
	r := repo
	c.byID[repo.ID] = &r
	if !exists {
		c.order = append(c.order, repo.ID)
	}
	c.mu.Unlock()

	c.bus.Publish(eventbus.RepoAddedEvent{Repo: repo})
	return repo
}

// Remove deletes a record and publishes RepoRemovedEvent. Unknown IDs are
// ignored.
func (c *Collection) Remove(id int) {
	c.mu.Lock()
	if _, ok := c.byID[id]; !ok {
		c.mu.Unlock()
		return
	}
	delete(c.byID, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	c.mu.Unlock()

	c.bus.Publish(eventbus.RepoRemovedEvent{ID: id})
}

// Activate marks a record as chosen by an external actor and publishes
// RepoActivatedEvent. Unknown IDs are ignored.
func (c *Collection) Activate(id int) {
	c.mu.RLock()
	repo, ok := c.byID[id]
	var copied domain.Repository
	if ok {
		copied = *repo
	}
	c.mu.RUnlock()

	if !ok {
		return
	}
	c.bus.Publish(eventbus.RepoActivatedEvent{Repo: &copied})
}

// Get returns the record with the given ID
func (c *Collection) Get(id int) (domain.Repository, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	repo, ok := c.byID[id]
	if !ok {
		return domain.Repository{}, false
	}
	return *repo, true
}

// All returns the records in collection order
func (c *Collection) All() []domain.Repository {
	c.mu.RLock()
	defer c.mu.RUnlock()

	repos := make([]domain.Repository, 0, len(c.order))
	for _, id := range c.order {
		repos = append(repos, *c.byID[id])
	}
	return repos
}

// Len returns the number of records
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byID)
}
