package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventRepoAdded     EventType = "RepoAdded"
	EventRepoRemoved   EventType = "RepoRemoved"
	EventRepoActivated EventType = "RepoActivated"
	EventRepoSelected  EventType = "RepoSelected"
	EventScanStarted   EventType = "ScanStarted"
	EventScanCompleted EventType = "ScanCompleted"
	EventError         EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// RepoAddedEvent is emitted when a repository enters the backing collection
type RepoAddedEvent struct {
	Repo Repository
}

func (e RepoAddedEvent) Type() EventType { return EventRepoAdded }

// RepoRemovedEvent is emitted when a repository leaves the backing collection
type RepoRemovedEvent struct {
	ID int
}

func (e RepoRemovedEvent) Type() EventType { return EventRepoRemoved }

// RepoActivatedEvent is emitted by the collection when an external actor
// marks one of its records as chosen. The picker reflects it exactly as it
// would a user click, but never publishes one of these itself.
type RepoActivatedEvent struct {
	Repo *Repository
}

func (e RepoActivatedEvent) Type() EventType { return EventRepoActivated }

// RepoSelectedEvent is the picker's outbound notification. Repo is nil when
// the selection was cleared.
type RepoSelectedEvent struct {
	Repo *Repository
}

func (e RepoSelectedEvent) Type() EventType { return EventRepoSelected }

// ScanStartedEvent is emitted when repository discovery begins
type ScanStartedEvent struct {
	Roots []string
}

func (e ScanStartedEvent) Type() EventType { return EventScanStarted }

// ScanCompletedEvent is emitted when repository discovery completes
type ScanCompletedEvent struct {
	ReposFound int
}

func (e ScanCompletedEvent) Type() EventType { return EventScanCompleted }

// ErrorEvent is emitted when a background operation fails
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
