package ui

import (
	"time"

	"repopick/internal/eventbus"
)

// EventMsg wraps a domain event forwarded into the UI loop
type EventMsg struct {
	Event eventbus.DomainEvent
}

// animTickMsg drives one frame of the search box animation
type animTickMsg time.Time

// pagerDoneMsg reports the pager handing the terminal back
type pagerDoneMsg struct {
	err error
}
