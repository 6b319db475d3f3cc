package ui

import (
	"cocktailgrip/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// searchDoneMsg is sent when a search command returned
type searchDoneMsg struct {
	query string
}

// pagerDoneMsg contains the result of showing a recipe in the pager
type pagerDoneMsg struct {
	name string
	err  error
}

// clearStatusMsg clears the transient status message
type clearStatusMsg struct {
	seq int
}
