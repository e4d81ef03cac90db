package ui

import (
	"partsearch/internal/build"
	"partsearch/internal/ui/services/query"
)

// debounceMsg fires when the debounce window of a query generation ends
type debounceMsg struct {
	generation uint64
}

// searchResultMsg carries one category's provider response
type searchResultMsg struct {
	resp query.Response
}

// picksLoadedMsg contains the build list read at startup
type picksLoadedMsg struct {
	picks []build.Pick
	total int
	err   error
}

// PickAddedMsg reports a pick stored by the build recorder
type PickAddedMsg struct {
	Pick build.Pick
}

// pagerDoneMsg is sent when the detail pager exits
type pagerDoneMsg struct {
	err error
}
