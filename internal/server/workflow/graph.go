// Package workflow holds the document status state machine:
//
//	draft -> pending -> approved
//	                 -> rejected
//
// approved and rejected are terminal. There are no self edges, so applying
// the current status again is rejected like any other illegal edge.
package workflow

import (
	"fmt"

	"github.com/dmitrijs2005/dealdocs/internal/common"
	"github.com/dmitrijs2005/dealdocs/internal/server/models"
)

var edges = map[models.Status][]models.Status{
	models.StatusDraft:   {models.StatusPending},
	models.StatusPending: {models.StatusApproved, models.StatusRejected},
}

// CanTransition reports whether from -> to is an edge of the graph.
func CanTransition(from, to models.Status) bool {
	for _, next := range edges[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Validate returns an error wrapping common.ErrorInvalidTransition when
// from -> to is not allowed.
func Validate(from, to models.Status) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", common.ErrorInvalidTransition, from, to)
	}
	return nil
}

// Terminal reports whether no transition leaves s.
func Terminal(s models.Status) bool {
	return len(edges[s]) == 0
}
