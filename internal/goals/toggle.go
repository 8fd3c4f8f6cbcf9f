package goals

import (
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/ergotrack/internal/error_values"
	"github.com/limbo/ergotrack/pkg/entity"
)

// ToggleSecondary flips the completion of the secondary goal with the
// given id and re-derives every primary's Completed/CompletedAt against
// the updated set. Returns a new collection; the input stays untouched.
// Returns ErrGoalNotFound when the id resolves to nothing and
// ErrNotSecondaryGoal when it resolves to a primary; in both cases the
// caller keeps its original collection.
func ToggleSecondary(id uuid.UUID, gs []entity.Goal, now time.Time) ([]entity.Goal, error) {
	found := false
	updated := make([]entity.Goal, len(gs))
	for i, g := range gs {
		if g.ID == id {
			if g.Kind != entity.GoalKindSecondary {
				return nil, errorvalues.ErrNotSecondaryGoal
			}
			found = true
			g.Completed = !g.Completed
			if g.Completed {
				stamp := now
				g.CompletedAt = &stamp
			} else {
				g.CompletedAt = nil
			}
		}
		updated[i] = g
	}
	if !found {
		return nil, errorvalues.ErrGoalNotFound
	}
	for i, g := range updated {
		if g.Kind != entity.GoalKindPrimary {
			continue
		}
		updated[i] = deriveCompletion(g, updated, now)
	}
	return updated, nil
}

// deriveCompletion applies the roll-up rule: a primary is completed iff
// it has at least one secondary and all of them are completed. The stamp
// is set only on the false→true transition so an already-complete
// primary keeps its original CompletedAt.
func deriveCompletion(primary entity.Goal, gs []entity.Goal, now time.Time) entity.Goal {
	total := 0
	completed := 0
	for _, g := range gs {
		if g.ParentID == primary.ID {
			total++
			if g.Completed {
				completed++
			}
		}
	}
	allDone := total > 0 && completed == total
	if allDone {
		if !primary.Completed || primary.CompletedAt == nil {
			stamp := now
			primary.CompletedAt = &stamp
		}
		primary.Completed = true
	} else {
		primary.Completed = false
		primary.CompletedAt = nil
	}
	return primary
}
