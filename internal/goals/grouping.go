// Package goals is the goal-hierarchy engine: pure functions over goal
// collections. Grouping, derived primary state, completion toggling with
// parent propagation, patient statistics and weekly aggregation all live
// here; callers own the collection and persist results themselves.
package goals

import (
	"github.com/google/uuid"
	"github.com/limbo/ergotrack/pkg/entity"
)

// GroupByPrimary partitions a flat goal collection into one group per
// primary goal, order-preserving. The primary inside each group carries
// recomputed Points (sum of secondaries) and Completed (all secondaries
// done, false when there are none). The input is not modified.
func GroupByPrimary(gs []entity.Goal) []entity.PrimaryGoalGroup {
	groups := make([]entity.PrimaryGoalGroup, 0)
	for _, g := range gs {
		if g.Kind != entity.GoalKindPrimary {
			continue
		}
		secondaries := make([]entity.Goal, 0)
		completedCount := 0
		totalPoints := 0
		for _, c := range gs {
			if c.ParentID != g.ID {
				continue
			}
			secondaries = append(secondaries, c)
			totalPoints += c.Points
			if c.Completed {
				completedCount++
			}
		}
		primary := g
		primary.Points = totalPoints
		primary.Completed = len(secondaries) > 0 && completedCount == len(secondaries)
		if !primary.Completed {
			primary.CompletedAt = nil
		}
		progress := 0.0
		if len(secondaries) > 0 {
			progress = float64(completedCount) / float64(len(secondaries)) * 100
		}
		groups = append(groups, entity.PrimaryGoalGroup{
			Primary:        primary,
			Secondaries:    secondaries,
			TotalPoints:    totalPoints,
			CompletedCount: completedCount,
			Progress:       progress,
		})
	}
	return groups
}

// StandalonePrimaries returns primary goals with no secondary referencing them.
func StandalonePrimaries(gs []entity.Goal) []entity.Goal {
	standalone := make([]entity.Goal, 0)
	for _, g := range gs {
		if g.Kind != entity.GoalKindPrimary {
			continue
		}
		if !hasChild(gs, g.ID) {
			standalone = append(standalone, g)
		}
	}
	return standalone
}

// OrphanSecondaries returns secondary goals whose ParentID doesn't match
// any primary in the collection. Orphans are surfaced to callers, never
// silently dropped from the data set.
func OrphanSecondaries(gs []entity.Goal) []entity.Goal {
	orphans := make([]entity.Goal, 0)
	for _, g := range gs {
		if g.Kind != entity.GoalKindSecondary {
			continue
		}
		if !hasPrimary(gs, g.ParentID) {
			orphans = append(orphans, g)
		}
	}
	return orphans
}

func hasChild(gs []entity.Goal, parentID uuid.UUID) bool {
	for _, g := range gs {
		if g.ParentID == parentID {
			return true
		}
	}
	return false
}

func hasPrimary(gs []entity.Goal, id uuid.UUID) bool {
	for _, g := range gs {
		if g.Kind == entity.GoalKindPrimary && g.ID == id {
			return true
		}
	}
	return false
}
