package goals

import (
	"github.com/google/uuid"
	"github.com/limbo/ergotrack/pkg/entity"
)

// PatientStats aggregates a patient's goals on top of GroupByPrimary.
// OverallProgress is 0 when the patient has no secondary goals.
func PatientStats(patientID uuid.UUID, gs []entity.Goal) entity.PatientGoalStats {
	patientGoals := make([]entity.Goal, 0)
	for _, g := range gs {
		if g.PatientID == patientID {
			patientGoals = append(patientGoals, g)
		}
	}
	grouped := GroupByPrimary(patientGoals)

	stats := entity.PatientGoalStats{PatientID: patientID}
	stats.TotalPrimaryGoals = len(grouped)
	for _, group := range grouped {
		if group.Primary.Completed {
			stats.CompletedPrimaryGoals++
		}
		stats.TotalSecondaryGoals += len(group.Secondaries)
		stats.CompletedSecondaryGoals += group.CompletedCount
		stats.TotalPoints += group.TotalPoints
		for _, s := range group.Secondaries {
			if s.Completed {
				stats.EarnedPoints += s.Points
			}
		}
	}
	if stats.TotalSecondaryGoals > 0 {
		stats.OverallProgress = float64(stats.CompletedSecondaryGoals) / float64(stats.TotalSecondaryGoals) * 100
	}
	return stats
}
