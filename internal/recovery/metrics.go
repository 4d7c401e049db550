package recovery

import (
	"math"
	"time"
)

// Global metrics thresholds.
const (
	readyForTrainingPct = 80.0
	needsRestPct        = 60.0

	fullBodyReadyCount   = 6
	upperLowerReadyCount = 4
	targetedReadyCount   = 2
	lightCardioOverall   = 70
)

// AggregateMetrics rolls the per-muscle array into one whole-body summary.
// The input is never empty by construction: every engine run produces all
// 14 muscle groups.
func AggregateMetrics(muscles []MuscleRecovery, now time.Time) GlobalMetrics {
	var (
		sum   float64
		most  = muscles[0]
		least = muscles[0]
		ready []MuscleGroup
		rest  []MuscleGroup
	)

	for _, m := range muscles {
		sum += m.RecoveryPercentage
		if m.RecoveryPercentage > most.RecoveryPercentage {
			most = m
		}
		if m.RecoveryPercentage < least.RecoveryPercentage {
			least = m
		}
		if m.RecoveryPercentage > readyForTrainingPct {
			ready = append(ready, m.MuscleGroup)
		}
		if m.RecoveryPercentage < needsRestPct {
			rest = append(rest, m.MuscleGroup)
		}
	}

	overall := int(math.Round(sum / float64(len(muscles))))

	return GlobalMetrics{
		OverallRecoveryScore: overall,
		MostRecoveredMuscle:  most.MuscleGroup,
		LeastRecoveredMuscle: least.MuscleGroup,
		ReadyForTraining:     ready,
		NeedsRest:            rest,
		OptimalWorkoutType:   optimalWorkoutType(len(ready), overall),
		RecoveryTrend:        nil,
		LastCalculated:       now,
	}
}

// optimalWorkoutType is a decision ladder on how many muscles are trainable.
func optimalWorkoutType(readyCount, overall int) WorkoutShape {
	switch {
	case readyCount >= fullBodyReadyCount:
		return ShapeFullBody
	case readyCount >= upperLowerReadyCount:
		return ShapeUpperLowerSplit
	case readyCount >= targetedReadyCount:
		return ShapeTargeted
	case overall > lightCardioOverall:
		return ShapeLightCardio
	default:
		return ShapeRest
	}
}
