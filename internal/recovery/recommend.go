package recovery

import (
	"fmt"
	"sort"
)

// Recommendation thresholds.
const (
	recommendBelowPct    = 70.0
	restBelowPct         = 30.0
	lightActivityMaxPct  = 50.0
	sorenessNutritionMin = 6
	fatigueSleepMin      = 6
	sleepRecoveryMaxPct  = 60.0

	restBenefit      = 90.0
	lightBenefit     = 70.0
	stretchBenefit   = 50.0
	nutritionBenefit = 60.0
	sleepBenefit     = 80.0

	lightActivityMinutes = 15
	stretchingMinutes    = 10
	sleepMinutes         = 480
)

// GenerateRecommendations inspects the per-muscle results and emits
// prioritized, actionable recommendations.
//
// Every muscle under 70% recovery gets exactly one primary recommendation
// by bracket; sore or fatigued muscles can additionally pick up nutrition
// and sleep recommendations, so one muscle emits up to three. The returned
// list is sorted by priority rank, then estimated benefit, both descending.
// The engine never caps the list; display truncation is the UI's call.
func GenerateRecommendations(muscles []MuscleRecovery) []Recommendation {
	var recs []Recommendation

	for _, m := range muscles {
		if m.RecoveryPercentage < recommendBelowPct {
			recs = append(recs, primaryRecommendation(m))
		}
		if m.SorenessLevel > sorenessNutritionMin {
			recs = append(recs, nutritionRecommendation(m))
		}
		if m.RecoveryPercentage < sleepRecoveryMaxPct && m.FatigueLevel > fatigueSleepMin {
			recs = append(recs, sleepRecommendation(m))
		}
	}

	sort.SliceStable(recs, func(i, j int) bool {
		if priorityRank[recs[i].Priority] != priorityRank[recs[j].Priority] {
			return priorityRank[recs[i].Priority] > priorityRank[recs[j].Priority]
		}
		return recs[i].EstimatedBenefit > recs[j].EstimatedBenefit
	})

	return recs
}

// primaryRecommendation picks rest, light activity, or stretching by
// recovery bracket.
func primaryRecommendation(m MuscleRecovery) Recommendation {
	switch {
	case m.RecoveryPercentage < restBelowPct:
		return Recommendation{
			MuscleGroup:      m.MuscleGroup,
			Type:             RecommendRest,
			Priority:         PriorityCritical,
			Message:          fmt.Sprintf("Your %s needs complete rest before training again.", m.MuscleGroup),
			EstimatedBenefit: restBenefit,
			Actions: []string{
				"Avoid loading this muscle group entirely",
				"Prioritize sleep tonight",
				"Apply heat or gentle massage if sore",
			},
		}
	case m.RecoveryPercentage < lightActivityMaxPct:
		minutes := lightActivityMinutes
		return Recommendation{
			MuscleGroup:      m.MuscleGroup,
			Type:             RecommendLightActivity,
			Priority:         PriorityHigh,
			Message:          fmt.Sprintf("Light movement will help your %s recover faster.", m.MuscleGroup),
			EstimatedBenefit: lightBenefit,
			DurationMinutes:  &minutes,
			Actions: []string{
				"Take an easy walk or cycle",
				"Do unloaded range-of-motion work",
				"Keep effort conversational",
			},
		}
	default:
		minutes := stretchingMinutes
		return Recommendation{
			MuscleGroup:      m.MuscleGroup,
			Type:             RecommendStretching,
			Priority:         PriorityMedium,
			Message:          fmt.Sprintf("Stretching your %s will ease the remaining tightness.", m.MuscleGroup),
			EstimatedBenefit: stretchBenefit,
			DurationMinutes:  &minutes,
			Actions: []string{
				"Hold static stretches for 30 seconds",
				"Stay below the pain threshold",
			},
		}
	}
}

func nutritionRecommendation(m MuscleRecovery) Recommendation {
	return Recommendation{
		MuscleGroup:      m.MuscleGroup,
		Type:             RecommendNutrition,
		Priority:         PriorityMedium,
		Message:          fmt.Sprintf("Soreness in your %s responds well to protein and hydration.", m.MuscleGroup),
		EstimatedBenefit: nutritionBenefit,
		Actions: []string{
			"Hit your daily protein target",
			"Drink water consistently through the day",
			"Consider tart cherry or omega-3 sources",
		},
	}
}

func sleepRecommendation(m MuscleRecovery) Recommendation {
	minutes := sleepMinutes
	return Recommendation{
		MuscleGroup:      m.MuscleGroup,
		Type:             RecommendSleep,
		Priority:         PriorityHigh,
		Message:          fmt.Sprintf("A full night of sleep will cut the fatigue in your %s.", m.MuscleGroup),
		EstimatedBenefit: sleepBenefit,
		DurationMinutes:  &minutes,
		Actions: []string{
			"Aim for 8 hours tonight",
			"Keep the bedroom cool and dark",
			"Skip screens for the last hour before bed",
		},
	}
}
