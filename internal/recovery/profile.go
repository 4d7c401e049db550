package recovery

import "strings"

// Profile derivation constants.
const (
	// Age factor declines linearly past age 20 and never drops below 0.6.
	ageFactorBase     = 1.2
	ageFactorPerYear  = 0.01
	ageFactorBaseline = 20
	ageFactorFloor    = 0.6
	ageFactorCeiling  = 1.3

	// Sleep factor bounds and targets.
	sleepImpactMin       = 0.7
	sleepImpactMax       = 1.3
	sleepTargetHours     = 8.0
	sleepDurationCeiling = 1.2

	// Nutrition factor bounds; protein target is 1.6 g per kg bodyweight.
	nutritionImpactMin   = 0.8
	nutritionImpactMax   = 1.2
	proteinTargetPerKgG  = 1.6
	minutesPerHour       = 60.0
	qualityRatingCeiling = 10.0
)

// fitnessLevelFactors maps experience tiers to recovery capacity.
var fitnessLevelFactors = map[FitnessLevel]float64{
	FitnessBeginner:     0.8,
	FitnessIntermediate: 1.0,
	FitnessAdvanced:     1.2,
	FitnessExpert:       1.3,
}

// lifestyleAdjustments scales the baseline recovery rate by daily-life
// load. Unrecognized categories leave the rate at 1.0.
var lifestyleAdjustments = map[string]float64{
	"physical_job":  0.9,
	"office_worker": 0.95,
	"student":       1.05,
}

// injuryKeywords maps free-text injury fragments to affected muscle groups.
// The mapping is deliberately partial; unmatched descriptions are dropped.
var injuryKeywords = []struct {
	keyword string
	muscles []MuscleGroup
}{
	{"shoulder", []MuscleGroup{Shoulders}},
	{"back", []MuscleGroup{Back}},
	{"knee", []MuscleGroup{Quadriceps, Hamstrings}},
	{"ankle", []MuscleGroup{Calves}},
}

// BuildProfile derives the per-user recovery factors from profile info and
// up to a week of sleep and nutrition history. Missing sleep or nutrition
// data yields neutral factors rather than an error.
func BuildProfile(info UserInfo, sleep []SleepSession, nutrition []NutritionDay) Profile {
	profile := Profile{
		RecoveryRateMultiplier: lifestyleMultiplier(info.Lifestyle),
		SleepQualityImpact:     sleepImpact(sleep),
		NutritionQualityImpact: nutritionImpact(nutrition, info.WeightKg),
		StressLevelImpact:      1.0,
		HydrationImpact:        1.0,
		AgeFactor:              ageFactor(info.Age),
		FitnessLevelFactor:     fitnessFactor(info.FitnessLevel),
		InjuryHistory:          injuryHistory(info.Injuries),
		Supplements:            info.Supplements,
	}
	return profile
}

func ageFactor(age int) float64 {
	factor := ageFactorBase - float64(age-ageFactorBaseline)*ageFactorPerYear
	return clamp(ageFactorFloor, ageFactorCeiling, factor)
}

func fitnessFactor(level FitnessLevel) float64 {
	if factor, ok := fitnessLevelFactors[level]; ok {
		return factor
	}
	return 1.0
}

func lifestyleMultiplier(lifestyle string) float64 {
	multiplier := 1.0
	if adjustment, ok := lifestyleAdjustments[lifestyle]; ok {
		multiplier *= adjustment
	}
	return multiplier
}

// sleepImpact combines mean quality with mean duration relative to the
// 8-hour target. Extra sleep helps up to 20% over target.
func sleepImpact(sessions []SleepSession) float64 {
	if len(sessions) == 0 {
		return 1.0
	}

	var qualitySum, hourSum float64
	for _, s := range sessions {
		qualitySum += s.QualityRating
		hourSum += float64(s.DurationMinutes) / minutesPerHour
	}
	avgQuality := qualitySum / float64(len(sessions))
	avgHours := hourSum / float64(len(sessions))

	durationRatio := avgHours / sleepTargetHours
	if durationRatio > sleepDurationCeiling {
		durationRatio = sleepDurationCeiling
	}

	return clamp(sleepImpactMin, sleepImpactMax, (avgQuality/qualityRatingCeiling)*durationRatio)
}

// nutritionImpact compares mean protein intake to the bodyweight-based
// target. Without nutrition data or a weight on file it stays neutral.
func nutritionImpact(days []NutritionDay, weightKg float64) float64 {
	if len(days) == 0 || weightKg <= 0 {
		return 1.0
	}

	var proteinSum float64
	for _, d := range days {
		proteinSum += d.TotalProteinG
	}
	avgProtein := proteinSum / float64(len(days))

	return clamp(nutritionImpactMin, nutritionImpactMax, avgProtein/(weightKg*proteinTargetPerKgG))
}

// injuryHistory keyword-matches injury descriptions to muscle groups.
func injuryHistory(injuries []string) map[MuscleGroup]bool {
	history := make(map[MuscleGroup]bool)
	for _, injury := range injuries {
		lowered := strings.ToLower(injury)
		for _, mapping := range injuryKeywords {
			if strings.Contains(lowered, mapping.keyword) {
				for _, muscle := range mapping.muscles {
					history[muscle] = true
				}
			}
		}
	}
	return history
}

func clamp(low, high, value float64) float64 {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
