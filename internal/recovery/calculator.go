package recovery

import (
	"math"
	"time"
)

// Calculator constants.
const (
	// lookbackWindow bounds which workouts still influence recovery.
	lookbackWindow = 7 * 24 * time.Hour

	// Volume multiplier: 12 sets is the baseline workload.
	volumeBaselineSets   = 12.0
	volumeMultiplierMin  = 0.8
	volumeMultiplierMax  = 1.5
	injuredReadinessMult = 0.9
	smallMuscleReadiness = 1.1

	minLevel = 1
	maxLevel = 10
)

// baseRecoveryHours is the unadjusted recovery window per muscle group.
// Large muscles take the better part of two days, small ones about one.
var baseRecoveryHours = map[MuscleGroup]float64{
	Chest:      48,
	Back:       48,
	Shoulders:  36,
	Biceps:     36,
	Triceps:    36,
	Forearms:   24,
	Quadriceps: 48,
	Hamstrings: 48,
	Glutes:     48,
	Calves:     24,
	Core:       24,
	Traps:      36,
	Lats:       48,
	Delts:      36,
}

// baseFatigue is the fatigue ceiling per intensity; actual fatigue scales
// with how much recovery is still outstanding.
var baseFatigue = map[Intensity]float64{
	IntensityLight:    2,
	IntensityModerate: 4,
	IntensityHigh:     6,
	IntensityExtreme:  8,
}

// Soreness rises until peakHours after the workout, then decays back to
// baseline by the end of the recovery window.
var maxSoreness = map[Intensity]float64{
	IntensityLight:    3,
	IntensityModerate: 5,
	IntensityHigh:     7,
	IntensityExtreme:  9,
}

var peakSorenessHours = map[Intensity]float64{
	IntensityLight:    12,
	IntensityModerate: 24,
	IntensityHigh:     36,
	IntensityExtreme:  48,
}

// smallMuscles recover faster and carry lower training risk, which nudges
// their readiness up.
var smallMuscles = map[MuscleGroup]bool{
	Biceps:   true,
	Triceps:  true,
	Forearms: true,
	Calves:   true,
	Core:     true,
}

// ComputeRecovery estimates the current recovery state of every muscle
// group from the user's profile and recent workouts.
//
// Only workouts completed within the lookback window count, and for each
// muscle only the most recent impact. Muscles without a recent impact
// report full recovery. The result always holds all 14 groups in canonical
// order, and calling again with a later now moves every percentage
// monotonically toward 100.
func ComputeRecovery(profile Profile, workouts []Workout, now time.Time) []MuscleRecovery {
	latest := latestImpacts(workouts, now)

	results := make([]MuscleRecovery, 0, len(muscleGroups))
	for _, muscle := range muscleGroups {
		impact, ok := latest[muscle]
		if !ok {
			results = append(results, restedMuscle(muscle, now))
			continue
		}
		results = append(results, computeMuscle(profile, muscle, impact, now))
	}
	return results
}

// latestImpacts keeps the single most recent impact per muscle group from
// workouts completed within the lookback window.
func latestImpacts(workouts []Workout, now time.Time) map[MuscleGroup]Impact {
	latest := make(map[MuscleGroup]Impact)
	cutoff := now.Add(-lookbackWindow)

	for _, w := range workouts {
		if w.CompletedAt.Before(cutoff) || w.CompletedAt.After(now) {
			continue
		}
		for _, impact := range AnalyzeWorkout(w) {
			current, ok := latest[impact.MuscleGroup]
			if !ok || impact.CompletedAt.After(current.CompletedAt) {
				latest[impact.MuscleGroup] = impact
			}
		}
	}
	return latest
}

// restedMuscle is the state of a muscle with no training inside the
// lookback window: absence of recent work means full recovery, not unknown.
func restedMuscle(muscle MuscleGroup, now time.Time) MuscleRecovery {
	return MuscleRecovery{
		MuscleGroup:        muscle,
		Status:             StatusFullyRecovered,
		RecoveryPercentage: 100,
		FatigueLevel:       minLevel,
		SorenessLevel:      minLevel,
		ReadinessScore:     100,
		LastUpdated:        now,
	}
}

func computeMuscle(profile Profile, muscle MuscleGroup, impact Impact, now time.Time) MuscleRecovery {
	totalHours := recoveryHours(profile, muscle, impact)
	elapsedHours := now.Sub(impact.CompletedAt).Hours()

	pct := clamp(0, 100, 100*elapsedHours/totalHours)
	fullRecovery := impact.CompletedAt.Add(time.Duration(totalHours * float64(time.Hour)))
	completedAt := impact.CompletedAt

	return MuscleRecovery{
		MuscleGroup:           muscle,
		LastWorkoutAt:         &completedAt,
		WorkoutIntensity:      impact.Intensity,
		WorkoutVolume:         impact.Volume,
		WorkoutMinutes:        impact.DurationMinutes,
		Status:                StatusForPercentage(pct),
		RecoveryPercentage:    pct,
		EstimatedFullRecovery: &fullRecovery,
		FatigueLevel:          fatigueLevel(impact.Intensity, pct),
		SorenessLevel:         sorenessLevel(impact.Intensity, elapsedHours, totalHours),
		ReadinessScore:        readinessScore(profile, muscle, pct),
		LastUpdated:           now,
	}
}

// recoveryHours is the personalized time-to-full-recovery for one impact.
// Intensity and volume stretch the muscle's base window; every profile
// factor above 1.0 shortens it.
func recoveryHours(profile Profile, muscle MuscleGroup, impact Impact) float64 {
	hours := baseRecoveryHours[muscle]
	hours *= intensityMultiplier[impact.Intensity]
	hours *= clamp(volumeMultiplierMin, volumeMultiplierMax, float64(impact.Volume)/volumeBaselineSets)
	hours /= profile.RecoveryRateMultiplier
	hours /= profile.SleepQualityImpact
	hours /= profile.NutritionQualityImpact
	hours /= profile.AgeFactor
	hours /= profile.FitnessLevelFactor
	return hours
}

// fatigueLevel scales the per-intensity ceiling by outstanding recovery.
func fatigueLevel(intensity Intensity, pct float64) int {
	level := int(math.Round(baseFatigue[intensity] * (100 - pct) / 100))
	return clampLevel(level)
}

// sorenessLevel follows a rise-then-decay curve: linear from 0 up to the
// intensity's peak soreness, then linear back down to baseline by the time
// the muscle is fully recovered. A fast-recovering profile can shrink the
// recovery window below the nominal peak hour mark, so the peak is capped
// at the window and soreness always settles once recovery completes.
func sorenessLevel(intensity Intensity, elapsedHours, totalHours float64) int {
	peak := math.Min(peakSorenessHours[intensity], totalHours)
	maxLevelForIntensity := maxSoreness[intensity]

	var raw float64
	switch {
	case elapsedHours <= 0:
		raw = 0
	case elapsedHours >= totalHours:
		raw = 1
	case elapsedHours < peak:
		raw = maxLevelForIntensity * elapsedHours / peak
	default:
		decayProgress := (elapsedHours - peak) / (totalHours - peak)
		raw = maxLevelForIntensity - (maxLevelForIntensity-1)*decayProgress
	}

	return clampLevel(int(math.Round(raw)))
}

// readinessScore adjusts the recovery percentage for injury risk and the
// small-muscle heuristic, then folds in the lifestyle factors.
func readinessScore(profile Profile, muscle MuscleGroup, pct float64) float64 {
	score := pct
	if profile.Injured(muscle) {
		score *= injuredReadinessMult
	}
	if smallMuscles[muscle] {
		score *= smallMuscleReadiness
	}
	score *= profile.SleepQualityImpact
	score *= profile.NutritionQualityImpact
	score *= profile.AgeFactor
	return clamp(0, 100, score)
}

func clampLevel(level int) int {
	if level < minLevel {
		return minLevel
	}
	if level > maxLevel {
		return maxLevel
	}
	return level
}
