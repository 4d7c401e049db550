package recovery

import (
	"testing"
	"time"
)

// neutralProfile has every factor at 1.0 so recovery math reduces to the
// base windows.
func neutralProfile() Profile {
	return Profile{
		RecoveryRateMultiplier: 1.0,
		SleepQualityImpact:     1.0,
		NutritionQualityImpact: 1.0,
		StressLevelImpact:      1.0,
		HydrationImpact:        1.0,
		AgeFactor:              1.0,
		FitnessLevelFactor:     1.0,
	}
}

// chestWorkout grades moderate (40 minutes) with a baseline 12-set volume,
// so chest recovers over exactly its 48-hour base window.
func chestWorkout(completedAt time.Time) Workout {
	return Workout{
		Type:            "chest",
		DurationMinutes: 40,
		CompletedAt:     completedAt,
		Exercises: []Exercise{
			{Name: "Flat Dumbbell Fly", Sets: 4},
			{Name: "Incline Dumbbell Fly", Sets: 4},
			{Name: "Cable Crossover", Sets: 4},
		},
	}
}

func TestComputeRecovery_NoWorkoutsMeansFullyRecovered(t *testing.T) {
	now := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)

	muscles := ComputeRecovery(neutralProfile(), nil, now)

	if len(muscles) != len(muscleGroups) {
		t.Fatalf("ComputeRecovery() returned %d muscles, want %d", len(muscles), len(muscleGroups))
	}
	for i, m := range muscles {
		if m.MuscleGroup != muscleGroups[i] {
			t.Errorf("muscle[%d] = %s, want canonical order %s", i, m.MuscleGroup, muscleGroups[i])
		}
		if m.RecoveryPercentage != 100 {
			t.Errorf("%s recovery = %v, want 100", m.MuscleGroup, m.RecoveryPercentage)
		}
		if m.Status != StatusFullyRecovered {
			t.Errorf("%s status = %s, want %s", m.MuscleGroup, m.Status, StatusFullyRecovered)
		}
		if m.LastWorkoutAt != nil {
			t.Errorf("%s has LastWorkoutAt set without any workout", m.MuscleGroup)
		}
	}
}

func TestComputeRecovery_HalfwayThroughWindow(t *testing.T) {
	completedAt := time.Date(2026, 8, 21, 12, 0, 0, 0, time.UTC)
	now := completedAt.Add(24 * time.Hour)

	muscles := ComputeRecovery(neutralProfile(), []Workout{chestWorkout(completedAt)}, now)

	chest := findMuscle(t, muscles, Chest)
	if chest.RecoveryPercentage != 50 {
		t.Errorf("chest recovery = %v, want 50", chest.RecoveryPercentage)
	}
	if chest.Status != StatusNeedsRecovery {
		t.Errorf("chest status = %s, want %s", chest.Status, StatusNeedsRecovery)
	}
	if chest.LastWorkoutAt == nil || !chest.LastWorkoutAt.Equal(completedAt) {
		t.Errorf("chest LastWorkoutAt = %v, want %v", chest.LastWorkoutAt, completedAt)
	}
	wantFull := completedAt.Add(48 * time.Hour)
	if chest.EstimatedFullRecovery == nil || !chest.EstimatedFullRecovery.Equal(wantFull) {
		t.Errorf("chest EstimatedFullRecovery = %v, want %v", chest.EstimatedFullRecovery, wantFull)
	}
	// Moderate fatigue ceiling is 4; half outstanding rounds to 2.
	if chest.FatigueLevel != 2 {
		t.Errorf("chest fatigue = %d, want 2", chest.FatigueLevel)
	}
	// Soreness peaks at 5 exactly 24 hours after a moderate session.
	if chest.SorenessLevel != 5 {
		t.Errorf("chest soreness = %d, want 5", chest.SorenessLevel)
	}
	if chest.ReadinessScore != 50 {
		t.Errorf("chest readiness = %v, want 50", chest.ReadinessScore)
	}

	// Untrained muscles stay fully recovered.
	back := findMuscle(t, muscles, Back)
	if back.RecoveryPercentage != 100 {
		t.Errorf("back recovery = %v, want 100", back.RecoveryPercentage)
	}
}

func TestComputeRecovery_MonotonicOverTime(t *testing.T) {
	completedAt := time.Date(2026, 8, 21, 12, 0, 0, 0, time.UTC)
	workouts := []Workout{
		chestWorkout(completedAt),
		{Type: "legs", DurationMinutes: 95, Difficulty: "advanced", CompletedAt: completedAt},
	}

	earlier := ComputeRecovery(neutralProfile(), workouts, completedAt.Add(12*time.Hour))
	later := ComputeRecovery(neutralProfile(), workouts, completedAt.Add(36*time.Hour))

	for i := range earlier {
		if later[i].RecoveryPercentage < earlier[i].RecoveryPercentage {
			t.Errorf("%s recovery went backwards: %v then %v",
				earlier[i].MuscleGroup, earlier[i].RecoveryPercentage, later[i].RecoveryPercentage)
		}
	}
}

func TestComputeRecovery_ExtremeRecoversSlowerThanLight(t *testing.T) {
	completedAt := time.Date(2026, 8, 21, 12, 0, 0, 0, time.UTC)
	now := completedAt.Add(24 * time.Hour)

	light := Workout{Type: "chest", DurationMinutes: 25, CompletedAt: completedAt}
	extreme := Workout{Type: "chest", DurationMinutes: 95, Difficulty: "advanced", CompletedAt: completedAt}

	lightChest := findMuscle(t, ComputeRecovery(neutralProfile(), []Workout{light}, now), Chest)
	extremeChest := findMuscle(t, ComputeRecovery(neutralProfile(), []Workout{extreme}, now), Chest)

	if lightChest.WorkoutIntensity != IntensityLight {
		t.Fatalf("short session graded %s, want %s", lightChest.WorkoutIntensity, IntensityLight)
	}
	if extremeChest.WorkoutIntensity != IntensityExtreme {
		t.Fatalf("advanced session graded %s, want %s", extremeChest.WorkoutIntensity, IntensityExtreme)
	}
	if extremeChest.RecoveryPercentage >= lightChest.RecoveryPercentage {
		t.Errorf("extreme recovery %v not behind light %v at the same elapsed time",
			extremeChest.RecoveryPercentage, lightChest.RecoveryPercentage)
	}
}

func TestComputeRecovery_OldWorkoutsFallOutOfWindow(t *testing.T) {
	now := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	old := chestWorkout(now.Add(-8 * 24 * time.Hour))

	muscles := ComputeRecovery(neutralProfile(), []Workout{old}, now)

	chest := findMuscle(t, muscles, Chest)
	if chest.RecoveryPercentage != 100 {
		t.Errorf("chest recovery = %v, want 100 for a workout outside the window", chest.RecoveryPercentage)
	}
}

func TestComputeRecovery_OnlyMostRecentImpactCounts(t *testing.T) {
	now := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	workouts := []Workout{
		chestWorkout(now.Add(-72 * time.Hour)),
		chestWorkout(now.Add(-24 * time.Hour)),
	}

	muscles := ComputeRecovery(neutralProfile(), workouts, now)

	chest := findMuscle(t, muscles, Chest)
	if chest.LastWorkoutAt == nil || !chest.LastWorkoutAt.Equal(now.Add(-24*time.Hour)) {
		t.Errorf("chest LastWorkoutAt = %v, want the most recent session", chest.LastWorkoutAt)
	}
	if chest.RecoveryPercentage != 50 {
		t.Errorf("chest recovery = %v, want 50 from the most recent session only", chest.RecoveryPercentage)
	}
}

func TestComputeRecovery_HigherFitnessRecoversFaster(t *testing.T) {
	completedAt := time.Date(2026, 8, 21, 12, 0, 0, 0, time.UTC)
	now := completedAt.Add(24 * time.Hour)
	workouts := []Workout{chestWorkout(completedAt)}

	beginner := neutralProfile()
	beginner.FitnessLevelFactor = 0.8
	advanced := neutralProfile()
	advanced.FitnessLevelFactor = 1.2

	slowChest := findMuscle(t, ComputeRecovery(beginner, workouts, now), Chest)
	fastChest := findMuscle(t, ComputeRecovery(advanced, workouts, now), Chest)

	if fastChest.RecoveryPercentage <= slowChest.RecoveryPercentage {
		t.Errorf("advanced recovery %v not ahead of beginner %v",
			fastChest.RecoveryPercentage, slowChest.RecoveryPercentage)
	}
}

func TestComputeRecovery_SorenessSettlesWhenRecoveryOutpacesPeak(t *testing.T) {
	completedAt := time.Date(2026, 8, 21, 12, 0, 0, 0, time.UTC)

	// A very fit user after a short light leg session: the calves window
	// shrinks to about 10.3 hours, well under the nominal 12-hour light
	// soreness peak.
	profile := neutralProfile()
	profile.FitnessLevelFactor = 1.3
	w := Workout{Type: "legs", DurationMinutes: 25, CompletedAt: completedAt}

	calves := findMuscle(t, ComputeRecovery(profile, []Workout{w}, completedAt.Add(11*time.Hour)), Calves)
	if calves.RecoveryPercentage != 100 {
		t.Fatalf("calves recovery = %v, want 100", calves.RecoveryPercentage)
	}
	if calves.Status != StatusFullyRecovered {
		t.Errorf("calves status = %s, want %s", calves.Status, StatusFullyRecovered)
	}
	if calves.SorenessLevel != 1 {
		t.Errorf("calves soreness = %d, want baseline 1 at full recovery", calves.SorenessLevel)
	}

	// Inside the compressed window the curve still rises toward the light
	// cap of 3, just over fewer hours.
	midway := findMuscle(t, ComputeRecovery(profile, []Workout{w}, completedAt.Add(9*time.Hour)), Calves)
	if midway.SorenessLevel != 3 {
		t.Errorf("calves soreness = %d nine hours in, want 3", midway.SorenessLevel)
	}
}

func TestComputeRecovery_ReadinessAdjustments(t *testing.T) {
	completedAt := time.Date(2026, 8, 21, 12, 0, 0, 0, time.UTC)
	now := completedAt.Add(24 * time.Hour)

	t.Run("injured muscle is held back", func(t *testing.T) {
		profile := neutralProfile()
		profile.InjuryHistory = map[MuscleGroup]bool{Chest: true}

		chest := findMuscle(t, ComputeRecovery(profile, []Workout{chestWorkout(completedAt)}, now), Chest)
		if chest.ReadinessScore != 45 {
			t.Errorf("injured chest readiness = %v, want 45", chest.ReadinessScore)
		}
	})

	t.Run("small muscles get a nudge up", func(t *testing.T) {
		w := Workout{
			Type:            "core",
			DurationMinutes: 40,
			CompletedAt:     completedAt,
			Exercises:       []Exercise{{Name: "Weighted Plank", Sets: 12}},
		}

		// Core has a 24-hour base window; 12 hours in it sits at 50%.
		core := findMuscle(t, ComputeRecovery(neutralProfile(), []Workout{w}, completedAt.Add(12*time.Hour)), Core)
		if core.ReadinessScore != 55 {
			t.Errorf("core readiness = %v, want 55 at halfway", core.ReadinessScore)
		}
	})
}

func findMuscle(t *testing.T, muscles []MuscleRecovery, group MuscleGroup) MuscleRecovery {
	t.Helper()
	for _, m := range muscles {
		if m.MuscleGroup == group {
			return m
		}
	}
	t.Fatalf("muscle %s not found in results", group)
	return MuscleRecovery{}
}
