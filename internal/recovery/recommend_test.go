package recovery_test

import (
	"testing"
	"time"

	"github.com/mlinna/recoverly/internal/recovery"
)

func muscleAt(group recovery.MuscleGroup, pct float64, fatigue, soreness int) recovery.MuscleRecovery {
	return recovery.MuscleRecovery{
		MuscleGroup:        group,
		Status:             recovery.StatusForPercentage(pct),
		RecoveryPercentage: pct,
		FatigueLevel:       fatigue,
		SorenessLevel:      soreness,
		ReadinessScore:     pct,
		LastUpdated:        time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC),
	}
}

func TestGenerateRecommendations_PrimaryBrackets(t *testing.T) {
	testCases := []struct {
		name         string
		pct          float64
		wantType     recovery.RecommendationType
		wantPriority recovery.Priority
	}{
		{name: "overworked muscle needs rest", pct: 25, wantType: recovery.RecommendRest, wantPriority: recovery.PriorityCritical},
		{name: "low recovery suggests light activity", pct: 40, wantType: recovery.RecommendLightActivity, wantPriority: recovery.PriorityHigh},
		{name: "partial recovery suggests stretching", pct: 65, wantType: recovery.RecommendStretching, wantPriority: recovery.PriorityMedium},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			recs := recovery.GenerateRecommendations([]recovery.MuscleRecovery{
				muscleAt(recovery.Chest, tc.pct, 3, 3),
			})

			if len(recs) != 1 {
				t.Fatalf("GenerateRecommendations() returned %d recs, want 1", len(recs))
			}
			if recs[0].Type != tc.wantType {
				t.Errorf("rec type = %s, want %s", recs[0].Type, tc.wantType)
			}
			if recs[0].Priority != tc.wantPriority {
				t.Errorf("rec priority = %s, want %s", recs[0].Priority, tc.wantPriority)
			}
			if recs[0].MuscleGroup != recovery.Chest {
				t.Errorf("rec muscle = %s, want %s", recs[0].MuscleGroup, recovery.Chest)
			}
			if len(recs[0].Actions) == 0 {
				t.Error("rec has no actions")
			}
		})
	}
}

func TestGenerateRecommendations_RecoveredMuscleIsSilent(t *testing.T) {
	recs := recovery.GenerateRecommendations([]recovery.MuscleRecovery{
		muscleAt(recovery.Chest, 85, 2, 2),
	})

	if len(recs) != 0 {
		t.Errorf("GenerateRecommendations() returned %d recs for a recovered muscle, want 0", len(recs))
	}
}

func TestGenerateRecommendations_SoreMuscleAddsNutrition(t *testing.T) {
	recs := recovery.GenerateRecommendations([]recovery.MuscleRecovery{
		muscleAt(recovery.Hamstrings, 65, 3, 7),
	})

	if len(recs) != 2 {
		t.Fatalf("GenerateRecommendations() returned %d recs, want stretching plus nutrition", len(recs))
	}
	if recs[0].Type != recovery.RecommendNutrition {
		t.Errorf("recs[0].Type = %s, want %s first by benefit", recs[0].Type, recovery.RecommendNutrition)
	}
	if recs[1].Type != recovery.RecommendStretching {
		t.Errorf("recs[1].Type = %s, want %s", recs[1].Type, recovery.RecommendStretching)
	}
}

func TestGenerateRecommendations_FatiguedMuscleAddsSleep(t *testing.T) {
	recs := recovery.GenerateRecommendations([]recovery.MuscleRecovery{
		muscleAt(recovery.Quadriceps, 40, 7, 3),
	})

	if len(recs) != 2 {
		t.Fatalf("GenerateRecommendations() returned %d recs, want light activity plus sleep", len(recs))
	}
	// Both are high priority; sleep wins on estimated benefit.
	if recs[0].Type != recovery.RecommendSleep {
		t.Errorf("recs[0].Type = %s, want %s", recs[0].Type, recovery.RecommendSleep)
	}
	if recs[1].Type != recovery.RecommendLightActivity {
		t.Errorf("recs[1].Type = %s, want %s", recs[1].Type, recovery.RecommendLightActivity)
	}
	if recs[0].DurationMinutes == nil || *recs[0].DurationMinutes != 480 {
		t.Errorf("sleep duration = %v, want 480 minutes", recs[0].DurationMinutes)
	}
}

func TestGenerateRecommendations_SortedByPriorityThenBenefit(t *testing.T) {
	recs := recovery.GenerateRecommendations([]recovery.MuscleRecovery{
		muscleAt(recovery.Biceps, 65, 3, 3),
		muscleAt(recovery.Chest, 25, 3, 3),
		muscleAt(recovery.Back, 40, 3, 3),
	})

	wantOrder := []recovery.RecommendationType{
		recovery.RecommendRest,
		recovery.RecommendLightActivity,
		recovery.RecommendStretching,
	}
	if len(recs) != len(wantOrder) {
		t.Fatalf("GenerateRecommendations() returned %d recs, want %d", len(recs), len(wantOrder))
	}
	for i, wantType := range wantOrder {
		if recs[i].Type != wantType {
			t.Errorf("recs[%d].Type = %s, want %s", i, recs[i].Type, wantType)
		}
	}
}
