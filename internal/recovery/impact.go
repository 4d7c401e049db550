package recovery

import "strings"

// Impact analysis constants.
const (
	defaultSetsPerExercise = 3

	// Workout-level intensity thresholds.
	extremeDurationMinutes  = 90
	highDurationMinutes     = 60
	moderateDurationMinutes = 30

	// Per-exercise RPE thresholds.
	extremeRPE  = 9
	highRPE     = 7
	moderateRPE = 5
)

// workoutTypeMuscles maps a workout type directly to the muscle set it
// stresses. Types without an entry fall back to per-exercise inference.
var workoutTypeMuscles = map[string][]MuscleGroup{
	"chest":       {Chest, Triceps, Delts},
	"back":        {Back, Lats, Biceps, Traps},
	"shoulders":   {Delts, Traps},
	"arms":        {Biceps, Triceps, Forearms},
	"legs":        {Quadriceps, Hamstrings, Glutes, Calves},
	"core":        {Core},
	"cardio":      {},
	"flexibility": {},
}

// movementKeywords matches exercise names to muscle sets. Rules are checked
// in order and the first match wins, so more specific patterns (leg press)
// come before generic ones (press).
var movementKeywords = []struct {
	keywords []string
	muscles  []MuscleGroup
}{
	{[]string{"bench", "push"}, []MuscleGroup{Chest, Triceps, Delts}},
	{[]string{"pull", "row"}, []MuscleGroup{Back, Lats, Biceps}},
	{[]string{"squat", "leg press"}, []MuscleGroup{Quadriceps, Glutes}},
	{[]string{"deadlift"}, []MuscleGroup{Hamstrings, Glutes, Back, Traps}},
	{[]string{"shoulder", "press"}, []MuscleGroup{Delts, Triceps}},
	{[]string{"curl"}, []MuscleGroup{Biceps}},
	{[]string{"tricep", "dip"}, []MuscleGroup{Triceps}},
	{[]string{"calf"}, []MuscleGroup{Calves}},
	{[]string{"core", "ab"}, []MuscleGroup{Core}},
}

var compoundKeywords = []string{"squat", "deadlift", "bench", "press", "pull", "row", "clean", "snatch"}

var eccentricKeywords = []string{"negative", "eccentric", "slow", "tempo"}

// AnalyzeWorkout maps one completed workout to its per-muscle impacts.
//
// When the workout type has a known muscle mapping, every muscle in the set
// receives one impact sized by overall difficulty and duration. Otherwise
// each listed exercise is attributed individually, preferring an explicit
// muscle-group list over name-keyword inference. A muscle hit by several
// exercises gets one merged impact.
func AnalyzeWorkout(w Workout) []Impact {
	if muscles, ok := workoutTypeMuscles[strings.ToLower(w.Type)]; ok {
		return typeMappedImpacts(w, muscles)
	}
	return exerciseMappedImpacts(w)
}

// typeMappedImpacts spreads a type-mapped workout evenly over its muscle set.
func typeMappedImpacts(w Workout, muscles []MuscleGroup) []Impact {
	if len(muscles) == 0 {
		return nil
	}

	intensity := workoutIntensity(w)
	volume := totalSets(w.Exercises)
	perMuscleMinutes := float64(w.DurationMinutes) / float64(len(muscles))
	compound, eccentric := workoutFlags(w.Exercises)

	impacts := make([]Impact, 0, len(muscles))
	for _, muscle := range muscles {
		impacts = append(impacts, Impact{
			MuscleGroup:     muscle,
			Intensity:       intensity,
			Volume:          volume,
			DurationMinutes: perMuscleMinutes,
			ExerciseTypes:   exerciseNames(w.Exercises),
			Compound:        compound,
			EccentricFocus:  eccentric,
			CompletedAt:     w.CompletedAt,
		})
	}
	return impacts
}

// exerciseMappedImpacts attributes each exercise to muscles individually
// and merges collisions on the same muscle.
func exerciseMappedImpacts(w Workout) []Impact {
	merged := make(map[MuscleGroup]*Impact)
	order := make([]MuscleGroup, 0)

	for _, ex := range w.Exercises {
		muscles := ex.MuscleGroups
		if len(muscles) == 0 {
			muscles = inferMuscles(ex.Name)
		}

		intensity := exerciseIntensity(ex, w)
		sets := ex.Sets
		if sets <= 0 {
			sets = defaultSetsPerExercise
		}
		minutes := float64(w.DurationMinutes)
		if len(w.Exercises) > 0 {
			minutes /= float64(len(w.Exercises))
		}

		for _, muscle := range muscles {
			impact, ok := merged[muscle]
			if !ok {
				merged[muscle] = &Impact{
					MuscleGroup:     muscle,
					Intensity:       intensity,
					Volume:          sets,
					DurationMinutes: minutes,
					ExerciseTypes:   []string{ex.Name},
					Compound:        matchesAny(ex.Name, compoundKeywords),
					EccentricFocus:  matchesAny(ex.Name, eccentricKeywords),
					CompletedAt:     w.CompletedAt,
				}
				order = append(order, muscle)
				continue
			}
			impact.Volume += sets
			impact.DurationMinutes += minutes
			impact.ExerciseTypes = append(impact.ExerciseTypes, ex.Name)
			if intensityOrder(intensity) > intensityOrder(impact.Intensity) {
				impact.Intensity = intensity
			}
			impact.Compound = impact.Compound || matchesAny(ex.Name, compoundKeywords)
			impact.EccentricFocus = impact.EccentricFocus || matchesAny(ex.Name, eccentricKeywords)
		}
	}

	impacts := make([]Impact, 0, len(order))
	for _, muscle := range order {
		impacts = append(impacts, *merged[muscle])
	}
	return impacts
}

// workoutIntensity grades a whole workout from its duration and difficulty.
func workoutIntensity(w Workout) Intensity {
	difficulty := strings.ToLower(w.Difficulty)
	switch {
	case w.DurationMinutes > extremeDurationMinutes || difficulty == "advanced":
		return IntensityExtreme
	case w.DurationMinutes > highDurationMinutes || difficulty == "intermediate":
		return IntensityHigh
	case w.DurationMinutes > moderateDurationMinutes:
		return IntensityModerate
	default:
		return IntensityLight
	}
}

// exerciseIntensity prefers the exercise's own RPE rating and falls back to
// the workout-level grade.
func exerciseIntensity(ex Exercise, w Workout) Intensity {
	if ex.RPE == nil {
		return workoutIntensity(w)
	}
	switch rpe := *ex.RPE; {
	case rpe >= extremeRPE:
		return IntensityExtreme
	case rpe >= highRPE:
		return IntensityHigh
	case rpe >= moderateRPE:
		return IntensityModerate
	default:
		return IntensityLight
	}
}

// inferMuscles matches an exercise name against the movement keyword rules.
// Unmatched exercises fall back to core.
func inferMuscles(name string) []MuscleGroup {
	lowered := strings.ToLower(name)
	for _, rule := range movementKeywords {
		for _, keyword := range rule.keywords {
			if strings.Contains(lowered, keyword) {
				return rule.muscles
			}
		}
	}
	return []MuscleGroup{Core}
}

// totalSets sums the listed set counts, assuming a default per exercise
// when unlisted. A workout with no exercise list counts as one implicit
// exercise so the volume multiplier bottoms out instead of collapsing.
func totalSets(exercises []Exercise) int {
	if len(exercises) == 0 {
		return defaultSetsPerExercise
	}
	total := 0
	for _, ex := range exercises {
		if ex.Sets > 0 {
			total += ex.Sets
		} else {
			total += defaultSetsPerExercise
		}
	}
	return total
}

func workoutFlags(exercises []Exercise) (compound, eccentric bool) {
	for _, ex := range exercises {
		compound = compound || matchesAny(ex.Name, compoundKeywords)
		eccentric = eccentric || matchesAny(ex.Name, eccentricKeywords)
	}
	return compound, eccentric
}

func exerciseNames(exercises []Exercise) []string {
	if len(exercises) == 0 {
		return nil
	}
	names := make([]string, len(exercises))
	for i, ex := range exercises {
		names[i] = ex.Name
	}
	return names
}

func matchesAny(name string, keywords []string) bool {
	lowered := strings.ToLower(name)
	for _, keyword := range keywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}

func intensityOrder(i Intensity) int {
	switch i {
	case IntensityLight:
		return 1
	case IntensityModerate:
		return 2
	case IntensityHigh:
		return 3
	case IntensityExtreme:
		return 4
	default:
		return 0
	}
}
