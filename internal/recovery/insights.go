package recovery

import (
	"context"
	"fmt"
	"strings"

	"github.com/mlinna/recoverly/internal/errors"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const insightModel = openai.ChatModelGPT4oMini

const insightSystemPrompt = `You are a recovery coach for recreational athletes.
You receive a summary of the user's current muscle recovery state and respond
with a short, encouraging weekly insight: two or three sentences on how their
recovery is going and one concrete suggestion for today's training. Plain text
only, no markdown, no lists.`

// insightGenerator asks a language model for the weekly insight text.
type insightGenerator struct {
	client openai.Client
}

func newInsightGenerator(apiKey string) *insightGenerator {
	return &insightGenerator{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
	}
}

// Generate produces the weekly insight from a snapshot.
func (g *insightGenerator) Generate(ctx context.Context, snapshot Snapshot) (string, error) {
	chat, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: insightModel,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(insightSystemPrompt),
			openai.UserMessage(describeSnapshot(snapshot)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(chat.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	insight := strings.TrimSpace(chat.Choices[0].Message.Content)
	if insight == "" {
		return "", errors.New("chat completion returned empty content")
	}
	return insight, nil
}

// describeSnapshot renders the snapshot as the model's input. Keeping it
// plain text keeps the prompt readable in request logs.
func describeSnapshot(snapshot Snapshot) string {
	var b strings.Builder

	m := snapshot.Metrics
	fmt.Fprintf(&b, "Overall recovery score: %d/100\n", m.OverallRecoveryScore)
	fmt.Fprintf(&b, "Most recovered muscle: %s\n", m.MostRecoveredMuscle)
	fmt.Fprintf(&b, "Least recovered muscle: %s\n", m.LeastRecoveredMuscle)
	fmt.Fprintf(&b, "Ready for training: %s\n", joinGroups(m.ReadyForTraining))
	fmt.Fprintf(&b, "Needs rest: %s\n", joinGroups(m.NeedsRest))
	fmt.Fprintf(&b, "Suggested session shape: %s\n", m.OptimalWorkoutType)

	b.WriteString("Muscle detail:\n")
	for _, muscle := range snapshot.Muscles {
		fmt.Fprintf(&b, "- %s: %.0f%% recovered (%s), fatigue %d/10, soreness %d/10\n",
			muscle.MuscleGroup, muscle.RecoveryPercentage, muscle.Status,
			muscle.FatigueLevel, muscle.SorenessLevel)
	}

	if len(snapshot.Recommendations) > 0 {
		b.WriteString("Active recommendations:\n")
		for _, rec := range snapshot.Recommendations {
			fmt.Fprintf(&b, "- [%s] %s: %s\n", rec.Priority, rec.MuscleGroup, rec.Message)
		}
	}

	return b.String()
}

// fallbackInsight is the deterministic summary used without an API key or
// when the model call fails.
func fallbackInsight(snapshot Snapshot) string {
	m := snapshot.Metrics

	var b strings.Builder
	fmt.Fprintf(&b, "Your overall recovery score is %d out of 100. ", m.OverallRecoveryScore)

	switch {
	case len(m.NeedsRest) == 0:
		b.WriteString("All muscle groups are ready to train. ")
	case len(m.ReadyForTraining) == 0:
		fmt.Fprintf(&b, "Nothing is fully fresh right now; %s needs rest the most. ",
			m.LeastRecoveredMuscle)
	default:
		fmt.Fprintf(&b, "%s is your freshest muscle group while %s still needs rest. ",
			m.MostRecoveredMuscle, m.LeastRecoveredMuscle)
	}

	switch m.OptimalWorkoutType {
	case ShapeRest:
		b.WriteString("Today is best spent resting.")
	case ShapeLightCardio:
		b.WriteString("Keep today easy with some light cardio.")
	case ShapeTargeted:
		fmt.Fprintf(&b, "A targeted session around %s would fit well today.",
			joinGroups(m.ReadyForTraining))
	default:
		fmt.Fprintf(&b, "A %s session would fit well today.",
			strings.ReplaceAll(string(m.OptimalWorkoutType), "_", " "))
	}

	return b.String()
}

func joinGroups(groups []MuscleGroup) string {
	if len(groups) == 0 {
		return "none"
	}
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = string(g)
	}
	return strings.Join(names, ", ")
}
