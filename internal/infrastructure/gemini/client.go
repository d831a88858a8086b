package gemini

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/rvc-001/planning-sub000/internal/domain/constants"
	"github.com/rvc-001/planning-sub000/internal/domain/repository"
)

type insightClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewInsightClient builds the dashboard summarizer. The whole feature is
// optional; callers skip construction when no API key is configured.
func NewInsightClient(apiKey string) (repository.InsightRepository, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(constants.GeminiModelName)
	model.SetTemperature(constants.AITemperature)
	model.SetTopK(constants.AITopK)
	model.SetTopP(constants.AITopP)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{
			genai.Text("You are a production-planning assistant. Given how many job cards " +
				"are waiting in each workflow stage, write two or three plain sentences " +
				"pointing out where work is piling up. No markdown, no lists."),
		},
	}

	return &insightClient{client: client, model: model}, nil
}

// SummarizeCounts turns the per-stage pending counts into a short
// free-text reading.
func (g *insightClient) SummarizeCounts(ctx context.Context, counts map[string]int) (string, error) {
	stages := make([]string, 0, len(counts))
	for label := range counts {
		stages = append(stages, label)
	}
	sort.Strings(stages)

	var sb strings.Builder
	sb.WriteString("Pending job cards per stage:\n")
	for _, label := range stages {
		fmt.Fprintf(&sb, "%s: %d\n", label, counts[label])
	}

	resp, err := g.model.GenerateContent(ctx, genai.Text(sb.String()))
	if err != nil {
		return "", err
	}
	text := extractText(resp)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("empty response")
	}
	return strings.TrimSpace(text), nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
	}
	return sb.String()
}
