package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pulseboard/pulseboard/internal/domain"
	"github.com/pulseboard/pulseboard/internal/llmjson"
	"github.com/pulseboard/pulseboard/internal/logger"
	"github.com/pulseboard/pulseboard/internal/ports"
)

const transcriptPrompt = `Analyze this meeting transcript and extract action items. For each action item, identify:
1. The task to be done (be specific and actionable)
2. Who should do it (assignee) - use the person's name if mentioned, otherwise "Unassigned"
3. Priority (high, medium, or low) - use "high" only for urgent or blocking items

Return ONLY a valid JSON array with this exact format, no other text or explanation:
[
  {
    "task": "description of the task",
    "assignee": "person name or Unassigned",
    "priority": "high"
  }
]

If there are no clear action items, return an empty array: []

Here is the transcript:
%s`

// TranscriptUseCase asks the completion service to turn a meeting transcript
// into structured action items, then parses the answer defensively.
type TranscriptUseCase struct {
	completion ports.CompletionService
	log        logger.Logger
}

// NewTranscriptUseCase creates the transcript use case.
func NewTranscriptUseCase(completion ports.CompletionService, log logger.Logger) *TranscriptUseCase {
	return &TranscriptUseCase{completion: completion, log: log}
}

// ExtractActionItems extracts and normalizes action items from transcript
// text. Items without a task are dropped; assignee defaults to the
// Unassigned sentinel, priority to medium. Fails closed when the completion
// contains no parseable JSON array.
func (uc *TranscriptUseCase) ExtractActionItems(ctx context.Context, transcript string) ([]domain.ActionItem, error) {
	text, err := uc.completion.Complete(ctx, ports.CompletionRequest{
		Prompt:    fmt.Sprintf(transcriptPrompt, transcript),
		MaxTokens: 1024,
	})
	if err != nil {
		return nil, fmt.Errorf("transcript completion: %w", err)
	}

	parsed, err := llmjson.ExtractArray(text)
	if err != nil {
		uc.log.Error(ctx, "completion output not parseable as action items", err, map[string]interface{}{
			"completion_length": len(text),
		})
		return nil, err
	}

	items := make([]domain.ActionItem, 0)
	for _, raw := range parsed.Array() {
		task := strings.TrimSpace(raw.Get("task").String())
		if task == "" {
			continue
		}

		assignee := strings.TrimSpace(raw.Get("assignee").String())
		if assignee == "" {
			assignee = domain.UnassignedSentinel
		}

		priority := domain.Priority(strings.TrimSpace(raw.Get("priority").String()))
		if !domain.ValidPriority(priority) {
			priority = domain.PriorityMedium
		}

		items = append(items, domain.ActionItem{
			ID:       uuid.NewString(),
			Task:     task,
			Assignee: assignee,
			Priority: priority,
			Selected: true,
		})
	}
	return items, nil
}
