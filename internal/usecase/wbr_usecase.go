package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pulseboard/pulseboard/internal/domain"
	"github.com/pulseboard/pulseboard/internal/llmjson"
	"github.com/pulseboard/pulseboard/internal/logger"
	"github.com/pulseboard/pulseboard/internal/ports"
)

const wbrPromptTemplate = `You are a PM assistant that generates Weekly Business Review (WBR) documents.

Analyze the following input (which may be meeting notes, transcripts, status updates, or raw notes) and produce a structured WBR document.

The WBR must follow this exact JSON structure:

{
  "title": "Weekly Review %[1]s Week [N] - [date range]",
  "overview": "Executive summary paragraph covering the highlights of the week across all projects",
  "projectUpdates": [
    {
      "projectName": "%[2]s",
      "subsections": [
        {
          "title": "Category name (e.g., Testing & Validation)",
          "bullets": ["Specific update 1", "Specific update 2"]
        }
      ]
    }
  ],
  "upcomingPriorities": [
    {
      "projectName": "%[2]s",
      "items": ["Priority 1", "Priority 2"]
    }
  ]
}

Rules:
- Group updates under the correct project (%[1]s)
- If the input does not clearly separate projects, make your best inference
- Create meaningful subsection groupings (e.g., by feature area, tech domain)
- The overview should be 2-4 sentences summarizing the week's key achievements and focus areas
- Infer the week number and date range from the input if possible, otherwise use placeholder text
- Be detailed and specific in bullet points - include technical details, names, and metrics mentioned
- Return ONLY valid JSON, no additional text

Input:
%[3]s`

// WBRUseCase turns raw weekly notes into a structured business-review
// document via the completion service. The tracked project names are
// injected so the prompt follows the workspace's configuration.
type WBRUseCase struct {
	completion ports.CompletionService
	log        logger.Logger
	projects   []string
}

// NewWBRUseCase creates the WBR use case.
func NewWBRUseCase(completion ports.CompletionService, log logger.Logger, projects []string) *WBRUseCase {
	if len(projects) == 0 {
		projects = []string{"PROJECT"}
	}
	return &WBRUseCase{completion: completion, log: log, projects: projects}
}

// Generate produces a WBR document from input notes. Fails closed when the
// completion contains no parseable JSON object.
func (uc *WBRUseCase) Generate(ctx context.Context, input string) (*domain.WBRDocument, error) {
	prompt := fmt.Sprintf(wbrPromptTemplate,
		strings.Join(uc.projects, "/"),
		uc.projects[0],
		input)

	text, err := uc.completion.Complete(ctx, ports.CompletionRequest{
		Prompt:    prompt,
		MaxTokens: 4096,
	})
	if err != nil {
		return nil, fmt.Errorf("wbr completion: %w", err)
	}

	parsed, err := llmjson.ExtractObject(text)
	if err != nil {
		uc.log.Error(ctx, "completion output not parseable as WBR", err, map[string]interface{}{
			"completion_length": len(text),
		})
		return nil, err
	}

	var doc domain.WBRDocument
	if err := json.Unmarshal([]byte(parsed.Raw), &doc); err != nil {
		uc.log.Error(ctx, "WBR JSON did not match expected shape", err, nil)
		return nil, domain.ErrUnparseableCompletion
	}
	return &doc, nil
}
