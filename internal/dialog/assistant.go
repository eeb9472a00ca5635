package dialog

import (
	"context"

	"pizzabot/internal/domain"
)

// TextAnalyzer flags strongly negative utterances.
type TextAnalyzer interface {
	IsNegative(ctx context.Context, text string) (bool, error)
}

// IntentClassifier detects that the customer wants to stop.
type IntentClassifier interface {
	WantsToEnd(ctx context.Context, text string) (bool, error)
}

// Upseller proposes one extra item for a draft. An empty string means no
// suggestion.
type Upseller interface {
	Suggest(ctx context.Context, draft domain.OrderDraft) (string, error)
}

// Assistant bundles the three optional language capabilities.
type Assistant interface {
	TextAnalyzer
	IntentClassifier
	Upseller
}

// NoopAssistant never signals anything. It stands in when no language
// model is configured.
type NoopAssistant struct{}

func (NoopAssistant) IsNegative(ctx context.Context, text string) (bool, error) {
	return false, nil
}

func (NoopAssistant) WantsToEnd(ctx context.Context, text string) (bool, error) {
	return false, nil
}

func (NoopAssistant) Suggest(ctx context.Context, draft domain.OrderDraft) (string, error) {
	return "", nil
}
