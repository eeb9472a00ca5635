package gemini

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"pizzabot/internal/domain"
	apperrors "pizzabot/internal/errors"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	DefaultModel   = "gemini-2.0-flash"
	DefaultTimeout = 5 * time.Second

	negativeThreshold = -0.5
	serviceName       = "gemini"
)

const sentimentInstruction = `You score the sentiment of a single customer message sent to a pizza ordering assistant.
Reply with one number between -1 and 1, where -1 is very negative and 1 is very positive. Reply with the number only.`

const intentInstruction = `You decide whether a customer wants to end the conversation with a pizza ordering assistant.
Reply with "yes" if the message means they want to stop, leave or cancel the whole conversation, otherwise reply "no".`

const upsellInstruction = `You work at a pizza shop. Given the customer's current order, suggest exactly one extra item
they might like, in one short friendly sentence. Do not repeat items already in the order.`

type Config struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Assistant answers sentiment, end-intent and upsell questions with a
// Gemini text model.
type Assistant struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

func NewAssistant(ctx context.Context, cfg Config, logger *zap.Logger) (*Assistant, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Assistant{
		client:  client,
		model:   model,
		timeout: timeout,
		logger:  logger,
	}, nil
}

func (a *Assistant) IsNegative(ctx context.Context, text string) (bool, error) {
	out, err := a.generate(ctx, sentimentInstruction, text, 10)
	if err != nil {
		return false, err
	}
	polarity, err := parsePolarity(out)
	if err != nil {
		return false, apperrors.NewExternalServiceError(serviceName, err)
	}
	return polarity < negativeThreshold, nil
}

func (a *Assistant) WantsToEnd(ctx context.Context, text string) (bool, error) {
	out, err := a.generate(ctx, intentInstruction, text, 5)
	if err != nil {
		return false, err
	}
	yes, err := parseYesNo(out)
	if err != nil {
		return false, apperrors.NewExternalServiceError(serviceName, err)
	}
	return yes, nil
}

func (a *Assistant) Suggest(ctx context.Context, draft domain.OrderDraft) (string, error) {
	lines := draft.Summary()
	if len(lines) == 0 {
		return "", nil
	}
	out, err := a.generate(ctx, upsellInstruction, "Current order:\n"+strings.Join(lines, "\n"), 50)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (a *Assistant) generate(ctx context.Context, instruction, prompt string, maxTokens int32) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	resp, err := a.client.Models.GenerateContent(ctx, a.model, genai.Text(prompt), &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: instruction}},
		},
		Temperature:     genai.Ptr[float32](0),
		MaxOutputTokens: maxTokens,
	})
	if err != nil {
		a.logger.Warn("gemini request failed", zap.String("model", a.model), zap.Error(err))
		return "", apperrors.NewExternalServiceError(serviceName, err)
	}
	return resp.Text(), nil
}

var numberPattern = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

func parsePolarity(s string) (float64, error) {
	m := numberPattern.FindString(s)
	if m == "" {
		return 0, fmt.Errorf("no polarity in %q", s)
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, err
	}
	if v < -1 || v > 1 {
		return 0, fmt.Errorf("polarity %v out of range", v)
	}
	return v, nil
}

func parseYesNo(s string) (bool, error) {
	word := strings.ToLower(strings.TrimSpace(s))
	word = strings.Trim(word, ".!\"' ")
	switch {
	case strings.HasPrefix(word, "yes"):
		return true, nil
	case strings.HasPrefix(word, "no"):
		return false, nil
	}
	return false, fmt.Errorf("unexpected answer %q", s)
}
