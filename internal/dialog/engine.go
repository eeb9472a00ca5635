package dialog

import (
	"context"
	"strings"
	"time"

	"pizzabot/internal/domain"
	"pizzabot/internal/extractor"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Menu is the read-only catalog the engine orders from.
type Menu interface {
	extractor.Catalog
	Describe() string
	EstimateTotal(draft domain.OrderDraft) (decimal.Decimal, bool)
}

type Checkout interface {
	PlaceOrder(ctx context.Context, name, phone string, draft domain.OrderDraft) (*domain.Order, error)
}

type CustomerFinder interface {
	FindByPhone(ctx context.Context, phone string) (*domain.Customer, error)
}

type stateHandler func(ctx context.Context, s *Session, text string) string

var exitPhrases = []string{
	"exit", "quit", "bye", "goodbye", "see you", "later", "thanks",
	"thank you", "no, thanks", "i'm done", "that's all",
}

// isExitPhrase is a plain containment check on the lower-cased utterance, so
// "goodbye!" and "ok, quit it" both end the conversation.
func isExitPhrase(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range exitPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// Engine runs one turn of the order dialog. It holds no per-conversation
// state and is safe for concurrent use across sessions.
type Engine struct {
	menu      Menu
	extract   *extractor.Extractor
	checkout  Checkout
	customers CustomerFinder
	assistant Assistant
	logger    *zap.Logger
	now       func() time.Time
	handlers  map[State]stateHandler
}

func NewEngine(menu Menu, checkout Checkout, customers CustomerFinder, assistant Assistant, logger *zap.Logger) *Engine {
	if assistant == nil {
		assistant = NoopAssistant{}
	}
	e := &Engine{
		menu:      menu,
		extract:   extractor.New(menu),
		checkout:  checkout,
		customers: customers,
		assistant: assistant,
		logger:    logger,
		now:       time.Now,
	}
	e.handlers = map[State]stateHandler{
		StateGreeting:            e.handleGreeting,
		StateAskPhone:            e.handlePhone,
		StateAskName:             e.handleName,
		StateCollectingOrder:     e.handleCollectingOrder,
		StateAskToppings:         e.handleToppings,
		StateAskExtrasForPizza:   e.handlePizzaExtras,
		StateAskBeverages:        e.handleBeverages,
		StateAskAdditionalExtras: e.handleOrderExtras,
		StateAskDeliveryMethod:   e.handleDeliveryMethod,
		StateAskAddress:          e.handleAddress,
		StateAskPayment:          e.handlePayment,
		StateAskCardNumber:       e.handleCardNumber,
		StateAskCardExpiry:       e.handleCardExpiry,
		StateAskCardCVV:          e.handleCardCVV,
		StateConfirmOrder:        e.handleConfirm,
		StateEnd:                 e.handleEnd,
	}
	return e
}

// Handle processes one utterance against the session and returns the reply.
// The session is updated in place; a session left in StateEnd is finished.
func (e *Engine) Handle(ctx context.Context, s *Session, utterance string) string {
	s.LastActivity = e.now()
	text := strings.TrimSpace(utterance)
	normalized := extractor.Normalize(text)
	logger := e.logger.With(zap.String("conversationId", s.ConversationID), zap.String("state", s.State.String()))

	if isExitPhrase(text) {
		logger.Info("conversation ended by exit phrase")
		s.State = StateEnd
		return replyFarewell
	}

	// Card answers never leave the process; skipping the external checks
	// here is the same as both of them answering "no".
	if !s.State.sensitive() {
		if e.isNegative(ctx, logger, text) {
			return replyApology
		}
		if e.wantsToEnd(ctx, logger, text) {
			logger.Info("conversation ended by intent")
			s.State = StateEnd
			return replyFarewell
		}
	}

	if normalized == "menu" {
		return e.menu.Describe()
	}

	handler, ok := e.handlers[s.State]
	if !ok {
		logger.Error("session in unknown state, restarting")
		s.Reset()
		handler = e.handlers[StateGreeting]
	}
	return handler(ctx, s, text)
}

func (e *Engine) isNegative(ctx context.Context, logger *zap.Logger, text string) bool {
	negative, err := e.assistant.IsNegative(ctx, text)
	if err != nil {
		logger.Warn("sentiment check failed", zap.Error(err))
		return false
	}
	return negative
}

func (e *Engine) wantsToEnd(ctx context.Context, logger *zap.Logger, text string) bool {
	end, err := e.assistant.WantsToEnd(ctx, text)
	if err != nil {
		logger.Warn("end intent check failed", zap.Error(err))
		return false
	}
	return end
}

func (e *Engine) suggest(ctx context.Context, s *Session) string {
	suggestion, err := e.assistant.Suggest(ctx, s.Draft)
	if err != nil {
		e.logger.Warn("upsell suggestion failed", zap.String("conversationId", s.ConversationID), zap.Error(err))
		return ""
	}
	return strings.TrimSpace(suggestion)
}
