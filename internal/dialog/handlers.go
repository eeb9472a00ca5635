package dialog

import (
	"context"
	"fmt"
	"strings"

	"pizzabot/internal/domain"
	apperrors "pizzabot/internal/errors"
	"pizzabot/internal/extractor"

	"go.uber.org/zap"
)

var (
	affirmatives = map[string]bool{"yes": true, "y": true, "sure": true, "ok": true, "okay": true, "confirm": true, "yes please": true}
	negatives    = map[string]bool{"no": true, "n": true, "nope": true, "cancel": true}
)

func (e *Engine) handleGreeting(ctx context.Context, s *Session, text string) string {
	t := extractor.Normalize(text)
	if !strings.Contains(t, "order") && !strings.Contains(t, "pizza") {
		return replyGreetingHelp
	}
	s.opening = text
	s.State = StateAskPhone
	return replyAskPhone
}

func (e *Engine) handlePhone(ctx context.Context, s *Session, text string) string {
	if !validPhone(text) {
		return replyInvalidPhone
	}
	s.Phone = strings.TrimSpace(text)

	customer, err := e.customers.FindByPhone(ctx, s.Phone)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); !ok {
			e.logger.Warn("customer lookup failed, treating as new customer",
				zap.String("conversationId", s.ConversationID),
				zap.Error(err),
			)
		}
		s.State = StateAskName
		return replyAskName
	}

	s.Name = customer.Name
	return e.startCollecting(ctx, s, fmt.Sprintf(replyWelcomeBack, customer.Name))
}

func (e *Engine) handleName(ctx context.Context, s *Session, text string) string {
	name := strings.Join(strings.Fields(text), " ")
	if name == "" {
		return replyInvalidName
	}
	s.Name = name
	return e.startCollecting(ctx, s, fmt.Sprintf(replyNiceToMeet, name))
}

// startCollecting enters COLLECTING_ORDER, applying the opening utterance
// if it already named something orderable.
func (e *Engine) startCollecting(ctx context.Context, s *Session, greeting string) string {
	s.State = StateCollectingOrder
	s.resetRound()

	opening := s.opening
	s.opening = ""
	if opening != "" {
		res := e.extract.Order(opening)
		if !res.Empty() || res.Rejected() {
			return greeting + " " + e.applyOrder(ctx, s, res)
		}
	}
	return greeting + " " + replyAskOrder
}

func (e *Engine) handleCollectingOrder(ctx context.Context, s *Session, text string) string {
	if extractor.IsNone(text) && len(s.Draft.Pizzas) > 0 {
		s.askedBeverages = true
		s.askedExtras = true
		return e.nextStep(ctx, s)
	}

	res := e.extract.Order(text)
	if res.Empty() && !res.Rejected() && res.DeliveryMethod != "" && len(s.Draft.Pizzas) > 0 {
		// only the delivery method changed; nothing more to add
		e.setDeliveryMethod(s, res.DeliveryMethod)
		s.askedBeverages = true
		s.askedExtras = true
		return e.nextStep(ctx, s)
	}
	return e.applyOrder(ctx, s, res)
}

// applyOrder adds what an ordering utterance produced to the draft and asks
// for the next missing field. Unknown items are reported and skipped. When
// nothing is accepted the draft is left as it was.
func (e *Engine) applyOrder(ctx context.Context, s *Session, res extractor.Result) string {
	var rejection string
	if res.Rejected() {
		unknown := append(append([]string{}, res.UnknownPizzas...), res.UnknownBeverages...)
		rejection = fmt.Sprintf(replyUnknownPizza, strings.Join(unknown, ", ")) + " "
	}

	if res.Empty() || len(s.Draft.Pizzas)+len(res.Pizzas) == 0 {
		if rejection != "" {
			return strings.TrimSpace(rejection)
		}
		return replyOrderFormat
	}

	for _, p := range res.Pizzas {
		s.Draft.Pizzas = append(s.Draft.Pizzas, p)
		s.pending = append(s.pending, len(s.Draft.Pizzas)-1)
	}
	if len(res.Beverages) > 0 {
		s.Draft.Beverages = append(s.Draft.Beverages, res.Beverages...)
		s.gotBeverages = true
	}
	if res.DeliveryMethod != "" {
		e.setDeliveryMethod(s, res.DeliveryMethod)
	}
	return rejection + e.nextStep(ctx, s)
}

func (e *Engine) handleToppings(ctx context.Context, s *Session, text string) string {
	if len(s.pending) == 0 {
		return e.nextStep(ctx, s)
	}
	name, ok := e.extract.Toppings(text)
	if !ok {
		return replyToppingsUnknown
	}
	s.Draft.Pizzas[s.pending[0]].Toppings = name
	return e.nextStep(ctx, s)
}

func (e *Engine) handlePizzaExtras(ctx context.Context, s *Session, text string) string {
	if len(s.pending) == 0 {
		return e.nextStep(ctx, s)
	}
	if affirmatives[extractor.Normalize(text)] {
		return replyWhichExtras
	}
	extras := extractor.ExtrasList(text)
	if extras == nil {
		extras = []string{}
	}
	s.Draft.Pizzas[s.pending[0]].Extras = extras
	s.pending = s.pending[1:]
	return e.nextStep(ctx, s)
}

func (e *Engine) handleBeverages(ctx context.Context, s *Session, text string) string {
	if extractor.IsNone(text) {
		return e.nextStep(ctx, s)
	}
	if affirmatives[extractor.Normalize(text)] {
		return replyWhichBeverages
	}

	res := e.extract.Beverages(text)
	var rejection string
	if res.Rejected() {
		rejection = fmt.Sprintf(replyUnknownBeverage, strings.Join(res.UnknownBeverages, ", "))
	}
	if len(res.Beverages) == 0 {
		if rejection != "" {
			return rejection
		}
		return replyWhichBeverages
	}

	s.Draft.Beverages = append(s.Draft.Beverages, res.Beverages...)
	s.gotBeverages = true
	if rejection != "" {
		return rejection + " " + e.nextStep(ctx, s)
	}
	return e.nextStep(ctx, s)
}

func (e *Engine) handleOrderExtras(ctx context.Context, s *Session, text string) string {
	if affirmatives[extractor.Normalize(text)] {
		return replyWhichExtras
	}
	s.Draft.Extras = append(s.Draft.Extras, extractor.ExtrasList(text)...)
	return e.nextStep(ctx, s)
}

func (e *Engine) handleDeliveryMethod(ctx context.Context, s *Session, text string) string {
	method := extractor.DeliveryToken(text)
	if method == "" {
		return replyInvalidDelivery
	}
	e.setDeliveryMethod(s, method)
	return e.nextStep(ctx, s)
}

func (e *Engine) setDeliveryMethod(s *Session, method string) {
	s.Draft.DeliveryMethod = method
	if method != domain.DeliveryMethodDelivery {
		s.Draft.Address = nil
	}
}

func (e *Engine) handleAddress(ctx context.Context, s *Session, text string) string {
	addr := strings.Join(strings.Fields(text), " ")
	if len(addr) < 5 {
		return replyInvalidAddress
	}
	s.Draft.Address = &addr
	return e.nextStep(ctx, s)
}

func (e *Engine) handlePayment(ctx context.Context, s *Session, text string) string {
	method := extractor.PaymentKeyword(text)
	if method == "" {
		return replyInvalidPayment
	}
	s.Draft.PaymentMethod = method
	if method == domain.PaymentMethodCard {
		s.Draft.Card = &domain.Card{}
	} else {
		s.Draft.Card = nil
	}
	return e.nextStep(ctx, s)
}

func (e *Engine) handleCardNumber(ctx context.Context, s *Session, text string) string {
	number, ok := normalizeCardNumber(text)
	if !ok {
		return replyInvalidCard
	}
	s.Draft.Card.Number = number
	return e.nextStep(ctx, s)
}

func (e *Engine) handleCardExpiry(ctx context.Context, s *Session, text string) string {
	if !validExpiry(text, e.now()) {
		return replyInvalidExpiry
	}
	s.Draft.Card.Expiry = strings.TrimSpace(text)
	return e.nextStep(ctx, s)
}

func (e *Engine) handleCardCVV(ctx context.Context, s *Session, text string) string {
	if !validCVV(text) {
		return replyInvalidCVV
	}
	s.Draft.Card.CVV = strings.TrimSpace(text)
	return e.nextStep(ctx, s)
}

func (e *Engine) handleConfirm(ctx context.Context, s *Session, text string) string {
	t := extractor.Normalize(text)
	switch {
	case affirmatives[t]:
		return e.commit(ctx, s)
	case negatives[t]:
		s.State = StateCollectingOrder
		s.resetRound()
		return replyReviseOrder
	default:
		return replyConfirmRetry
	}
}

func (e *Engine) handleEnd(ctx context.Context, s *Session, text string) string {
	s.Reset()
	return e.handleGreeting(ctx, s, text)
}

// nextStep moves the session to the first field still missing and returns
// its question.
func (e *Engine) nextStep(ctx context.Context, s *Session) string {
	d := &s.Draft

	if len(s.pending) > 0 {
		p := d.Pizzas[s.pending[0]]
		if p.Toppings == "" {
			s.State = StateAskToppings
			return fmt.Sprintf(replyAskToppings, p.Quantity, p.Size)
		}
		s.State = StateAskExtrasForPizza
		return fmt.Sprintf(replyAskPizzaExtras, p.Quantity, p.Size, p.Toppings)
	}

	if !s.askedBeverages && !s.gotBeverages {
		s.askedBeverages = true
		s.State = StateAskBeverages
		return replyAskBeverages
	}

	if !s.askedExtras {
		s.askedExtras = true
		s.State = StateAskAdditionalExtras
		return replyAskOrderExtras
	}

	switch {
	case d.DeliveryMethod == "":
		s.State = StateAskDeliveryMethod
		return replyAskDelivery
	case d.DeliveryMethod == domain.DeliveryMethodDelivery && d.Address == nil:
		s.State = StateAskAddress
		return replyAskAddress
	case d.PaymentMethod == "":
		s.State = StateAskPayment
		return replyAskPayment
	case d.PaymentMethod == domain.PaymentMethodCard:
		if d.Card == nil {
			d.Card = &domain.Card{}
		}
		switch {
		case d.Card.Number == "":
			s.State = StateAskCardNumber
			return replyAskCardNumber
		case d.Card.Expiry == "":
			s.State = StateAskCardExpiry
			return replyAskCardExpiry
		case d.Card.CVV == "":
			s.State = StateAskCardCVV
			return replyAskCardCVV
		}
	}

	s.State = StateConfirmOrder
	return e.summary(ctx, s)
}

func (e *Engine) summary(ctx context.Context, s *Session) string {
	lines := []string{replySummaryHeader}
	lines = append(lines, s.Draft.Summary()...)

	s.Draft.EstimatedTotal = ""
	if total, ok := e.menu.EstimateTotal(s.Draft); ok {
		s.Draft.EstimatedTotal = total.StringFixed(2)
		lines = append(lines, fmt.Sprintf(replyEstimatedTotal, s.Draft.EstimatedTotal))
	}

	if suggestion := e.suggest(ctx, s); suggestion != "" {
		lines = append(lines, suggestion)
	}

	lines = append(lines, replyConfirmPrompt)
	return strings.Join(lines, "\n")
}

func (e *Engine) commit(ctx context.Context, s *Session) string {
	logger := e.logger.With(zap.String("conversationId", s.ConversationID))

	order, err := e.checkout.PlaceOrder(ctx, s.Name, s.Phone, s.Draft)
	if err != nil {
		if _, ok := apperrors.IsAllocationExhaustedError(err); ok {
			logger.Error("confirmation failed: no order ids left", zap.Error(err))
			return replyOrdersFull
		}
		logger.Error("confirmation failed, session kept for retry", zap.Error(err))
		return replyStorageFailure
	}

	reply := fmt.Sprintf(replyConfirmed, order.ID)
	if s.Draft.DeliveryMethod == domain.DeliveryMethodDelivery {
		reply += " " + replyDeliverySoon
	} else {
		reply += " " + replyPickupSoon
	}

	logger.Info("order confirmed", zap.String("orderId", order.ID))
	s.Reset()
	return reply
}
