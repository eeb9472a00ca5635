package dialog

// State is the step a conversation is at.
type State int

const (
	StateGreeting State = iota
	StateAskPhone
	StateAskName
	StateCollectingOrder
	StateAskToppings
	StateAskExtrasForPizza
	StateAskBeverages
	StateAskAdditionalExtras
	StateAskDeliveryMethod
	StateAskAddress
	StateAskPayment
	StateAskCardNumber
	StateAskCardExpiry
	StateAskCardCVV
	StateConfirmOrder
	StateEnd
)

var stateNames = [...]string{
	StateGreeting:            "GREETING",
	StateAskPhone:            "ASK_PHONE",
	StateAskName:             "ASK_NAME",
	StateCollectingOrder:     "COLLECTING_ORDER",
	StateAskToppings:         "ASK_TOPPINGS",
	StateAskExtrasForPizza:   "ASK_EXTRAS_FOR_PIZZA",
	StateAskBeverages:        "ASK_BEVERAGES",
	StateAskAdditionalExtras: "ASK_ADDITIONAL_EXTRAS",
	StateAskDeliveryMethod:   "ASK_DELIVERY_METHOD",
	StateAskAddress:          "ASK_ADDRESS",
	StateAskPayment:          "ASK_PAYMENT",
	StateAskCardNumber:       "ASK_CARD_NUMBER",
	StateAskCardExpiry:       "ASK_CARD_EXPIRY",
	StateAskCardCVV:          "ASK_CARD_CVV",
	StateConfirmOrder:        "CONFIRM_ORDER",
	StateEnd:                 "END",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "UNKNOWN"
	}
	return stateNames[s]
}

func (s State) Valid() bool {
	return s >= StateGreeting && s <= StateEnd
}

// sensitive states carry payment card data that must not leave the process.
func (s State) sensitive() bool {
	return s == StateAskCardNumber || s == StateAskCardExpiry || s == StateAskCardCVV
}
