package dialog

const (
	replyGreetingHelp    = "I can help with ordering pizzas, just let me know what you'd like!"
	replyAskPhone        = "Great! Can I have your phone number, please?"
	replyInvalidPhone    = "Please provide a valid 10-digit phone number."
	replyAskName         = "First time ordering with us? What's your name?"
	replyInvalidName     = "Sorry, I didn't catch your name. What should I call you?"
	replyWelcomeBack     = "Welcome back, %s!"
	replyNiceToMeet      = "Nice to meet you, %s!"
	replyAskOrder        = "What would you like to order? For example: \"2 large pepperoni pizzas\"."
	replyOrderFormat     = "Sorry, I didn't get that. Please tell me the quantity, size and type, for example: \"2 large pepperoni pizzas\" or \"one medium cheese pizza\"."
	replyUnknownPizza    = "Sorry, we don't have %s on our menu. Type 'menu' to see our pizzas."
	replyUnknownBeverage = "Sorry, we don't have %s. Type 'menu' to see our drinks."
	replyAskToppings     = "What kind of pizza would you like for the %d %s pizza(s)?"
	replyToppingsUnknown = "Sorry, I couldn't find that pizza. Type 'menu' to see what we offer. Which pizza would you like?"
	replyAskPizzaExtras  = "Would you like any extras on your %d %s %s pizza(s)? (e.g. extra cheese, olives, or 'no')"
	replyWhichExtras     = "Which extras would you like?"
	replyAskBeverages    = "Would you like any beverages? (e.g. '2 cokes', or 'no')"
	replyWhichBeverages  = "Which beverages would you like? For example: '2 cokes' or 'a lemonade'."
	replyAskOrderExtras  = "Any additional extras for your order, like garlic bread or dips? (or 'no')"
	replyAskDelivery     = "Would you like delivery or pickup?"
	replyInvalidDelivery = "Please type 'delivery' or 'pickup'."
	replyAskAddress      = "What's the delivery address?"
	replyInvalidAddress  = "Please provide a valid delivery address."
	replyAskPayment      = "How would you like to pay? (cash or card)"
	replyInvalidPayment  = "Please choose 'cash' or 'card'."
	replyAskCardNumber   = "Please enter your 16-digit card number."
	replyInvalidCard     = "That doesn't look like a valid card number. Please enter the 16 digits on your card."
	replyAskCardExpiry   = "What's the card's expiry date? (MM/YY)"
	replyInvalidExpiry   = "Please enter a valid, unexpired date in MM/YY format."
	replyAskCardCVV      = "What's the CVV on the back of the card?"
	replyInvalidCVV      = "The CVV must be 3 or 4 digits."
	replySummaryHeader   = "Here's your order summary:"
	replyEstimatedTotal  = "Estimated total: $%s"
	replyConfirmPrompt   = "Shall I place the order? (yes/no)"
	replyConfirmRetry    = "Please reply 'yes' to confirm or 'no' to make changes."
	replyReviseOrder     = "No problem. What would you like to add or change? Say 'no' if you're done."
	replyConfirmed       = "Great! Your order is confirmed. Your order number is %s."
	replyDeliverySoon    = "We'll deliver it to you soon!"
	replyPickupSoon      = "It will be ready for pickup in about 20-25 minutes."
	replyStorageFailure  = "Sorry, we couldn't save your order right now. Please say 'yes' to try again."
	replyOrdersFull      = "Sorry, we can't take new orders at the moment. Please say 'yes' to try again later."
	replyFarewell        = "Thanks for visiting! Have a great day!"
	replyApology         = "I'm sorry to hear that. If you need further assistance, feel free to ask!"

	// ReplyTimeout is sent when a conversation expires from inactivity.
	ReplyTimeout = "It seems you're no longer active. Feel free to reach out if you need anything else. Have a great day!"
)
