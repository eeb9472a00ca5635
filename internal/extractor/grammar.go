package extractor

import (
	"regexp"
	"strconv"
	"strings"

	"pizzabot/internal/domain"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var numberWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
}

const quantityPattern = `one|two|three|four|five|six|seven|eight|nine|ten|\d+`

var (
	pizzaRe    = regexp.MustCompile(`\b(` + quantityPattern + `)\s+(?:(small|medium|large)\s+)?(?:([a-z][a-z' -]*?)\s+)?pizzas?\b`)
	clauseRe   = regexp.MustCompile(`\s*(?:,|;|&|\band\b|\bwith\b|\bplus\b)\s*`)
	quantityRe = regexp.MustCompile(`^(` + quantityPattern + `|a|an)$`)
	punctRe    = regexp.MustCompile(`[.!?]+$`)
	extrasRe   = regexp.MustCompile(`\s*(?:,|\band\b)\s*`)

	titleCaser = cases.Title(language.English)
)

var noneAnswers = map[string]bool{
	"no": true, "none": true, "n/a": true, "nope": true, "nothing": true,
	"no thanks": true, "no thank you": true, "nah": true,
}

var fillerWords = map[string]bool{
	"i": true, "i'd": true, "i'll": true, "id": true, "like": true, "want": true, "have": true,
	"get": true, "can": true, "could": true, "would": true, "me": true, "some": true,
	"also": true, "please": true, "just": true, "the": true, "give": true, "to": true,
	"order": true, "of": true, "add": true, "and": true, "maybe": true,
	"yes": true, "yeah": true, "sure": true, "ok": true, "okay": true, "for": true,
	"delivery": true, "pickup": true, "thanks": true,
}

// PizzaMatch is one pizza phrase. Name is empty when the utterance did not
// say which pizza.
type PizzaMatch struct {
	Quantity int
	Size     string
	Name     string
}

// PizzaPhrases scans for every "<quantity> [size] [name] pizza(s)" phrase,
// left to right. Size defaults to Medium.
func PizzaPhrases(text string) []PizzaMatch {
	var out []PizzaMatch
	for _, m := range pizzaRe.FindAllStringSubmatch(Normalize(text), -1) {
		qty, ok := parseQuantity(m[1])
		if !ok || qty <= 0 {
			continue
		}
		size := domain.SizeMedium
		if m[2] != "" {
			size = titleCaser.String(m[2])
		}
		out = append(out, PizzaMatch{
			Quantity: qty,
			Size:     size,
			Name:     strings.TrimSpace(m[3]),
		})
	}
	return out
}

// BeverageMatch is one beverage clause. Explicit is false when the quantity
// defaulted to 1.
type BeverageMatch struct {
	Quantity int
	Words    []string
	Explicit bool
}

// BeveragePhrases splits the utterance into clauses and reads a
// "[quantity] name" out of each. Clauses mentioning pizza are skipped.
func BeveragePhrases(text string) []BeverageMatch {
	var out []BeverageMatch
	for _, clause := range clauseRe.Split(Normalize(text), -1) {
		if strings.Contains(clause, "pizza") {
			continue
		}
		words := strings.Fields(clause)
		match := BeverageMatch{Quantity: 1}
		for i, w := range words {
			if !quantityRe.MatchString(w) {
				continue
			}
			if qty, ok := parseQuantity(w); ok {
				match.Quantity = qty
				match.Explicit = true
			}
			words = words[i+1:]
			break
		}
		words = trimFiller(words)
		if len(words) == 0 || match.Quantity <= 0 {
			continue
		}
		match.Words = words
		out = append(out, match)
	}
	return out
}

// Name joins the clause words into a display name.
func (m BeverageMatch) Name() string {
	return strings.Join(m.Words, " ")
}

// ExtrasList parses a comma separated list of extras. A "none" answer yields
// nil.
func ExtrasList(text string) []string {
	if IsNone(text) {
		return nil
	}
	var out []string
	for _, part := range extrasRe.Split(Normalize(text), -1) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, titleCaser.String(part))
	}
	return out
}

// IsNone reports a negative answer such as "no", "none" or "n/a".
func IsNone(text string) bool {
	return noneAnswers[Normalize(text)]
}

// DeliveryKeyword finds "delivery" or "pickup" anywhere in the utterance.
// Both or neither yields "".
func DeliveryKeyword(text string) string {
	t := Normalize(text)
	delivery := strings.Contains(t, "delivery")
	pickup := strings.Contains(t, "pickup")
	switch {
	case delivery && !pickup:
		return domain.DeliveryMethodDelivery
	case pickup && !delivery:
		return domain.DeliveryMethodPickup
	}
	return ""
}

// DeliveryToken accepts only the bare tokens "delivery" and "pickup".
func DeliveryToken(text string) string {
	switch Normalize(text) {
	case domain.DeliveryMethodDelivery:
		return domain.DeliveryMethodDelivery
	case domain.DeliveryMethodPickup:
		return domain.DeliveryMethodPickup
	}
	return ""
}

// PaymentKeyword maps card, credit card and debit card to Card and cash to
// Cash. Ambiguous or unrelated input yields "".
func PaymentKeyword(text string) string {
	t := Normalize(text)
	card := strings.Contains(t, "card")
	cash := strings.Contains(t, "cash")
	switch {
	case card && !cash:
		return domain.PaymentMethodCard
	case cash && !card:
		return domain.PaymentMethodCash
	}
	return ""
}

// TitleCase capitalises every word of a free-text name.
func TitleCase(s string) string {
	return titleCaser.String(strings.TrimSpace(s))
}

// Normalize lower-cases, trims, collapses whitespace and drops trailing
// punctuation.
func Normalize(text string) string {
	t := strings.Join(strings.Fields(strings.ToLower(text)), " ")
	return punctRe.ReplaceAllString(t, "")
}

func parseQuantity(token string) (int, bool) {
	if n, ok := numberWords[token]; ok {
		return n, true
	}
	if token == "a" || token == "an" {
		return 1, true
	}
	n, err := strconv.Atoi(token)
	if err != nil {
		return 0, false
	}
	return n, true
}

func trimFiller(words []string) []string {
	for len(words) > 0 && fillerWords[words[0]] {
		words = words[1:]
	}
	for len(words) > 0 && fillerWords[words[len(words)-1]] {
		words = words[:len(words)-1]
	}
	return words
}
