package servings

import (
	"math"
	"strconv"
	"strings"
)

// RawServing is a single row of the Cronometer servings export.
// Only the columns this program uses are kept.
type RawServing struct {
	Day      string `json:"Day"`
	FoodName string `json:"Food Name"`
	Amount   string `json:"Amount"`
}

// Serving is the reduced record handed back to the parent process
type Serving struct {
	Date   string  `json:"date"`
	Food   string  `json:"food"`
	Amount float64 `json:"amount"`
}

// unitSuffixes are the amount units that can be converted to a plain number.
// Cronometer also exports cups, servings, tbsp, etc., which are not handled.
var unitSuffixes = []string{" g", " ml"}

// ParseAmount converts a Cronometer amount such as "90 g" or "250 ml" to a number.
// At most one unit suffix is stripped. ok is false for any other unit or value.
func ParseAmount(amount string) (value float64, ok bool) {
	s := strings.TrimSpace(amount)
	for _, suffix := range unitSuffixes {
		if trimmed, found := strings.CutSuffix(s, suffix); found {
			s = trimmed
			break
		}
	}

	s = strings.TrimSpace(s)
	if isHexFloat(s) {
		return 0, false
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}

	// NaN and Inf cannot be encoded as JSON
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}

	return value, true
}

// isHexFloat reports whether s uses the 0x prefix, which ParseFloat accepts
// but Cronometer amounts never carry.
func isHexFloat(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")
}

// ToServing reduces a raw export row to a Serving.
// ok is false when the amount is not in grams or millilitres.
func (r RawServing) ToServing() (Serving, bool) {
	amount, ok := ParseAmount(r.Amount)
	if !ok {
		return Serving{}, false
	}

	return Serving{
		Date:   r.Day,
		Food:   r.FoodName,
		Amount: amount,
	}, true
}

// Transform reduces raw rows to servings, keeping input order.
// Rows whose amount cannot be parsed are dropped; dropped reports how many.
// The result is never nil so it always encodes as a JSON array.
func Transform(raw []RawServing) (result []Serving, dropped int) {
	result = make([]Serving, 0, len(raw))
	for _, r := range raw {
		serving, ok := r.ToServing()
		if !ok {
			dropped++
			continue
		}
		result = append(result, serving)
	}

	return result, dropped
}
