package dto

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iho/bankrec/internal/domain"
)

// Amount is a user-entered amount. It accepts a JSON number, a numeric
// string, an empty string or null. Anything unparseable decodes as zero with
// Invalid set, so live previews keep working while saves can reject it.
type Amount struct {
	Value   decimal.Decimal
	Text    string
	Invalid bool
}

// NewAmount returns a valid amount holding d.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Value: d, Text: d.String()}
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))

	switch {
	case raw == "null":
		*a = Amount{}
		return nil
	case strings.HasPrefix(raw, `"`):
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		a.Text = s
	default:
		a.Text = raw
	}

	var ok bool
	a.Value, ok = domain.CoerceAmount(a.Text)
	a.Invalid = !ok
	return nil
}

// MarshalJSON implements json.Marshaler.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Value)
}
