package postgres

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"

	"github.com/iho/bankrec/internal/domain"
)

func TestNumericRoundTrip(t *testing.T) {
	for _, s := range []string{"0", "1025", "-5.25", "1234567.8901", "0.01"} {
		d := decimal.RequireFromString(s)
		got := numericToDecimal(decimalToNumeric(d))
		if !got.Equal(d) {
			t.Fatalf("round trip of %s gave %s", s, got)
		}
	}
}

func TestAdjustmentListRoundTrip(t *testing.T) {
	list := domain.AdjustmentList{
		{Narration: "Deposit-in-Transit", Amount: decimal.RequireFromString("50")},
		{Narration: "", Amount: decimal.Zero},
	}

	raw, err := listToJSON(list)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	got, err := jsonToList(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 || got[0].Narration != "Deposit-in-Transit" || !got[0].Amount.Equal(list[0].Amount) {
		t.Fatalf("unexpected list: %+v", got)
	}

	empty, err := listToJSON(nil)
	if err != nil || string(empty) != "[]" {
		t.Fatalf("expected [] for empty list, got %q (%v)", empty, err)
	}
}

func TestDateConversionKeepsCalendarDay(t *testing.T) {
	local := time.Date(2024, time.March, 31, 23, 0, 0, 0, time.FixedZone("EDT", -4*60*60))
	got := pgDateToTime(dateToPgDate(local))

	if got.Format(domain.DateLayout) != "2024-03-31" {
		t.Fatalf("expected 2024-03-31, got %s", got)
	}
	if !pgDateToTime(pgtype.Date{}).IsZero() {
		t.Fatalf("expected invalid date to map to the zero time")
	}
}

func TestULIDGeneratorIsMonotonic(t *testing.T) {
	g := NewULIDGenerator()
	prev := g.Generate()
	for i := 0; i < 100; i++ {
		next := g.Generate()
		if _, err := ulid.ParseStrict(next); err != nil {
			t.Fatalf("invalid ulid %q: %v", next, err)
		}
		if next <= prev {
			t.Fatalf("expected %s > %s", next, prev)
		}
		prev = next
	}
}
