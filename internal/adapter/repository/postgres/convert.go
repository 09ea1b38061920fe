package postgres

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/iho/bankrec/internal/domain"
)

// PostgreSQL error codes mapped to domain errors.
const (
	pgErrUniqueViolation = "23505"
)

// adjustmentItem is the JSONB form of one adjustment list entry.
type adjustmentItem struct {
	Narration string          `json:"narration"`
	Amount    decimal.Decimal `json:"amount"`
}

func listToJSON(list domain.AdjustmentList) ([]byte, error) {
	items := make([]adjustmentItem, 0, len(list))
	for _, item := range list {
		items = append(items, adjustmentItem{Narration: item.Narration, Amount: item.Amount})
	}
	return json.Marshal(items)
}

func jsonToList(raw []byte) (domain.AdjustmentList, error) {
	if len(raw) == 0 {
		return domain.AdjustmentList{}, nil
	}

	var items []adjustmentItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode adjustment list: %w", err)
	}

	list := make(domain.AdjustmentList, 0, len(items))
	for _, item := range items {
		list = append(list, domain.AdjustmentItem{Narration: item.Narration, Amount: item.Amount})
	}
	return list, nil
}

func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid || n.Int == nil {
		return decimal.Zero
	}

	return decimal.NewFromBigInt(n.Int, n.Exp)
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func dateToPgDate(t time.Time) pgtype.Date {
	return pgtype.Date{Time: domain.NormalizeDate(t), Valid: true}
}

func pgDateToTime(d pgtype.Date) time.Time {
	if !d.Valid {
		return time.Time{}
	}
	return domain.NormalizeDate(d.Time)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation
}
