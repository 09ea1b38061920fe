package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	// This keeps a stuck create from holding the per-user lock
	DefaultTransactionTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// IdempotencyProcessingMarker is stored under a key while its first request runs
	IdempotencyProcessingMarker = "processing"

	// DefaultBankCacheTTL is how long a resolved bank code stays cached
	DefaultBankCacheTTL = 10 * time.Minute

	// DefaultReportHeading is printed on documents until an admin sets one
	DefaultReportHeading = "Bank Reconciliation Statement"

	// StatementsSheetName names the worksheet of statement exports
	StatementsSheetName = "Reconciliations"

	// AllStatementsSheetName names the worksheet of admin exports
	AllStatementsSheetName = "All Reconciliations"
)
