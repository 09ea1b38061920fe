package domain

import (
	"strings"
	"time"
)

// Bank is an entry of the admin-managed bank directory.
type Bank struct {
	ID        string
	Code      string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Normalize trims the code and name.
func (b *Bank) Normalize() {
	b.Code = strings.TrimSpace(b.Code)
	b.Name = strings.TrimSpace(b.Name)
}

// Label formats the bank the way pickers show it: "CODE - Name".
func (b *Bank) Label() string {
	return b.Code + " - " + b.Name
}

// BankImportRow is one row of a bulk bank import.
type BankImportRow struct {
	Code string
	Name string
}

// BankImportResult summarizes a bulk bank import.
type BankImportResult struct {
	Imported int
	Skipped  int
	Errors   int
}
