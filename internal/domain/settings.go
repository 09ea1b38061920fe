package domain

import "time"

// Settings holds the global report settings.
type Settings struct {
	ReportHeading string
	UpdatedAt     time.Time
}
