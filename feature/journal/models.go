package journal

import "time"

// ImportRun is one persisted import run.
type ImportRun struct {
	ID uint `gorm:"primaryKey"`

	// RanAt is when the run finished.
	RanAt time.Time

	// DurationMS is the wall-clock run time in milliseconds.
	DurationMS int64

	Total   int
	Created int
	Updated int
	Failed  int
}

// FailedRecord is one record that could not be imported during a run,
// kept for operator follow-up.
type FailedRecord struct {
	ID    uint `gorm:"primaryKey"`
	RunID uint `gorm:"index"`

	ExternalSystemID string `gorm:"size:128"`
	Reason           string `gorm:"size:1024"`
}
