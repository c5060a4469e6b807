package model

import "time"

// CallSummary is one human-readable call outcome entry for the summary log.
type CallSummary struct {
	Timestamp time.Time
	CallID    string
	Text      string
}
