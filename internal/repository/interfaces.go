package repository

import (
	"context"

	"github.com/healthline/voice-agent/internal/model"
)

// All repository interfaces in one file
type (
	// DirectoryRepository owns the persisted doctor directory. Load returns
	// an independent snapshot; Save rewrites the whole document. Callers
	// that mutate must serialize the Load/Save cycle themselves.
	DirectoryRepository interface {
		Load(ctx context.Context) (model.Directory, error)
		Save(ctx context.Context, dir model.Directory) error
	}

	// AppointmentLedger is the append-only booking record store. Append must
	// be durable before it returns nil.
	AppointmentLedger interface {
		Append(ctx context.Context, apt *model.Appointment) error
	}

	// RefillLedger is the append-only medicine refill record store.
	RefillLedger interface {
		Append(ctx context.Context, order *model.RefillOrder) error
	}

	// SummaryLog is the append-only human-readable call summary store.
	SummaryLog interface {
		Append(ctx context.Context, entry *model.CallSummary) error
	}
)
