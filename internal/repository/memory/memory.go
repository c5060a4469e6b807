// Package memory provides in-memory repositories. They back unit tests and
// the "memory" storage driver used for local development; semantics mirror
// the file store, including independent directory snapshots per Load.
package memory

import (
	"context"
	"sync"

	"github.com/healthline/voice-agent/internal/model"
	"github.com/healthline/voice-agent/pkg/errors"
)

// DirectoryRepository holds the directory in memory. LoadErr and SaveErr
// force failures in tests.
type DirectoryRepository struct {
	mu      sync.Mutex
	dir     model.Directory
	loads   int
	LoadErr error
	SaveErr error
}

func NewDirectoryRepository(dir model.Directory) *DirectoryRepository {
	return &DirectoryRepository{dir: dir.Clone()}
}

func (r *DirectoryRepository) Load(ctx context.Context) (model.Directory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.LoadErr != nil {
		return nil, r.LoadErr
	}
	if r.dir == nil {
		return nil, errors.Storage("doctor directory file not found", nil)
	}
	r.loads++
	return r.dir.Clone(), nil
}

func (r *DirectoryRepository) Save(ctx context.Context, dir model.Directory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.SaveErr != nil {
		return r.SaveErr
	}
	r.dir = dir.Clone()
	return nil
}

// Snapshot returns a copy of the current directory state.
func (r *DirectoryRepository) Snapshot() model.Directory {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dir.Clone()
}

// Loads reports how many successful Load calls were made.
func (r *DirectoryRepository) Loads() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loads
}

// AppointmentLedger collects booking records in memory.
type AppointmentLedger struct {
	mu      sync.Mutex
	records []*model.Appointment
	Err     error
}

func NewAppointmentLedger() *AppointmentLedger {
	return &AppointmentLedger{}
}

func (l *AppointmentLedger) Append(ctx context.Context, apt *model.Appointment) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.Err != nil {
		return l.Err
	}
	cp := *apt
	l.records = append(l.records, &cp)
	return nil
}

func (l *AppointmentLedger) Records() []*model.Appointment {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]*model.Appointment(nil), l.records...)
}

// RefillLedger collects refill records in memory.
type RefillLedger struct {
	mu      sync.Mutex
	records []*model.RefillOrder
	Err     error
}

func NewRefillLedger() *RefillLedger {
	return &RefillLedger{}
}

func (l *RefillLedger) Append(ctx context.Context, order *model.RefillOrder) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.Err != nil {
		return l.Err
	}
	cp := *order
	l.records = append(l.records, &cp)
	return nil
}

func (l *RefillLedger) Records() []*model.RefillOrder {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]*model.RefillOrder(nil), l.records...)
}

// SummaryLog collects call summaries in memory.
type SummaryLog struct {
	mu      sync.Mutex
	entries []*model.CallSummary
	Err     error
}

func NewSummaryLog() *SummaryLog {
	return &SummaryLog{}
}

func (l *SummaryLog) Append(ctx context.Context, entry *model.CallSummary) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.Err != nil {
		return l.Err
	}
	cp := *entry
	l.entries = append(l.entries, &cp)
	return nil
}

func (l *SummaryLog) Entries() []*model.CallSummary {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]*model.CallSummary(nil), l.entries...)
}
