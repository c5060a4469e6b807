package repository

import (
	"context"

	"github.com/healthline/voice-agent/internal/model"
	"github.com/healthline/voice-agent/pkg/metrics"
)

// Operation labels for the storage counter.
const (
	opDirectoryLoad     = "directory_load"
	opDirectorySave     = "directory_save"
	opAppointmentAppend = "appointment_append"
	opRefillAppend      = "refill_append"
	opSummaryAppend     = "summary_append"
)

// InstrumentDirectory counts every directory load and save. A nil metrics
// handle returns the repository unwrapped.
func InstrumentDirectory(next DirectoryRepository, m *metrics.Metrics) DirectoryRepository {
	if m == nil {
		return next
	}
	return &instrumentedDirectory{next: next, m: m}
}

// InstrumentAppointmentLedger counts appointment appends.
func InstrumentAppointmentLedger(next AppointmentLedger, m *metrics.Metrics) AppointmentLedger {
	if m == nil {
		return next
	}
	return &instrumentedAppointmentLedger{next: next, m: m}
}

// InstrumentRefillLedger counts refill appends.
func InstrumentRefillLedger(next RefillLedger, m *metrics.Metrics) RefillLedger {
	if m == nil {
		return next
	}
	return &instrumentedRefillLedger{next: next, m: m}
}

// InstrumentSummaryLog counts summary appends.
func InstrumentSummaryLog(next SummaryLog, m *metrics.Metrics) SummaryLog {
	if m == nil {
		return next
	}
	return &instrumentedSummaryLog{next: next, m: m}
}

type instrumentedDirectory struct {
	next DirectoryRepository
	m    *metrics.Metrics
}

func (r *instrumentedDirectory) Load(ctx context.Context) (model.Directory, error) {
	dir, err := r.next.Load(ctx)
	r.m.StorageOperations.WithLabelValues(opDirectoryLoad, status(err)).Inc()
	return dir, err
}

func (r *instrumentedDirectory) Save(ctx context.Context, dir model.Directory) error {
	err := r.next.Save(ctx, dir)
	r.m.StorageOperations.WithLabelValues(opDirectorySave, status(err)).Inc()
	return err
}

type instrumentedAppointmentLedger struct {
	next AppointmentLedger
	m    *metrics.Metrics
}

func (l *instrumentedAppointmentLedger) Append(ctx context.Context, apt *model.Appointment) error {
	err := l.next.Append(ctx, apt)
	l.m.StorageOperations.WithLabelValues(opAppointmentAppend, status(err)).Inc()
	return err
}

type instrumentedRefillLedger struct {
	next RefillLedger
	m    *metrics.Metrics
}

func (l *instrumentedRefillLedger) Append(ctx context.Context, order *model.RefillOrder) error {
	err := l.next.Append(ctx, order)
	l.m.StorageOperations.WithLabelValues(opRefillAppend, status(err)).Inc()
	return err
}

type instrumentedSummaryLog struct {
	next SummaryLog
	m    *metrics.Metrics
}

func (l *instrumentedSummaryLog) Append(ctx context.Context, entry *model.CallSummary) error {
	err := l.next.Append(ctx, entry)
	l.m.StorageOperations.WithLabelValues(opSummaryAppend, status(err)).Inc()
	return err
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
