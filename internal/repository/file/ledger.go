package file

import (
	"context"
	"encoding/json"
	"os"
	"sync"

	"github.com/healthline/voice-agent/internal/model"
	"github.com/healthline/voice-agent/pkg/errors"
)

// ndjsonFile appends one JSON record per line. The single write syscall on
// an O_APPEND descriptor plus the per-file mutex keeps concurrent appends
// line-atomic, and Sync makes the record durable before Append returns.
type ndjsonFile struct {
	mu   sync.Mutex
	path string
}

func (f *ndjsonFile) append(v interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	line, err := json.Marshal(v)
	if err != nil {
		return err
	}

	fd, err := os.OpenFile(f.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer fd.Close()

	if _, err := fd.Write(append(line, '\n')); err != nil {
		return err
	}
	return fd.Sync()
}

// AppointmentLedger appends booking records to an ndjson file.
type AppointmentLedger struct {
	f ndjsonFile
}

func NewAppointmentLedger(path string) *AppointmentLedger {
	return &AppointmentLedger{f: ndjsonFile{path: path}}
}

func (l *AppointmentLedger) Append(ctx context.Context, apt *model.Appointment) error {
	if err := l.f.append(apt); err != nil {
		return errors.Storage("failed to append appointment record", err)
	}
	return nil
}

// RefillLedger appends medicine refill records to an ndjson file.
type RefillLedger struct {
	f ndjsonFile
}

func NewRefillLedger(path string) *RefillLedger {
	return &RefillLedger{f: ndjsonFile{path: path}}
}

func (l *RefillLedger) Append(ctx context.Context, order *model.RefillOrder) error {
	if err := l.f.append(order); err != nil {
		return errors.Storage("failed to append refill record", err)
	}
	return nil
}
