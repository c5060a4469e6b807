package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/healthline/voice-agent/internal/model"
	"github.com/healthline/voice-agent/pkg/errors"
)

type AppointmentLedger struct {
	db *sqlx.DB
}

func NewAppointmentLedger(db *sqlx.DB) *AppointmentLedger {
	return &AppointmentLedger{db: db}
}

func (l *AppointmentLedger) Append(ctx context.Context, apt *model.Appointment) error {
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO appointments (
			booking_id, customer_name, age, phone, address,
			symptoms, doctor_name, time_slot, saved_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		apt.BookingID, apt.CustomerName, apt.Age, apt.Phone, apt.Address,
		apt.Symptoms, apt.DoctorName, apt.TimeSlot, apt.SavedAt)
	if err != nil {
		return errors.Storage("failed to append appointment record", err)
	}
	return nil
}

type RefillLedger struct {
	db *sqlx.DB
}

func NewRefillLedger(db *sqlx.DB) *RefillLedger {
	return &RefillLedger{db: db}
}

func (l *RefillLedger) Append(ctx context.Context, order *model.RefillOrder) error {
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO refill_orders (
			refill_id, customer_name, age, address, medicine_name,
			quantity, usage_duration, consulted_doctor, instructions, saved_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		order.RefillID, order.CustomerName, order.Age, order.Address,
		order.MedicineName, order.Quantity, order.UsageDuration,
		order.ConsultedDoctor, order.Instructions, order.SavedAt)
	if err != nil {
		return errors.Storage("failed to append refill record", err)
	}
	return nil
}

type SummaryLog struct {
	db *sqlx.DB
}

func NewSummaryLog(db *sqlx.DB) *SummaryLog {
	return &SummaryLog{db: db}
}

func (l *SummaryLog) Append(ctx context.Context, entry *model.CallSummary) error {
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO call_summaries (call_id, summary, created_at)
		VALUES ($1, $2, $3)`,
		entry.CallID, entry.Text, entry.Timestamp)
	if err != nil {
		return errors.Storage("failed to append call summary", err)
	}
	return nil
}
