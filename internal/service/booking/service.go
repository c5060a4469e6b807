package booking

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/healthline/voice-agent/internal/model"
	"github.com/healthline/voice-agent/internal/notifier"
	"github.com/healthline/voice-agent/internal/repository"
	"github.com/healthline/voice-agent/pkg/ident"
	"github.com/healthline/voice-agent/pkg/messaging"
)

// slotSeparator joins the date and time halves of a composite time slot, as
// produced by the doctor directory listings.
const slotSeparator = " | "

// ChannelAppointments is the broker channel for booking events.
const ChannelAppointments = "calls.appointments"

// Options carries the optional collaborators. All fields may be nil.
type Options struct {
	Broker       messaging.Broker
	Notifier     notifier.Notifier
	AfterRewrite func()
}

// Service records bookings and consumes the matching availability slot.
// The ledger append is the source of truth: once it lands, the booking
// succeeds no matter what happens to the availability update for a slot we
// cannot parse. The directory read-modify-write is serialized by an
// in-process mutex, so two simultaneous bookings cannot overwrite each
// other's slot removal within one instance.
type Service struct {
	ledger repository.AppointmentLedger
	dir    repository.DirectoryRepository
	ids    *ident.Generator
	opts   Options

	mu sync.Mutex
}

func NewService(ledger repository.AppointmentLedger, dir repository.DirectoryRepository, ids *ident.Generator, opts Options) *Service {
	return &Service{
		ledger: ledger,
		dir:    dir,
		ids:    ids,
		opts:   opts,
	}
}

// BookAppointment records the appointment and removes the booked slot from
// the doctor directory. It returns the generated booking id.
//
// A time slot without the " | " separator is an accepted inconsistency: the
// record is already durable, so the booking still succeeds and availability
// stays as it was. A failure while updating the directory is an error even
// though the ledger entry exists; the conversation driver treats it as a
// failed booking and may retry the whole flow.
func (s *Service) BookAppointment(ctx context.Context, req *model.BookAppointmentRequest) (string, error) {
	bookingID := s.ids.NextString()
	apt := &model.Appointment{
		BookingID:    bookingID,
		CustomerName: req.CustomerName,
		Age:          req.Age,
		Phone:        req.Phone,
		Address:      req.Address,
		Symptoms:     req.Symptoms,
		DoctorName:   req.DoctorName,
		TimeSlot:     req.TimeSlot,
		SavedAt:      time.Now().Format(time.RFC3339),
	}

	if err := s.ledger.Append(ctx, apt); err != nil {
		return "", fmt.Errorf("failed to record appointment: %w", err)
	}

	date, slot, ok := splitTimeSlot(req.TimeSlot)
	if !ok {
		log.Warn().
			Str("booking_id", bookingID).
			Str("time_slot", req.TimeSlot).
			Msg("unparseable time slot, availability left unchanged")
		s.announce(ctx, apt)
		return bookingID, nil
	}

	if err := s.consumeSlot(ctx, req.DoctorName, date, slot); err != nil {
		return "", fmt.Errorf("failed to update doctor availability: %w", err)
	}

	s.announce(ctx, apt)
	return bookingID, nil
}

// consumeSlot is the single-writer read-modify-write cycle on the directory.
func (s *Service) consumeSlot(ctx context.Context, doctorName, date, slot string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir, err := s.dir.Load(ctx)
	if err != nil {
		return err
	}

	removeSlot(dir, doctorName, date, slot)

	if err := s.dir.Save(ctx, dir); err != nil {
		return err
	}
	if s.opts.AfterRewrite != nil {
		s.opts.AfterRewrite()
	}
	return nil
}

// removeSlot scans the categories in key order and mutates the first doctor
// whose name matches exactly. An unknown doctor, date or time leaves the
// directory untouched; the booking record stands either way. When the last
// slot of a date goes, the date key goes with it.
func removeSlot(dir model.Directory, doctorName, date, slot string) {
	categories := make([]string, 0, len(dir))
	for k := range dir {
		categories = append(categories, k)
	}
	sort.Strings(categories)

	for _, category := range categories {
		for _, doc := range dir[category] {
			if doc.Name != doctorName {
				continue
			}
			if times, ok := doc.AvailableSlots[date]; ok {
				for i, t := range times {
					if t == slot {
						doc.AvailableSlots[date] = append(times[:i], times[i+1:]...)
						if len(doc.AvailableSlots[date]) == 0 {
							delete(doc.AvailableSlots, date)
						}
						break
					}
				}
			}
			// First name match wins, slot hit or not.
			return
		}
	}
}

func splitTimeSlot(s string) (date, slot string, ok bool) {
	parts := strings.Split(s, slotSeparator)
	if len(parts) != 2 {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// announce publishes the booking event and sends the staff notification.
// Both are best-effort; the caller already has its booking id.
func (s *Service) announce(ctx context.Context, apt *model.Appointment) {
	if s.opts.Broker != nil {
		if err := s.opts.Broker.Publish(ctx, ChannelAppointments, apt); err != nil {
			log.Warn().Err(err).Str("booking_id", apt.BookingID).Msg("failed to publish booking event")
		}
	}
	if s.opts.Notifier != nil {
		if err := s.opts.Notifier.BookingConfirmation(ctx, apt); err != nil {
			log.Warn().Err(err).Str("booking_id", apt.BookingID).Msg("failed to send booking notification")
		}
	}
}
