package tool

import (
	"context"
	"encoding/json"
	"math/rand"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthline/voice-agent/internal/model"
	"github.com/healthline/voice-agent/internal/repository/memory"
	"github.com/healthline/voice-agent/internal/service/booking"
	"github.com/healthline/voice-agent/internal/service/call"
	"github.com/healthline/voice-agent/internal/service/directory"
	"github.com/healthline/voice-agent/internal/service/refill"
	"github.com/healthline/voice-agent/internal/service/summary"
	"github.com/healthline/voice-agent/internal/telephony"
	"github.com/healthline/voice-agent/pkg/ident"
)

type stubTelephony struct {
	transferErr error
	deleteErr   error
}

func (s *stubTelephony) TransferParticipant(ctx context.Context, room, identity, destination string, playDialtone bool) error {
	return s.transferErr
}

func (s *stubTelephony) DeleteRoom(ctx context.Context, room string) error {
	return s.deleteErr
}

type fixture struct {
	registry *Registry
	dirRepo  *memory.DirectoryRepository
	ledger   *memory.AppointmentLedger
	refills  *memory.RefillLedger
	tele     *stubTelephony
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dirRepo := memory.NewDirectoryRepository(model.Directory{
		"dermatologist": {
			{Name: "Dr. Vikram Shetty", AvailableSlots: map[string][]string{
				"2025-05-02": {"02:00 PM"},
			}},
		},
	})
	ledger := memory.NewAppointmentLedger()
	refills := memory.NewRefillLedger()
	tele := &stubTelephony{}
	ids := ident.NewWithSource(rand.NewSource(1))

	registry := NewRegistry(nil)
	RegisterAll(registry, Services{
		Directory: directory.NewService(dirRepo, time.Second),
		Booking:   booking.NewService(ledger, dirRepo, ids, booking.Options{}),
		Refill:    refill.NewService(refills, ids, nil),
		Summary:   summary.NewService(memory.NewSummaryLog(), ids),
		Call:      call.NewService(tele, "tel:+919515449838"),
	}, validator.New())

	return &fixture{registry: registry, dirRepo: dirRepo, ledger: ledger, refills: refills, tele: tele}
}

func invoke(t *testing.T, f *fixture, name string, sess *telephony.Session, args Args) string {
	t.Helper()
	result, err := f.registry.Invoke(context.Background(), name, sess, args)
	require.NoError(t, err)
	return result
}

func TestUnknownTool(t *testing.T) {
	f := newFixture(t)
	_, err := f.registry.Invoke(context.Background(), "no_such_tool", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no_such_tool")
}

func TestDefinitionsSortedAndComplete(t *testing.T) {
	f := newFixture(t)
	defs := f.registry.Definitions()
	require.Len(t, defs, 6)

	names := make([]string, len(defs))
	for i, d := range defs {
		names[i] = d.Name
	}
	assert.Equal(t, []string{
		NameEndCall,
		NameGetDoctorsList,
		NameSaveAppointment,
		NameSaveRefillOrder,
		NameTransferToHuman,
		NameWriteCallSummary,
	}, names)
}

func TestGetDoctorsList(t *testing.T) {
	f := newFixture(t)
	result := invoke(t, f, NameGetDoctorsList, nil, Args{"specialist": "Dermatologist"})

	var listing model.DoctorListing
	require.NoError(t, json.Unmarshal([]byte(result), &listing))
	assert.Equal(t, "Dermatologist", listing.Specialization)
	require.Len(t, listing.Doctors, 1)
	assert.Equal(t, "Dr. Vikram Shetty", listing.Doctors[0].Name)
}

func TestGetDoctorsListUnknownSpecialist(t *testing.T) {
	f := newFixture(t)
	result := invoke(t, f, NameGetDoctorsList, nil, Args{"specialist": "unicornist"})

	// A miss is a structured payload with an error field, never a fault.
	var payload map[string]string
	require.NoError(t, json.Unmarshal([]byte(result), &payload))
	assert.Contains(t, payload["error"], "unicornist")
	assert.Equal(t, model.Directory{
		"dermatologist": {
			{Name: "Dr. Vikram Shetty", AvailableSlots: map[string][]string{
				"2025-05-02": {"02:00 PM"},
			}},
		},
	}, f.dirRepo.Snapshot())
}

func TestSaveAppointment(t *testing.T) {
	f := newFixture(t)
	result := invoke(t, f, NameSaveAppointment, nil, Args{
		"customer_name": "Ravi Kumar",
		"age":           "42",
		"phone":         "+919900112233",
		"address":       "12 MG Road",
		"symptoms":      "rash",
		"doctor_name":   "Dr. Vikram Shetty",
		"time_slot":     "2025-05-02 | 02:00 PM",
	})

	assert.Regexp(t, `^[1-9]\d{5}$`, result)
	require.Len(t, f.ledger.Records(), 1)
	assert.Empty(t, f.dirRepo.Snapshot()["dermatologist"][0].AvailableSlots)
}

func TestSaveAppointmentMissingArguments(t *testing.T) {
	f := newFixture(t)
	result := invoke(t, f, NameSaveAppointment, nil, Args{"customer_name": "Ravi Kumar"})

	assert.Equal(t, SentinelFailure, result)
	assert.Empty(t, f.ledger.Records())
}

func TestSaveAppointmentStorageFailure(t *testing.T) {
	f := newFixture(t)
	f.ledger.Err = assert.AnError

	result := invoke(t, f, NameSaveAppointment, nil, Args{
		"customer_name": "Ravi Kumar",
		"age":           "42",
		"phone":         "+919900112233",
		"address":       "12 MG Road",
		"symptoms":      "rash",
		"doctor_name":   "Dr. Vikram Shetty",
		"time_slot":     "2025-05-02 | 02:00 PM",
	})
	assert.Equal(t, SentinelFailure, result)
}

func TestSaveRefillOrder(t *testing.T) {
	f := newFixture(t)
	result := invoke(t, f, NameSaveRefillOrder, nil, Args{
		"customer_name":    "Meera Joshi",
		"age":              "58",
		"address":          "4 Lake View",
		"medicine_name":    "Metformin",
		"quantity":         "60 tablets",
		"usage_duration":   "2 years",
		"consulted_doctor": "Dr. Asha Rao",
		"instructions":     "none",
	})

	assert.Regexp(t, `^[1-9]\d{5}$`, result)
	require.Len(t, f.refills.Records(), 1)
}

func TestSaveRefillOrderStorageFailure(t *testing.T) {
	f := newFixture(t)
	f.refills.Err = assert.AnError

	result := invoke(t, f, NameSaveRefillOrder, nil, Args{
		"customer_name":    "Meera Joshi",
		"age":              "58",
		"address":          "4 Lake View",
		"medicine_name":    "Metformin",
		"quantity":         "60 tablets",
		"usage_duration":   "2 years",
		"consulted_doctor": "Dr. Asha Rao",
		"instructions":     "none",
	})
	assert.Equal(t, SentinelFailure, result)
}

func TestTransferToHumanWithoutSession(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, SentinelError, invoke(t, f, NameTransferToHuman, nil, nil))
	assert.Equal(t, SentinelError, invoke(t, f, NameTransferToHuman, &telephony.Session{}, nil))
}

func TestTransferToHuman(t *testing.T) {
	f := newFixture(t)
	sess := &telephony.Session{
		Room:         "call-1",
		Participants: []telephony.Participant{{Identity: "sip:+14155550123"}},
	}
	assert.Equal(t, call.MsgTransferring, invoke(t, f, NameTransferToHuman, sess, nil))

	f.tele.transferErr = assert.AnError
	assert.Equal(t, SentinelError, invoke(t, f, NameTransferToHuman, sess, nil))
}

func TestTransferToHumanNoSIPParticipant(t *testing.T) {
	f := newFixture(t)
	sess := &telephony.Session{
		Room:         "call-1",
		Participants: []telephony.Participant{{Identity: "web-user"}},
	}
	assert.Equal(t, call.MsgTransferFailed, invoke(t, f, NameTransferToHuman, sess, nil))
}

func TestEndCall(t *testing.T) {
	f := newFixture(t)
	sess := &telephony.Session{Room: "call-1"}

	assert.Equal(t, call.MsgCallEnded, invoke(t, f, NameEndCall, sess, nil))
	assert.Equal(t, SentinelError, invoke(t, f, NameEndCall, nil, nil))

	f.tele.deleteErr = assert.AnError
	assert.Equal(t, SentinelError, invoke(t, f, NameEndCall, sess, nil))
}

func TestWriteCallSummary(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, "ok", invoke(t, f, NameWriteCallSummary, nil, Args{"summary": "caller hung up"}))
}
