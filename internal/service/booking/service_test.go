package booking

import (
	"context"
	"math/rand"
	"regexp"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthline/voice-agent/internal/model"
	"github.com/healthline/voice-agent/internal/repository/memory"
	"github.com/healthline/voice-agent/pkg/errors"
	"github.com/healthline/voice-agent/pkg/ident"
)

var bookingIDPattern = regexp.MustCompile(`^[1-9]\d{5}$`)

func testDirectory() model.Directory {
	return model.Directory{
		"general_physician": {
			{Name: "Dr. Asha Rao", AvailableSlots: map[string][]string{
				"2025-05-01": {"10:00 AM", "11:00 AM"},
				"2025-05-02": {"09:00 AM"},
			}},
			{Name: "Dr. Nitin Verma", AvailableSlots: map[string][]string{
				"2025-05-01": {"10:00 AM"},
			}},
		},
		"dermatologist": {
			{Name: "Dr. Vikram Shetty", AvailableSlots: map[string][]string{
				"2025-05-02": {"02:00 PM"},
			}},
		},
	}
}

func bookingRequest(doctor, slot string) *model.BookAppointmentRequest {
	return &model.BookAppointmentRequest{
		CustomerName: "Ravi Kumar",
		Age:          "42",
		Phone:        "+919900112233",
		Address:      "12 MG Road, Bengaluru",
		Symptoms:     "persistent cough",
		DoctorName:   doctor,
		TimeSlot:     slot,
	}
}

func newTestService(dir *memory.DirectoryRepository, ledger *memory.AppointmentLedger) *Service {
	return NewService(ledger, dir, ident.NewWithSource(rand.NewSource(1)), Options{})
}

func TestBookAppointmentRemovesSlot(t *testing.T) {
	dir := memory.NewDirectoryRepository(testDirectory())
	ledger := memory.NewAppointmentLedger()
	svc := newTestService(dir, ledger)

	id, err := svc.BookAppointment(context.Background(), bookingRequest("Dr. Asha Rao", "2025-05-01 | 10:00 AM"))
	require.NoError(t, err)
	assert.Regexp(t, bookingIDPattern, id)

	records := ledger.Records()
	require.Len(t, records, 1)
	assert.Equal(t, id, records[0].BookingID)
	assert.Equal(t, "2025-05-01 | 10:00 AM", records[0].TimeSlot)
	assert.NotEmpty(t, records[0].SavedAt)

	got := dir.Snapshot()
	asha := got["general_physician"][0]
	assert.Equal(t, []string{"11:00 AM"}, asha.AvailableSlots["2025-05-01"])
	// Only the booked doctor is touched, even with an identical slot.
	nitin := got["general_physician"][1]
	assert.Equal(t, []string{"10:00 AM"}, nitin.AvailableSlots["2025-05-01"])
}

func TestBookAppointmentRemovesEmptiedDateKey(t *testing.T) {
	dir := memory.NewDirectoryRepository(testDirectory())
	svc := newTestService(dir, memory.NewAppointmentLedger())

	_, err := svc.BookAppointment(context.Background(), bookingRequest("Dr. Asha Rao", "2025-05-02 | 09:00 AM"))
	require.NoError(t, err)

	asha := dir.Snapshot()["general_physician"][0]
	_, ok := asha.AvailableSlots["2025-05-02"]
	assert.False(t, ok, "emptied date key should be deleted")
	assert.Equal(t, []string{"10:00 AM", "11:00 AM"}, asha.AvailableSlots["2025-05-01"])
}

func TestBookAppointmentMalformedSlotStillSucceeds(t *testing.T) {
	dir := memory.NewDirectoryRepository(testDirectory())
	ledger := memory.NewAppointmentLedger()
	svc := newTestService(dir, ledger)

	// No " | " separator: the record wins, availability stays untouched.
	id, err := svc.BookAppointment(context.Background(), bookingRequest("Dr. Asha Rao", "2025-05-01 10:00 AM"))
	require.NoError(t, err)
	assert.Regexp(t, bookingIDPattern, id)
	assert.Len(t, ledger.Records(), 1)
	assert.Equal(t, testDirectory(), dir.Snapshot())
}

func TestBookAppointmentUnknownDoctorStillSucceeds(t *testing.T) {
	dir := memory.NewDirectoryRepository(testDirectory())
	svc := newTestService(dir, memory.NewAppointmentLedger())

	id, err := svc.BookAppointment(context.Background(), bookingRequest("Dr. Nobody", "2025-05-01 | 10:00 AM"))
	require.NoError(t, err)
	assert.Regexp(t, bookingIDPattern, id)
	assert.Equal(t, testDirectory(), dir.Snapshot())
}

func TestBookAppointmentUnknownSlotStillSucceeds(t *testing.T) {
	dir := memory.NewDirectoryRepository(testDirectory())
	svc := newTestService(dir, memory.NewAppointmentLedger())

	_, err := svc.BookAppointment(context.Background(), bookingRequest("Dr. Asha Rao", "2025-05-01 | 03:00 PM"))
	require.NoError(t, err)
	assert.Equal(t, testDirectory(), dir.Snapshot())
}

func TestBookAppointmentLedgerFailure(t *testing.T) {
	dir := memory.NewDirectoryRepository(testDirectory())
	ledger := memory.NewAppointmentLedger()
	ledger.Err = errors.Storage("failed to append appointment record", nil)
	svc := newTestService(dir, ledger)

	_, err := svc.BookAppointment(context.Background(), bookingRequest("Dr. Asha Rao", "2025-05-01 | 10:00 AM"))
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindStorage))
	// Nothing was consumed.
	assert.Equal(t, testDirectory(), dir.Snapshot())
}

func TestBookAppointmentDirectoryFailureAfterAppend(t *testing.T) {
	dir := memory.NewDirectoryRepository(testDirectory())
	dir.LoadErr = errors.Storage("failed to read doctor directory", nil)
	ledger := memory.NewAppointmentLedger()
	svc := newTestService(dir, ledger)

	_, err := svc.BookAppointment(context.Background(), bookingRequest("Dr. Asha Rao", "2025-05-01 | 10:00 AM"))
	require.Error(t, err)
	// The append already happened; the caller sees a failure and may retry,
	// producing a second record. That is the documented behavior.
	assert.Len(t, ledger.Records(), 1)
}

func TestBookAppointmentFirstNameMatchWins(t *testing.T) {
	dir := model.Directory{
		"cardiologist": {
			{Name: "Dr. Shared Name", AvailableSlots: map[string][]string{
				"2025-06-01": {"10:00 AM"},
			}},
		},
		"dermatologist": {
			{Name: "Dr. Shared Name", AvailableSlots: map[string][]string{
				"2025-06-01": {"10:00 AM"},
			}},
		},
	}
	repo := memory.NewDirectoryRepository(dir)
	svc := newTestService(repo, memory.NewAppointmentLedger())

	_, err := svc.BookAppointment(context.Background(), bookingRequest("Dr. Shared Name", "2025-06-01 | 10:00 AM"))
	require.NoError(t, err)

	got := repo.Snapshot()
	// Categories scan in key order: the cardiologist entry is consumed, the
	// dermatologist entry keeps its slot.
	assert.Empty(t, got["cardiologist"][0].AvailableSlots)
	assert.Equal(t, []string{"10:00 AM"}, got["dermatologist"][0].AvailableSlots["2025-06-01"])
}

func TestBookAppointmentRemovesSingleOccurrence(t *testing.T) {
	dir := model.Directory{
		"general_physician": {
			{Name: "Dr. Asha Rao", AvailableSlots: map[string][]string{
				"2025-05-01": {"10:00 AM", "10:00 AM"},
			}},
		},
	}
	repo := memory.NewDirectoryRepository(dir)
	svc := newTestService(repo, memory.NewAppointmentLedger())

	_, err := svc.BookAppointment(context.Background(), bookingRequest("Dr. Asha Rao", "2025-05-01 | 10:00 AM"))
	require.NoError(t, err)

	asha := repo.Snapshot()["general_physician"][0]
	assert.Equal(t, []string{"10:00 AM"}, asha.AvailableSlots["2025-05-01"])
}

func TestConcurrentBookingsAgainstDifferentDoctors(t *testing.T) {
	dir := memory.NewDirectoryRepository(testDirectory())
	svc := newTestService(dir, memory.NewAppointmentLedger())

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, err := svc.BookAppointment(context.Background(), bookingRequest("Dr. Asha Rao", "2025-05-01 | 10:00 AM"))
		assert.NoError(t, err)
	}()
	go func() {
		defer wg.Done()
		_, err := svc.BookAppointment(context.Background(), bookingRequest("Dr. Vikram Shetty", "2025-05-02 | 02:00 PM"))
		assert.NoError(t, err)
	}()
	wg.Wait()

	got := dir.Snapshot()
	assert.Equal(t, []string{"11:00 AM"}, got["general_physician"][0].AvailableSlots["2025-05-01"])
	assert.Empty(t, got["dermatologist"][0].AvailableSlots)
}

func TestConcurrentBookingsSameSlot(t *testing.T) {
	dir := memory.NewDirectoryRepository(testDirectory())
	ledger := memory.NewAppointmentLedger()
	svc := newTestService(dir, ledger)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.BookAppointment(context.Background(), bookingRequest("Dr. Asha Rao", "2025-05-01 | 10:00 AM"))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// Both bookings are recorded; the slot is consumed once and the second
	// removal is a silent no-op. The directory stays structurally valid.
	assert.Len(t, ledger.Records(), 2)
	got := dir.Snapshot()
	assert.Equal(t, []string{"11:00 AM"}, got["general_physician"][0].AvailableSlots["2025-05-01"])
}

func TestAfterRewriteHookFires(t *testing.T) {
	dir := memory.NewDirectoryRepository(testDirectory())
	fired := 0
	svc := NewService(memory.NewAppointmentLedger(), dir, ident.NewWithSource(rand.NewSource(7)), Options{
		AfterRewrite: func() { fired++ },
	})

	_, err := svc.BookAppointment(context.Background(), bookingRequest("Dr. Asha Rao", "2025-05-01 | 10:00 AM"))
	require.NoError(t, err)
	assert.Equal(t, 1, fired)

	// Malformed slot never rewrites the directory, so the hook stays quiet.
	_, err = svc.BookAppointment(context.Background(), bookingRequest("Dr. Asha Rao", "bad slot"))
	require.NoError(t, err)
	assert.Equal(t, 1, fired)
}

func TestSplitTimeSlot(t *testing.T) {
	date, slot, ok := splitTimeSlot("2025-05-01 | 10:00 AM")
	require.True(t, ok)
	assert.Equal(t, "2025-05-01", date)
	assert.Equal(t, "10:00 AM", slot)

	for _, bad := range []string{"2025-05-01 10:00 AM", "", "a | b | c", "2025-05-01|10:00 AM"} {
		_, _, ok := splitTimeSlot(bad)
		assert.False(t, ok, "expected %q to be malformed", bad)
	}
}
