package model

// Appointment is one append-only booking record. Field names match the
// legacy appointments.jsonl ledger. All fields stay strings: they arrive as
// dictated text from the conversation driver and are stored verbatim.
type Appointment struct {
	BookingID    string `json:"booking_id"`
	CustomerName string `json:"customer_name"`
	Age          string `json:"age"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	Symptoms     string `json:"symptoms"`
	DoctorName   string `json:"doctor_name"`
	TimeSlot     string `json:"time_slot"`
	SavedAt      string `json:"saved_at"`
}

// BookAppointmentRequest carries the save_appointment tool arguments.
// TimeSlot is the composite "<date> | <time>" string the driver reads back
// from a DoctorListing.
type BookAppointmentRequest struct {
	CustomerName string `json:"customer_name" validate:"required"`
	Age          string `json:"age" validate:"required"`
	Phone        string `json:"phone" validate:"required"`
	Address      string `json:"address" validate:"required"`
	Symptoms     string `json:"symptoms" validate:"required"`
	DoctorName   string `json:"doctor_name" validate:"required"`
	TimeSlot     string `json:"time_slot" validate:"required"`
}
