package model

// RefillOrder is one append-only medicine refill record, matching the legacy
// prescriptions.jsonl ledger layout.
type RefillOrder struct {
	RefillID        string `json:"refill_id"`
	CustomerName    string `json:"customer_name"`
	Age             string `json:"age"`
	Address         string `json:"address"`
	MedicineName    string `json:"medicine_name"`
	Quantity        string `json:"quantity"`
	UsageDuration   string `json:"usage_duration"`
	ConsultedDoctor string `json:"consulted_doctor"`
	Instructions    string `json:"instructions"`
	SavedAt         string `json:"saved_at"`
}

// OrderRefillRequest carries the save_medicine_refill_order tool arguments.
type OrderRefillRequest struct {
	CustomerName    string `json:"customer_name" validate:"required"`
	Age             string `json:"age" validate:"required"`
	Address         string `json:"address" validate:"required"`
	MedicineName    string `json:"medicine_name" validate:"required"`
	Quantity        string `json:"quantity" validate:"required"`
	UsageDuration   string `json:"usage_duration" validate:"required"`
	ConsultedDoctor string `json:"consulted_doctor" validate:"required"`
	Instructions    string `json:"instructions" validate:"required"`
}
