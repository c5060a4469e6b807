package tool

import (
	"context"
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/healthline/voice-agent/internal/model"
	"github.com/healthline/voice-agent/internal/service/booking"
	"github.com/healthline/voice-agent/internal/service/call"
	"github.com/healthline/voice-agent/internal/service/directory"
	"github.com/healthline/voice-agent/internal/service/refill"
	"github.com/healthline/voice-agent/internal/service/summary"
	"github.com/healthline/voice-agent/internal/telephony"
	"github.com/healthline/voice-agent/pkg/errors"
)

// Sentinels are the only failure signals that cross the tool boundary for
// the write and telephony tools.
const (
	SentinelFailure = "-1"
	SentinelError   = "error"
)

// Tool names as published to the conversation driver.
const (
	NameGetDoctorsList   = "get_doctors_list"
	NameSaveAppointment  = "save_appointment"
	NameSaveRefillOrder  = "save_medicine_refill_order"
	NameTransferToHuman  = "transfer_to_human"
	NameEndCall          = "end_call"
	NameWriteCallSummary = "write_call_summary"
)

// Services bundles everything the tool bindings dispatch into.
type Services struct {
	Directory *directory.Service
	Booking   *booking.Service
	Refill    *refill.Service
	Summary   *summary.Service
	Call      *call.Service
}

// RegisterAll wires every tool into the registry.
func RegisterAll(r *Registry, svc Services, v *validator.Validate) {
	r.Register(&Tool{
		Definition: Definition{
			Name:        NameGetDoctorsList,
			Description: "Returns the doctors and their available time slots for the requested specialist.",
			Parameters: []Parameter{
				{Name: "specialist", Description: "Specialist category, e.g. 'dermatologist' or 'General Physician'."},
			},
		},
		Handler: getDoctorsList(svc.Directory),
	})

	r.Register(&Tool{
		Definition: Definition{
			Name:        NameSaveAppointment,
			Description: "Saves an appointment, updates doctor availability and returns the booking id, or -1 on failure.",
			Parameters: []Parameter{
				{Name: "customer_name", Description: "Caller's full name."},
				{Name: "age", Description: "Caller's age."},
				{Name: "phone", Description: "Caller's phone number."},
				{Name: "address", Description: "Caller's address."},
				{Name: "symptoms", Description: "Described symptoms."},
				{Name: "doctor_name", Description: "Chosen doctor's name, exactly as listed."},
				{Name: "time_slot", Description: "Chosen slot as '<date> | <time>', exactly as listed."},
			},
		},
		Handler: saveAppointment(svc.Booking, v),
	})

	r.Register(&Tool{
		Definition: Definition{
			Name:        NameSaveRefillOrder,
			Description: "Saves a medicine refill order and returns the refill id, or -1 on failure.",
			Parameters: []Parameter{
				{Name: "customer_name", Description: "Caller's full name."},
				{Name: "age", Description: "Caller's age."},
				{Name: "address", Description: "Delivery address."},
				{Name: "medicine_name", Description: "Medicine to refill."},
				{Name: "quantity", Description: "Requested quantity."},
				{Name: "usage_duration", Description: "How long the caller has used the medicine."},
				{Name: "consulted_doctor", Description: "Doctor who prescribed it."},
				{Name: "instructions", Description: "Any delivery or usage instructions."},
			},
		},
		Handler: saveRefillOrder(svc.Refill, v),
	})

	r.Register(&Tool{
		Definition: Definition{
			Name:        NameTransferToHuman,
			Description: "Transfers the caller to a human representative. Use after asking permission.",
		},
		Handler: transferToHuman(svc.Call),
	})

	r.Register(&Tool{
		Definition: Definition{
			Name:        NameEndCall,
			Description: "Ends the current call. Use when the caller wants to stop or everything is answered.",
		},
		Handler: endCall(svc.Call),
	})

	r.Register(&Tool{
		Definition: Definition{
			Name:        NameWriteCallSummary,
			Description: "Records a free-text summary of the call outcome.",
			Parameters: []Parameter{
				{Name: "summary", Description: "Free-text call summary."},
			},
		},
		Handler: writeCallSummary(svc.Summary),
	})
}

func getDoctorsList(svc *directory.Service) HandlerFunc {
	return func(ctx context.Context, _ *telephony.Session, args Args) string {
		listing, err := svc.ListDoctors(ctx, args["specialist"])
		if err != nil {
			log.Error().Err(err).Str("specialist", args["specialist"]).Msg("doctor lookup failed")
			return errorPayload(err)
		}

		out, err := json.Marshal(listing)
		if err != nil {
			log.Error().Err(err).Msg("failed to encode doctor listing")
			return errorPayload(err)
		}
		return string(out)
	}
}

func saveAppointment(svc *booking.Service, v *validator.Validate) HandlerFunc {
	return func(ctx context.Context, _ *telephony.Session, args Args) string {
		req := &model.BookAppointmentRequest{
			CustomerName: args["customer_name"],
			Age:          args["age"],
			Phone:        args["phone"],
			Address:      args["address"],
			Symptoms:     args["symptoms"],
			DoctorName:   args["doctor_name"],
			TimeSlot:     args["time_slot"],
		}
		if err := v.Struct(req); err != nil {
			log.Error().Err(err).Msg("save_appointment called with missing arguments")
			return SentinelFailure
		}

		id, err := svc.BookAppointment(ctx, req)
		if err != nil {
			log.Error().Err(err).Msg("failed to save appointment")
			return SentinelFailure
		}
		return id
	}
}

func saveRefillOrder(svc *refill.Service, v *validator.Validate) HandlerFunc {
	return func(ctx context.Context, _ *telephony.Session, args Args) string {
		req := &model.OrderRefillRequest{
			CustomerName:    args["customer_name"],
			Age:             args["age"],
			Address:         args["address"],
			MedicineName:    args["medicine_name"],
			Quantity:        args["quantity"],
			UsageDuration:   args["usage_duration"],
			ConsultedDoctor: args["consulted_doctor"],
			Instructions:    args["instructions"],
		}
		if err := v.Struct(req); err != nil {
			log.Error().Err(err).Msg("save_medicine_refill_order called with missing arguments")
			return SentinelFailure
		}

		id, err := svc.OrderRefill(ctx, req)
		if err != nil {
			log.Error().Err(err).Msg("failed to save refill order")
			return SentinelFailure
		}
		return id
	}
}

func transferToHuman(svc *call.Service) HandlerFunc {
	return func(ctx context.Context, sess *telephony.Session, _ Args) string {
		if sess == nil || sess.Room == "" {
			log.Error().Msg("transfer_to_human called without an active session")
			return SentinelError
		}

		msg, err := svc.TransferToHuman(ctx, sess)
		if err != nil {
			log.Error().Err(err).Str("room", sess.Room).Msg("failed to transfer call")
			return SentinelError
		}
		return msg
	}
}

func endCall(svc *call.Service) HandlerFunc {
	return func(ctx context.Context, sess *telephony.Session, _ Args) string {
		if sess == nil || sess.Room == "" {
			log.Error().Msg("end_call called without an active session")
			return SentinelError
		}

		msg, err := svc.EndCall(ctx, sess)
		if err != nil {
			log.Error().Err(err).Str("room", sess.Room).Msg("failed to end call")
			return SentinelError
		}
		return msg
	}
}

func writeCallSummary(svc *summary.Service) HandlerFunc {
	return func(ctx context.Context, _ *telephony.Session, args Args) string {
		svc.Write(ctx, args["summary"])
		return "ok"
	}
}

// errorPayload folds a lookup failure into the machine-readable JSON shape
// the conversation driver parses.
func errorPayload(err error) string {
	out, _ := json.Marshal(map[string]string{"error": errors.MessageOf(err)})
	return string(out)
}
