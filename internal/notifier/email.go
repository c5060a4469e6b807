package notifier

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/healthline/voice-agent/internal/model"
)

// Notifier delivers booking notifications to clinic staff. Delivery is
// best-effort; callers log failures and move on.
type Notifier interface {
	BookingConfirmation(ctx context.Context, apt *model.Appointment) error
}

type Config struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password" envconfig:"NOTIFIER_SMTP_PASSWORD"`
	From     string `mapstructure:"from"`
	To       string `mapstructure:"to"`
}

// EmailNotifier mails each new booking to the front-desk mailbox.
type EmailNotifier struct {
	cfg    Config
	dialer *gomail.Dialer
}

func NewEmailNotifier(cfg Config) *EmailNotifier {
	return &EmailNotifier{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

func (n *EmailNotifier) BookingConfirmation(ctx context.Context, apt *model.Appointment) error {
	m := gomail.NewMessage()
	m.SetHeader("From", n.cfg.From)
	m.SetHeader("To", n.cfg.To)
	m.SetHeader("Subject", fmt.Sprintf("New appointment %s with %s", apt.BookingID, apt.DoctorName))
	m.SetBody("text/plain", fmt.Sprintf(
		"Booking ID: %s\nPatient: %s (age %s)\nPhone: %s\nAddress: %s\nSymptoms: %s\nDoctor: %s\nSlot: %s\nRecorded: %s\n",
		apt.BookingID, apt.CustomerName, apt.Age, apt.Phone, apt.Address,
		apt.Symptoms, apt.DoctorName, apt.TimeSlot, apt.SavedAt))

	return n.dialer.DialAndSend(m)
}
