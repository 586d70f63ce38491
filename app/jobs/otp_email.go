package jobs

import (
	"fmt"

	"github.com/upahaar/upahaar/pkg/mail"
	"github.com/upahaar/upahaar/pkg/queue"
)

// OTPEmail delivers the signup verification code. Dispatched by the auth
// service, processed by the queue workers.
type OTPEmail struct {
	To   string `json:"to"`
	Name string `json:"name"`
	OTP  string `json:"otp"`
}

func (j OTPEmail) Handle() error {
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your Upahaar verification code is <strong>%s</strong>. It expires in 10 minutes.</p>",
		j.Name, j.OTP,
	)
	err := mail.To(j.To).
		Subject("Verify your Upahaar account").
		Body(body).
		Send()
	if err != nil {
		return fmt.Errorf("jobs: send otp email to %s: %w", j.To, err)
	}
	return nil
}

// RegisterAll registers every job type with the queue. Call once at boot.
func RegisterAll() {
	queue.Register("jobs.OTPEmail", func() queue.Job { return &OTPEmail{} })
}
