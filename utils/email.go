package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/Govind-619/Sodfaa/models"
	"gopkg.in/gomail.v2"
)

// EmailConfig holds email configuration
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Sender delivers one composed message
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer sends HTML mail through SMTP
type Mailer struct {
	cfg    EmailConfig
	sender Sender
}

func NewMailer(cfg EmailConfig) *Mailer {
	return &Mailer{
		cfg:    cfg,
		sender: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

// NewMailerWithSender is used when the SMTP transport is provided by the caller
func NewMailerWithSender(cfg EmailConfig, sender Sender) *Mailer {
	return &Mailer{cfg: cfg, sender: sender}
}

// SendEmail sends an HTML email
func (m *Mailer) SendEmail(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	if err := m.sender.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

var digestTemplate = template.Must(template.New("digest").Parse(`
	<h2 dir="rtl">عروض منتهية تم حذفها</h2>
	<p>The following offers ended and were removed from the storefront:</p>
	<table border="1" cellpadding="6" cellspacing="0">
		<tr><th>Offer</th><th>Product</th><th>Discount</th><th>Ended</th></tr>
		{{range .}}<tr><td>{{.ID}}</td><td>{{.ProductName}}</td><td>{{.Discount}}%</td><td>{{.EndTime.Format "2006-01-02 15:04"}}</td></tr>
		{{end}}
	</table>
`))

// SendExpiredOffersDigest mails the admin the offers one cleanup cycle removed
func (m *Mailer) SendExpiredOffersDigest(to string, removed []models.Offer, at time.Time) error {
	if len(removed) == 0 {
		return nil
	}
	var body bytes.Buffer
	if err := digestTemplate.Execute(&body, removed); err != nil {
		return fmt.Errorf("failed to render digest: %w", err)
	}
	subject := fmt.Sprintf("Sodfaa: %d expired offer(s) removed at %s", len(removed), at.Format("2006-01-02 15:04"))
	if err := m.SendEmail(to, subject, body.String()); err != nil {
		LogError("Expired offer digest to %s failed: %v", to, err)
		return err
	}
	LogInfo("Expired offer digest sent to %s (%d offers)", to, len(removed))
	return nil
}
