package services

import (
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"repair-app/internal/models"
)

// Customer is the notification recipient.
type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// SMSSender dispatches the short-message channel. When nil, the dispatcher
// logs the rendered text instead of sending it.
type SMSSender interface {
	SendSMS(to, body string) error
}

type NotificationService struct {
	email EmailSender
	sms   SMSSender
}

func NewNotificationService(email EmailSender, sms SMSSender) *NotificationService {
	return &NotificationService{email: email, sms: sms}
}

var placeholderPattern = regexp.MustCompile(`\{[a-zA-Z][a-zA-Z0-9]*\}`)

// renderTemplate substitutes {key} placeholders from data. Placeholders with
// no matching key become empty strings rather than staying literal.
func renderTemplate(template string, data map[string]string) string {
	out := template
	for key, value := range data {
		out = strings.ReplaceAll(out, "{"+key+"}", value)
	}
	return placeholderPattern.ReplaceAllString(out, "")
}

// Send emails the stage's templated message to the customer and logs (or,
// when a provider is configured, sends) the SMS/WhatsApp text. Email failure
// is a hard error; SMS failure is logged only.
func (s *NotificationService) Send(customer Customer, stage Stage, data map[string]string) error {
	if customer.Name == "" || customer.Email == "" {
		return fmt.Errorf("%w: customer name and email are required", models.ErrValidation)
	}

	template, ok := notificationTemplates[stage]
	if !ok {
		return fmt.Errorf("%w: invalid stage %q, valid stages: %s",
			models.ErrValidation, stage, strings.Join(StageNames, ", "))
	}

	templateData := map[string]string{"name": customer.Name}
	for k, v := range data {
		templateData[k] = v
	}

	subject := renderTemplate(template.Subject, templateData)
	body := renderTemplate(template.Email, templateData)

	if err := s.email.Send(customer.Email, subject, body); err != nil {
		return fmt.Errorf("email delivery failed: %w", err)
	}

	if customer.Phone != "" {
		smsText := renderTemplate(template.SMS, templateData)
		if s.sms != nil {
			if err := s.sms.SendSMS(customer.Phone, smsText); err != nil {
				log.Printf("SMS dispatch to %s failed: %v", customer.Phone, err)
			}
		} else {
			log.Printf("[SMS/WhatsApp] To %s: %s", customer.Phone, smsText)
		}
	} else {
		log.Println("No phone number provided, skipping SMS/WhatsApp notification")
	}

	log.Printf("Notification sent to %s (%s) for stage %s", customer.Name, customer.Email, stage)
	return nil
}

// StageData fills stage-specific template fields with sensible defaults for
// anything the caller left out.
func StageData(stage Stage, requestID string, extra map[string]string) map[string]string {
	data := map[string]string{"id": requestID}
	for k, v := range extra {
		data[k] = v
	}

	setDefault := func(key, value string) {
		if data[key] == "" {
			data[key] = value
		}
	}

	switch stage {
	case StageCostEstimate:
		setDefault("amount", "2,500")
		setDefault("description", "Parts replacement and labor charges")
	case StageRepaired:
		setDefault("workDone", "Component replacement and testing completed")
	case StageDispatched:
		setDefault("trackingNo", fmt.Sprintf("TRP%d", time.Now().UnixMilli()))
		setDefault("courier", "BlueDart")
		setDefault("expectedDelivery", time.Now().Add(48*time.Hour).Format("02/01/2006"))
		setDefault("trackingUrl", "https://www.bluedart.com/tracking/"+data["trackingNo"])
	}

	return data
}

// VerifyEmailConfig checks that the mail transport can reach its server.
func (s *NotificationService) VerifyEmailConfig() error {
	return s.email.Verify()
}
