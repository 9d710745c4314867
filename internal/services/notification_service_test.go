package services

import (
	"errors"
	"strings"
	"testing"

	"repair-app/internal/models"
)

type fakeEmailSender struct {
	to      string
	subject string
	body    string
	err     error
}

func (f *fakeEmailSender) Send(to, subject, htmlBody string) error {
	f.to, f.subject, f.body = to, subject, htmlBody
	return f.err
}

func (f *fakeEmailSender) Verify() error { return f.err }

type fakeSMSSender struct {
	to   string
	body string
}

func (f *fakeSMSSender) SendSMS(to, body string) error {
	f.to, f.body = to, body
	return nil
}

func TestRenderTemplate(t *testing.T) {
	got := renderTemplate("Hi {name}, request {id} costs {amount}", map[string]string{
		"name": "Asha",
		"id":   "SN-1",
	})
	// Unmatched placeholders are blanked, not left literal.
	want := "Hi Asha, request SN-1 costs "
	if got != want {
		t.Errorf("renderTemplate = %q, want %q", got, want)
	}
}

func TestNotificationSend(t *testing.T) {
	email := &fakeEmailSender{}
	sms := &fakeSMSSender{}
	svc := NewNotificationService(email, sms)

	customer := Customer{Name: "Asha", Email: "asha@example.com", Phone: "+91-12345"}
	err := svc.Send(customer, StageCreated, map[string]string{"id": "SN-9"})
	if err != nil {
		t.Fatalf("Send returned %v", err)
	}

	if email.to != "asha@example.com" {
		t.Errorf("email to = %q", email.to)
	}
	if !strings.Contains(email.subject, "SN-9") {
		t.Errorf("subject %q missing request id", email.subject)
	}
	if !strings.Contains(email.body, "Asha") {
		t.Errorf("body missing customer name")
	}
	if sms.to != "+91-12345" || !strings.Contains(sms.body, "SN-9") {
		t.Errorf("sms = %+v", sms)
	}
}

func TestNotificationSend_UnknownStage(t *testing.T) {
	svc := NewNotificationService(&fakeEmailSender{}, nil)

	err := svc.Send(Customer{Name: "A", Email: "a@b.com"}, Stage("stage5"), nil)
	if !errors.Is(err, models.ErrValidation) {
		t.Errorf("err = %v, want validation error", err)
	}
}

func TestNotificationSend_MissingRecipient(t *testing.T) {
	svc := NewNotificationService(&fakeEmailSender{}, nil)

	if err := svc.Send(Customer{Email: "a@b.com"}, StageCreated, nil); !errors.Is(err, models.ErrValidation) {
		t.Errorf("missing name: err = %v, want validation error", err)
	}
	if err := svc.Send(Customer{Name: "A"}, StageCreated, nil); !errors.Is(err, models.ErrValidation) {
		t.Errorf("missing email: err = %v, want validation error", err)
	}
}

func TestNotificationSend_EmailFailureIsFatal(t *testing.T) {
	svc := NewNotificationService(&fakeEmailSender{err: errors.New("smtp refused")}, nil)

	err := svc.Send(Customer{Name: "A", Email: "a@b.com"}, StageCreated, map[string]string{"id": "X"})
	if err == nil {
		t.Fatal("email failure must fail the dispatch")
	}
}

func TestStageData_Defaults(t *testing.T) {
	data := StageData(StageCostEstimate, "SN-1", nil)
	if data["id"] != "SN-1" {
		t.Errorf("id = %q", data["id"])
	}
	if data["amount"] != "2,500" {
		t.Errorf("amount default = %q, want 2,500", data["amount"])
	}

	dispatched := StageData(StageDispatched, "SN-2", map[string]string{"courier": "DTDC"})
	if dispatched["courier"] != "DTDC" {
		t.Errorf("caller-provided courier overridden: %q", dispatched["courier"])
	}
	if !strings.HasPrefix(dispatched["trackingNo"], "TRP") {
		t.Errorf("trackingNo default = %q", dispatched["trackingNo"])
	}
	if !strings.HasSuffix(dispatched["trackingUrl"], dispatched["trackingNo"]) {
		t.Errorf("trackingUrl %q does not end with tracking number", dispatched["trackingUrl"])
	}
}
