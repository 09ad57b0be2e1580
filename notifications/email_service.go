package notifications

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	config "github.com/tobiasmeier/timeslot_booking/configs"
	"github.com/tobiasmeier/timeslot_booking/models"
)

type BrevoService struct {
	APIKey      string
	SenderEmail string
	SenderName  string
}

var EmailClient *BrevoService

type brevoPayload struct {
	Sender      map[string]string   `json:"sender"`
	To          []map[string]string `json:"to"`
	Subject     string              `json:"subject"`
	TextContent string              `json:"textContent"`
	HTMLContent string              `json:"htmlContent,omitempty"`
}

func InitEmailService() {
	apiKey := config.Config("BREVO_API_KEY")
	senderEmail := config.Config("EMAIL_SENDER")
	senderName := config.Config("EMAIL_SENDER_NAME")

	if apiKey == "" || senderEmail == "" || senderName == "" {
		log.Println("⚠️ Email service not configured. Outgoing mail will be logged only.")
		EmailClient = nil
		return
	}

	EmailClient = &BrevoService{
		APIKey:      apiKey,
		SenderEmail: senderEmail,
		SenderName:  senderName,
	}
	log.Println("✅ Email service initialized successfully.")
}

func (s *BrevoService) send(toEmail, toName, subject, textContent, htmlContent string) error {
	url := "https://api.brevo.com/v3/smtp/email"

	if toEmail == "" || !strings.Contains(toEmail, "@") {
		return fmt.Errorf("invalid recipient email: %s", toEmail)
	}

	recipientName := toName
	if recipientName == "" {
		recipientName = toEmail[:strings.Index(toEmail, "@")]
	}

	payload := brevoPayload{
		Sender:      map[string]string{"name": s.SenderName, "email": s.SenderEmail},
		To:          []map[string]string{{"email": toEmail, "name": recipientName}},
		Subject:     subject,
		TextContent: textContent,
		HTMLContent: htmlContent,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %v", err)
	}

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %v", err)
	}

	req.Header.Set("accept", "application/json")
	req.Header.Set("api-key", s.APIKey)
	req.Header.Set("content-type", "application/json")

	client := &http.Client{
		Timeout: 10 * time.Second,
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %v", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusCreated {
		log.Printf("Brevo API error: Status %d, Body: %s", resp.StatusCode, string(bodyBytes))
		return fmt.Errorf("failed to send email via Brevo: %s", string(bodyBytes))
	}

	return nil
}

// SendEmail delivers a mail through Brevo, or logs it when the client is not
// configured (development sink). A send failure never propagates to the
// caller; the triggering action stays committed either way.
func SendEmail(toName, toEmail, subject, textContent, htmlContent string) {
	if EmailClient == nil {
		log.Printf("📭 [dev sink] To: %s | Subject: %s | %s", toEmail, subject, textContent)
		return
	}

	err := EmailClient.send(toEmail, toName, subject, textContent, htmlContent)
	if err != nil {
		log.Printf("🔥 Failed to send email to %s: %v", toEmail, err)
		return
	}

	log.Printf("✅ Email sent successfully to %s", toEmail)
}

// SendBookingConfirmation mails the lookup link for a freshly created or
// updated booking.
func SendBookingConfirmation(booking models.Booking, lookupLink string) {
	subject := "Your booking"
	text := fmt.Sprintf(
		"Hi %s,\n\nyour booking from %s to %s has been registered.\nUse the following link to view, confirm or cancel it:\n%s\n\nThe link is valid until the booked slot has ended.",
		booking.Name,
		booking.StartDate.Format("Mon, 02 Jan 2006 15:04"),
		booking.EndDate.Format("15:04"),
		lookupLink,
	)
	html := fmt.Sprintf(
		"<h1>Booking registered</h1><p>Hi %s,</p><p>your booking from <b>%s</b> to <b>%s</b> has been registered.</p><p><a href='%s'>View your bookings</a></p><p>The link is valid until the booked slot has ended.</p>",
		booking.Name,
		booking.StartDate.Format("Mon, 02 Jan 2006 15:04"),
		booking.EndDate.Format("15:04"),
		lookupLink,
	)
	SendEmail(booking.Name, *booking.Email, subject, text, html)
}

// SendSignupInvite mails an account-creation link carrying the signup token.
func SendSignupInvite(toEmail, signupLink string) {
	subject := "You have been invited"
	text := fmt.Sprintf(
		"You have been invited to create an account.\nFollow this link to sign up:\n%s\n\nThe link is valid for 3 days.",
		signupLink,
	)
	html := fmt.Sprintf(
		"<h1>Invitation</h1><p>You have been invited to create an account.</p><p><a href='%s'>Sign up</a></p><p>The link is valid for 3 days.</p>",
		signupLink,
	)
	SendEmail("", toEmail, subject, text, html)
}
