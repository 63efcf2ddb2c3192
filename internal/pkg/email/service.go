// internal/pkg/email/service.go
package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/surfshop-backend/internal/config"
	"github.com/your-org/surfshop-backend/internal/domain/cart"
	"github.com/your-org/surfshop-backend/internal/domain/order"
	"github.com/your-org/surfshop-backend/internal/domain/property"
)

const defaultResendURL = "https://api.resend.com/emails"

// EmailService sends transactional email. It implements order.Notifier
// and property.Notifier.
type EmailService struct {
	config    config.EmailConfig
	templates map[string]*template.Template
	client    *http.Client
	logger    logrus.FieldLogger
	resendURL string
}

// NewEmailService creates a new email service
func NewEmailService(cfg config.EmailConfig, logger logrus.FieldLogger) *EmailService {
	return &EmailService{
		config: cfg,
		templates: map[string]*template.Template{
			string(EmailTypeOrderConfirmation): template.Must(template.New("order").Parse(orderConfirmationTemplate)),
			string(EmailTypeInquiryReceived):   template.Must(template.New("inquiry").Parse(inquiryReceivedTemplate)),
		},
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger:    logger,
		resendURL: defaultResendURL,
	}
}

// SendEmail sends an email using the configured provider. The "log"
// provider only records the message, for development.
func (s *EmailService) SendEmail(ctx context.Context, email *Email) error {
	if len(email.To) == 0 {
		return fmt.Errorf("email %q has no recipients", email.Type)
	}

	switch s.config.Provider {
	case "smtp":
		return s.sendSMTPEmail(email)
	case "resend":
		return s.sendResendEmail(ctx, email)
	case "log", "":
		s.logger.WithFields(logrus.Fields{
			"type":    email.Type,
			"to":      email.To,
			"subject": email.Subject,
		}).Info("Email not sent (log provider)")
		return nil
	default:
		return fmt.Errorf("unsupported email provider: %s", s.config.Provider)
	}
}

// OrderPlaced emails the customer an order confirmation
func (s *EmailService) OrderPlaced(ctx context.Context, o *order.Order) error {
	data := OrderConfirmationData{
		EmailTemplateData: GetBaseTemplateData(s.config.FromName, s.config.BaseURL),
		CustomerName:      o.Customer.Name,
		OrderNumber:       o.OrderNumber,
		OrderDate:         o.CreatedAt.Format("January 2, 2006"),
		OrderTotal:        "$" + o.Total.StringFixed(2),
	}
	for _, item := range o.Items {
		line := OrderLine{
			Name:     item.Name,
			Quantity: item.Quantity,
			Total:    "$" + item.LineTotal.StringFixed(2),
		}
		if item.Kind == cart.KindRental {
			line.Detail = fmt.Sprintf("%s (%d days)", item.DateRange, item.Days)
		} else if item.Variant != "" {
			line.Detail = "Size " + item.Variant
		}
		data.Items = append(data.Items, line)
	}

	htmlContent, err := s.renderTemplate(string(EmailTypeOrderConfirmation), data)
	if err != nil {
		return fmt.Errorf("failed to render order confirmation template: %w", err)
	}

	return s.SendEmail(ctx, &Email{
		To:          []string{o.Customer.Email},
		Subject:     fmt.Sprintf("Order Confirmation - %s", o.OrderNumber),
		HTMLContent: htmlContent,
		Type:        EmailTypeOrderConfirmation,
		Data: map[string]interface{}{
			"order_number": o.OrderNumber,
			"order_total":  data.OrderTotal,
		},
	})
}

// InquiryReceived alerts the shop inbox about a new shack inquiry
func (s *EmailService) InquiryReceived(ctx context.Context, inq *property.Inquiry, listing *property.Property) error {
	if s.config.NotifyTo == "" {
		return nil
	}

	data := InquiryNotificationData{
		EmailTemplateData: GetBaseTemplateData(s.config.FromName, s.config.BaseURL),
		ListingName:       listing.Name,
		GuestName:         inq.GuestName,
		ContactMethod:     string(inq.ContactMethod),
		ContactValue:      inq.ContactValue,
		CheckIn:           inq.Stay.Start.Format("Mon Jan 2, 2006"),
		CheckOut:          inq.Stay.End.Format("Mon Jan 2, 2006"),
		Nights:            inq.Nights(),
		Guests:            inq.Guests,
		EstimatedTotal:    "$" + listing.EstimatedTotal(inq.Stay).StringFixed(2),
		Message:           inq.Message,
	}

	htmlContent, err := s.renderTemplate(string(EmailTypeInquiryReceived), data)
	if err != nil {
		return fmt.Errorf("failed to render inquiry template: %w", err)
	}

	email := &Email{
		To:          []string{s.config.NotifyTo},
		Subject:     fmt.Sprintf("New inquiry: %s, %d nights", inq.GuestName, data.Nights),
		HTMLContent: htmlContent,
		Type:        EmailTypeInquiryReceived,
	}
	if inq.ContactMethod == property.ContactEmail {
		email.ReplyTo = inq.ContactValue
	}
	return s.SendEmail(ctx, email)
}

// renderTemplate renders an email template with data
func (s *EmailService) renderTemplate(templateName string, data interface{}) (string, error) {
	tmpl, exists := s.templates[templateName]
	if !exists {
		return "", fmt.Errorf("template %s not found", templateName)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", templateName, err)
	}

	return buf.String(), nil
}

func (s *EmailService) fromAddress() string {
	if s.config.FromName != "" {
		return fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail)
	}
	return s.config.FromEmail
}

func (s *EmailService) replyTo(email *Email) string {
	if email.ReplyTo != "" {
		return email.ReplyTo
	}
	return s.config.ReplyTo
}
