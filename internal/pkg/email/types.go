// internal/pkg/email/types.go
package email

import (
	"time"
)

// EmailType represents the type of email being sent
type EmailType string

const (
	EmailTypeOrderConfirmation EmailType = "order_confirmation"
	EmailTypeInquiryReceived   EmailType = "inquiry_received"
	EmailTypeDeliveryCheck     EmailType = "delivery_check"
)

// Email represents an email message
type Email struct {
	To          []string               `json:"to"`
	Subject     string                 `json:"subject"`
	HTMLContent string                 `json:"html_content"`
	ReplyTo     string                 `json:"reply_to,omitempty"`
	Type        EmailType              `json:"type"`
	Data        map[string]interface{} `json:"data,omitempty"`
}

// EmailTemplateData contains common data for all email templates
type EmailTemplateData struct {
	SiteName string
	SiteURL  string
	Year     int
}

// OrderConfirmationData contains data for the order confirmation email
type OrderConfirmationData struct {
	EmailTemplateData
	CustomerName string
	OrderNumber  string
	OrderDate    string
	OrderTotal   string
	Items        []OrderLine
}

// OrderLine is one row of the confirmation table
type OrderLine struct {
	Name     string
	Detail   string // size or rental dates
	Quantity int
	Total    string
}

// InquiryNotificationData contains data for the shop's inquiry alert
type InquiryNotificationData struct {
	EmailTemplateData
	ListingName    string
	GuestName      string
	ContactMethod  string
	ContactValue   string
	CheckIn        string
	CheckOut       string
	Nights         int
	Guests         int
	EstimatedTotal string
	Message        string
}

// GetBaseTemplateData returns common template data
func GetBaseTemplateData(siteName, siteURL string) EmailTemplateData {
	return EmailTemplateData{
		SiteName: siteName,
		SiteURL:  siteURL,
		Year:     time.Now().Year(),
	}
}
