// cmd/mailcheck/main.go
package main

import (
	"context"
	"flag"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/surfshop-backend/internal/config"
	"github.com/your-org/surfshop-backend/internal/pkg/email"
	"github.com/your-org/surfshop-backend/internal/pkg/logger"
)

// mailcheck sends one message through the configured provider so SMTP or
// Resend credentials can be verified before going live.
func main() {
	to := flag.String("to", "", "recipient (defaults to EMAIL_NOTIFY_TO)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	log := logger.New(cfg)

	recipient := *to
	if recipient == "" {
		recipient = cfg.Email.NotifyTo
	}
	if recipient == "" {
		log.Fatal("No recipient: pass -to or set EMAIL_NOTIFY_TO")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	msg := &email.Email{
		To:          []string{recipient},
		Subject:     "Delivery check from " + cfg.App.Name,
		HTMLContent: "<h1>Aloha!</h1><p>Outbound email is working.</p>",
		Type:        email.EmailTypeDeliveryCheck,
	}
	if err := email.NewEmailService(cfg.Email, log).SendEmail(ctx, msg); err != nil {
		log.WithError(err).Fatal("Send failed")
	}

	log.WithFields(logrus.Fields{"provider": cfg.Email.Provider, "to": recipient}).Info("Email sent")
}
