// cmd/admintoken/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/surfshop-backend/internal/config"
	"github.com/your-org/surfshop-backend/internal/pkg/auth"
	"github.com/your-org/surfshop-backend/internal/pkg/logger"
)

// admintoken signs a bearer token for the back-office endpoints after
// checking the configured admin credentials.
func main() {
	email := flag.String("email", "", "admin email")
	password := flag.String("password", os.Getenv("ADMIN_PASSWORD"), "admin password (defaults to $ADMIN_PASSWORD)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	log := logger.New(cfg)

	if *email == "" {
		*email = cfg.Admin.Email
	}

	if err := auth.NewPasswordManager(cfg).CheckAdmin(*email, *password); err != nil {
		log.WithError(err).Fatal("Admin credentials rejected")
	}

	token, expiresAt, err := auth.NewJWTManager(cfg).GenerateAdminToken(*email)
	if err != nil {
		log.WithError(err).Fatal("Failed to sign admin token")
	}

	log.WithField("expires_at", expiresAt.Format(time.RFC3339)).Info("Admin token issued")
	fmt.Println(token)
}
