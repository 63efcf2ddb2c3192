package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/your-org/surfshop-backend/internal/config"
)

func TestNew(t *testing.T) {
	l := New(&config.Config{Logging: config.LoggingConfig{Level: "warn", Format: "json"}})
	require.Equal(t, logrus.WarnLevel, l.GetLevel())
	require.IsType(t, &logrus.JSONFormatter{}, l.Formatter)

	l = New(&config.Config{Logging: config.LoggingConfig{Level: "nonsense", Format: "text"}})
	require.Equal(t, logrus.InfoLevel, l.GetLevel())
	require.IsType(t, &logrus.TextFormatter{}, l.Formatter)
}
