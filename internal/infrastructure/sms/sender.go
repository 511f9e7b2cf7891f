// Package sms delivers one-time verification codes to phone numbers.
package sms

import (
	"context"
	"fmt"

	"github.com/zona2/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Sender delivers a verification code to a phone number.
type Sender interface {
	Send(ctx context.Context, phone, code string) error
}

// NewSenderFromConfig builds the sender named in the configuration.
// Only the "log" sender is wired up; a real provider slots in here.
func NewSenderFromConfig(cfg config.SMSConfig, logger *zap.Logger) (Sender, error) {
	switch cfg.Sender {
	case "", "log":
		return NewLogSender(logger), nil
	default:
		return nil, fmt.Errorf("unknown sms sender: %s", cfg.Sender)
	}
}

// LogSender writes codes to the application log instead of sending them.
// Suitable for development and test environments.
type LogSender struct {
	logger *zap.Logger
}

// NewLogSender creates a LogSender
func NewLogSender(logger *zap.Logger) *LogSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSender{logger: logger}
}

// Send logs the verification code at info level
func (s *LogSender) Send(_ context.Context, phone, code string) error {
	s.logger.Info("sms verification code",
		zap.String("phone", phone),
		zap.String("code", code))
	return nil
}
