package notify

import (
	"context"
	"log"

	"offer-service/internal/domain/document"
)

// LogNotifier is the fallback when no notification channel is configured.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, kind document.Kind, recipientID string, payload map[string]any) error {
	log.Printf("notify: kind=%s recipient=%s payload=%v", kind, recipientID, payload)
	return nil
}
