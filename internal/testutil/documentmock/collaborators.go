package documentmock

import (
	"context"

	"offer-service/internal/domain/document"
)

// Renderer is a function-backed mock for document.Renderer.
type Renderer struct {
	RenderFn func(ctx context.Context, content string, stamp *document.SignatureStamp) ([]byte, error)
}

func (m *Renderer) Render(ctx context.Context, content string, stamp *document.SignatureStamp) ([]byte, error) {
	if m.RenderFn != nil {
		return m.RenderFn(ctx, content, stamp)
	}
	return []byte("%PDF-stub"), nil
}

// Store is a function-backed mock for document.Store.
type Store struct {
	StoreFn  func(ctx context.Context, data []byte, suggestedName string) (string, error)
	FetchFn  func(ctx context.Context, locator string) ([]byte, error)
	DeleteFn func(ctx context.Context, locator string) (bool, error)
}

func (m *Store) Store(ctx context.Context, data []byte, suggestedName string) (string, error) {
	if m.StoreFn != nil {
		return m.StoreFn(ctx, data, suggestedName)
	}
	return "stub-" + suggestedName, nil
}

func (m *Store) Fetch(ctx context.Context, locator string) ([]byte, error) {
	if m.FetchFn != nil {
		return m.FetchFn(ctx, locator)
	}
	return nil, context.Canceled
}

func (m *Store) Delete(ctx context.Context, locator string) (bool, error) {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, locator)
	}
	return false, nil
}

// Notifier records every delivered note; set NotifyFn to force failures.
type Notifier struct {
	NotifyFn func(ctx context.Context, kind document.Kind, recipientID string, payload map[string]any) error
	Sent     []Note
}

type Note struct {
	Kind        document.Kind
	RecipientID string
	Payload     map[string]any
}

func (m *Notifier) Notify(ctx context.Context, kind document.Kind, recipientID string, payload map[string]any) error {
	if m.NotifyFn != nil {
		return m.NotifyFn(ctx, kind, recipientID, payload)
	}
	m.Sent = append(m.Sent, Note{Kind: kind, RecipientID: recipientID, Payload: payload})
	return nil
}
