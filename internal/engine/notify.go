package engine

import (
	"context"
	"log/slog"
)

type MessageKind string

const (
	// MessageStreakAtRisk nudges a user who has not completed anything yet
	// today.
	MessageStreakAtRisk MessageKind = "streak_at_risk"
	// MessageListEmpty tells a user their active list just hit zero.
	MessageListEmpty MessageKind = "list_empty"
)

// Notifier is the outbound messaging collaborator. Calls are fire-and-
// forget from the core's point of view: failures are logged, never
// propagated into progression state.
type Notifier interface {
	Notify(ctx context.Context, chatID int64, kind MessageKind, payload map[string]string) error
}

// LogNotifier is the default transport-less Notifier; the real chat
// adapter is wired in by the embedding process.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) Notify(ctx context.Context, chatID int64, kind MessageKind, payload map[string]string) error {
	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("notify", "chat_id", chatID, "kind", string(kind), "payload", payload)
	return nil
}
