package coach

import (
	"context"

	"github.com/julianstephens/ripple/internal/constants"
	"github.com/julianstephens/ripple/internal/logger"
	"github.com/julianstephens/ripple/internal/models"
)

// Reply asks the completer for the next assistant turn. Any failure is
// logged and replaced with the fixed apology, so callers always get text.
// The bool reports whether the text came from the service.
func Reply(ctx context.Context, c Completer, transcript []models.ChatMessage, cc Context) (string, bool) {
	history := make([]Message, 0, len(transcript))
	for _, m := range transcript {
		if m.Role == models.RoleSystem {
			continue
		}
		history = append(history, Message{Role: m.Role, Content: m.Content})
	}

	text, err := c.Complete(ctx, history, cc)
	if err != nil {
		logger.Warn("coach request failed", "error", err)
		return constants.CoachFallbackMessage, false
	}
	return text, true
}
