package chat

import (
	"github.com/hustlesynth/synth-backend/internal/model/chat"
	"github.com/hustlesynth/synth-backend/internal/provider"
)

// Window builds the bounded message list replayed to the provider: the
// system instruction first, then the most recent limit messages from the
// history in order. Older user/assistant turns are dropped whole; the
// system instruction is never dropped. Output length is at most limit+1.
func Window(system string, history []chat.Message, limit int) []provider.Message {
	start := 0
	if limit >= 0 && len(history) > limit {
		start = len(history) - limit
	}

	window := make([]provider.Message, 0, len(history)-start+1)
	window = append(window, provider.Message{
		Role:    string(chat.RoleSystem),
		Content: system,
	})
	for _, msg := range history[start:] {
		window = append(window, provider.Message{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}
	return window
}
