package chat_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hustlesynth/synth-backend/internal/model/chat"
	chatservice "github.com/hustlesynth/synth-backend/internal/service/chat"
)

const systemPrompt = "You are a test assistant"

func historyOfPairs(pairs int) []chat.Message {
	now := time.Now()
	history := make([]chat.Message, 0, pairs*2)
	for i := 0; i < pairs; i++ {
		history = append(history,
			chat.NewUserMessage(fmt.Sprintf("question-%d", i), now),
			chat.NewAssistantMessage(fmt.Sprintf("answer-%d", i), now),
		)
	}
	return history
}

func TestWindowSystemMessageAlwaysFirst(t *testing.T) {
	window := chatservice.Window(systemPrompt, historyOfPairs(3), 10)

	require.NotEmpty(t, window)
	assert.Equal(t, "system", window[0].Role)
	assert.Equal(t, systemPrompt, window[0].Content)
}

func TestWindowShortHistoryIncludedWhole(t *testing.T) {
	history := historyOfPairs(2) // 4 messages, under the limit

	window := chatservice.Window(systemPrompt, history, 10)
	require.Len(t, window, 5)
	for i, msg := range history {
		assert.Equal(t, msg.Content, window[i+1].Content)
	}
}

func TestWindowTruncatesOldestFirst(t *testing.T) {
	history := historyOfPairs(25) // 50 messages
	const limit = 10

	window := chatservice.Window(systemPrompt, history, limit)
	require.Len(t, window, limit+1)
	assert.Equal(t, "system", window[0].Role)

	// The kept messages are exactly the 10 most recent, in order.
	tail := history[len(history)-limit:]
	for i, msg := range tail {
		assert.Equal(t, msg.Content, window[i+1].Content)
	}
}

func TestWindowBoundedForAnyHistorySize(t *testing.T) {
	for _, pairs := range []int{0, 1, 5, 12, 40} {
		window := chatservice.Window(systemPrompt, historyOfPairs(pairs), 10)
		assert.LessOrEqual(t, len(window), 11, "pairs=%d", pairs)
		assert.Equal(t, "system", window[0].Role)
	}
}

func TestWindowDeterministic(t *testing.T) {
	history := historyOfPairs(8)
	a := chatservice.Window(systemPrompt, history, 6)
	b := chatservice.Window(systemPrompt, history, 6)
	assert.Equal(t, a, b)
}
