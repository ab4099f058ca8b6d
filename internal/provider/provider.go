// Package provider calls the hosted completion API that generates
// assistant replies. It speaks the OpenAI chat-completions wire format,
// which the HustleSynth provider implements.
package provider

import "errors"

// Sentinel errors for upstream failure classification. Callers match
// with errors.Is; the wrapped detail is for logs only and must never
// reach clients.
var (
	// ErrUnavailable covers transport failures and non-success statuses
	// from the provider.
	ErrUnavailable = errors.New("upstream unavailable")

	// ErrMalformed covers success responses whose payload is unusable:
	// anything other than exactly one choice with non-empty content.
	// Callers treat it the same as ErrUnavailable.
	ErrMalformed = errors.New("malformed upstream response")
)

// Message is one turn in the wire format sent to the provider.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// completionRequest is the chat-completions request body.
type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

// completionResponse is the subset of the response body we consume.
type completionResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}
