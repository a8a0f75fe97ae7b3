// Package llm performs the single request/response exchange with the model
// provider and turns every failure into text that can be shown as a reply.
package llm

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"stockpilot/internal/domain"
)

// Fixed replies for failures. They end up in the transcript like any answer.
const (
	MsgMissingKey = "Error: API Key is missing. Please ensure your .env.local file contains GEMINI_API_KEY and you have restarted the server."
	MsgInvalidKey = "Error: The API key is invalid. Please double check the key in your .env.local file."
	MsgNoResponse = "I couldn't generate a response."

	connectionErrorPrefix = "Connection Error: "
	unexpectedError       = "An unexpected error occurred."
)

// Completer отправляет один запрос провайдеру и возвращает текст ответа
type Completer interface {
	Complete(ctx context.Context, req domain.ModelRequest) (string, error)
}

// Gateway делает ровно один обмен на вызов: без повторов, без стриминга
type Gateway struct {
	apiKey    string
	completer Completer
}

// NewGateway; completer may be nil when no key is configured.
func NewGateway(apiKey string, completer Completer) *Gateway {
	return &Gateway{apiKey: strings.TrimSpace(apiKey), completer: completer}
}

// Configured reports whether a credential is present.
func (g *Gateway) Configured() bool { return g.apiKey != "" && g.completer != nil }

// Send never fails: provider errors come back as reply-shaped text.
func (g *Gateway) Send(ctx context.Context, req domain.ModelRequest) string {
	if !g.Configured() {
		return MsgMissingKey
	}

	text, err := g.completer.Complete(ctx, req)
	if err != nil {
		slog.Warn("model request failed", "err", err)
		return errorReply(err)
	}
	if strings.TrimSpace(text) == "" {
		return MsgNoResponse
	}
	return text
}

func errorReply(err error) string {
	if isAuthError(err) {
		return MsgInvalidKey
	}
	detail := err.Error()
	if detail == "" {
		detail = unexpectedError
	}
	return connectionErrorPrefix + detail
}

// Rejected keys come back as 400 API_KEY_INVALID or 403; 401 covers proxies in front of the provider.
func isAuthError(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden {
			return true
		}
		switch apiErr.Status {
		case "PERMISSION_DENIED", "UNAUTHENTICATED":
			return true
		}
	}
	detail := err.Error()
	for _, marker := range []string{"API_KEY_INVALID", "PERMISSION_DENIED", "UNAUTHENTICATED"} {
		if strings.Contains(detail, marker) {
			return true
		}
	}
	return false
}
