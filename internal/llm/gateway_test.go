package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"google.golang.org/genai"

	"stockpilot/internal/domain"
)

type fakeCompleter struct {
	calls int
	reply string
	err   error
}

func (f *fakeCompleter) Complete(ctx context.Context, req domain.ModelRequest) (string, error) {
	f.calls++
	return f.reply, f.err
}

func request() domain.ModelRequest {
	return domain.ModelRequest{
		SystemInstruction: "rules",
		Messages:          []domain.ModelMessage{{Role: domain.RoleUser, Text: "hi"}},
	}
}

func TestGateway_MissingKeyNoTransport(t *testing.T) {
	fc := &fakeCompleter{reply: "should not be used"}
	for _, key := range []string{"", "   "} {
		g := NewGateway(key, fc)
		if g.Configured() {
			t.Fatalf("key %q: expected not configured", key)
		}
		if got := g.Send(context.Background(), request()); got != MsgMissingKey {
			t.Fatalf("got %q", got)
		}
	}
	if fc.calls != 0 {
		t.Fatalf("transport called %d times", fc.calls)
	}
}

func TestGateway_ReplyVerbatim(t *testing.T) {
	fc := &fakeCompleter{reply: "  You have **2** low items.\n"}
	g := NewGateway("key", fc)
	if got := g.Send(context.Background(), request()); got != fc.reply {
		t.Fatalf("reply changed: %q", got)
	}
	if fc.calls != 1 {
		t.Fatalf("expected exactly one call, got %d", fc.calls)
	}
}

func TestGateway_EmptyReply(t *testing.T) {
	g := NewGateway("key", &fakeCompleter{reply: " \n"})
	if got := g.Send(context.Background(), request()); got != MsgNoResponse {
		t.Fatalf("got %q", got)
	}
}

func TestGateway_AuthRejected(t *testing.T) {
	errs := []error{
		errors.New("Error 400, Message: API key not valid. Please pass a valid API key., Status: INVALID_ARGUMENT, Details: [reason:API_KEY_INVALID]"),
		errors.New("Error 403, Message: Method doesn't allow unregistered callers, Status: PERMISSION_DENIED, Details: []"),
		genai.APIError{Code: 403, Message: "Forbidden", Status: "403 Forbidden"},
		fmt.Errorf("generate content: %w", genai.APIError{Code: 401, Status: "401 Unauthorized"}),
		genai.APIError{Code: 400, Message: "API key not valid", Status: "INVALID_ARGUMENT", Details: []map[string]any{{"reason": "API_KEY_INVALID"}}},
	}
	for _, e := range errs {
		fc := &fakeCompleter{err: e}
		g := NewGateway("bad", fc)
		if got := g.Send(context.Background(), request()); got != MsgInvalidKey {
			t.Fatalf("error %v: got %q", e, got)
		}
		if fc.calls != 1 {
			t.Fatalf("no retries expected, got %d calls", fc.calls)
		}
	}
}

func TestGateway_TransportError(t *testing.T) {
	g := NewGateway("key", &fakeCompleter{err: errors.New("dial tcp: connection refused")})
	got := g.Send(context.Background(), request())
	if !strings.HasPrefix(got, "Connection Error: ") || !strings.Contains(got, "connection refused") {
		t.Fatalf("got %q", got)
	}

	g = NewGateway("key", &fakeCompleter{err: errors.New("")})
	if got := g.Send(context.Background(), request()); got != "Connection Error: An unexpected error occurred." {
		t.Fatalf("got %q", got)
	}
}

func TestGateway_StatusDigitsAreNotAuthErrors(t *testing.T) {
	errs := []error{
		errors.New("dial tcp 10.0.0.1:4030: connect: connection refused"),
		errors.New("unexpected EOF after 4013 bytes"),
		genai.APIError{Code: 503, Message: "model overloaded, retry after 401ms", Status: "UNAVAILABLE"},
	}
	for _, e := range errs {
		got := NewGateway("key", &fakeCompleter{err: e}).Send(context.Background(), request())
		if got == MsgInvalidKey || !strings.HasPrefix(got, "Connection Error: ") {
			t.Fatalf("error %v: got %q", e, got)
		}
	}
}

func TestGeminiRole(t *testing.T) {
	if geminiRole(domain.RoleAssistant) != genai.RoleModel || geminiRole(domain.RoleUser) != genai.RoleUser {
		t.Fatalf("role mapping broken")
	}
}
