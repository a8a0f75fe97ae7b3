package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"stockpilot/internal/domain"
)

// Gemini реализация Completer поверх Gemini API
type Gemini struct {
	client      *genai.Client
	model       string
	temperature float32
}

var _ Completer = (*Gemini)(nil)

// NewGemini does not touch the network; the first call does.
func NewGemini(ctx context.Context, apiKey, model string, temperature float32) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &Gemini{client: client, model: model, temperature: temperature}, nil
}

func (g *Gemini) Complete(ctx context.Context, req domain.ModelRequest) (string, error) {
	contents := make([]*genai.Content, 0, len(req.Messages))
	for _, m := range req.Messages {
		contents = append(contents, genai.NewContentFromText(m.Text, geminiRole(m.Role)))
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(req.SystemInstruction, genai.RoleUser),
		Temperature:       genai.Ptr(g.temperature),
	})
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

func geminiRole(r domain.Role) genai.Role {
	if r == domain.RoleAssistant {
		return genai.RoleModel
	}
	return genai.RoleUser
}
