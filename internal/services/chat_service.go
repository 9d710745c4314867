package services

import (
	"context"
	"errors"
	"fmt"

	generativelanguage "google.golang.org/api/generativelanguage/v1beta"
	"google.golang.org/api/option"

	"repair-app/internal/models"
)

// geminiModel is fixed; the proxy keeps no conversation state between calls.
const geminiModel = "models/gemini-2.5-flash"

type ChatService struct {
	genai *generativelanguage.Service
}

func NewChatService(ctx context.Context, apiKey string) (*ChatService, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is not configured")
	}

	svc, err := generativelanguage.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create generative language client: %w", err)
	}
	return &ChatService{genai: svc}, nil
}

// Chat forwards the message verbatim and returns the completion text
// unmodified.
func (s *ChatService) Chat(ctx context.Context, message string) (string, error) {
	if message == "" {
		return "", fmt.Errorf("%w: message required", models.ErrValidation)
	}

	req := &generativelanguage.GenerateContentRequest{
		Contents: []*generativelanguage.Content{
			{Parts: []*generativelanguage.Part{{Text: message}}},
		},
	}

	resp, err := s.genai.Models.GenerateContent(geminiModel, req).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("empty completion from model")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}
