package review

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const systemPrompt = "You are a helpful coding tutor. Review the following code and provide constructive feedback."

// GeminiReviewer implements Reviewer against the Gemini API.
type GeminiReviewer struct {
	client *genai.Client
	model  string
}

func NewGeminiReviewer(ctx context.Context, apiKey, model string) (*GeminiReviewer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiReviewer{client: client, model: model}, nil
}

func (g *GeminiReviewer) Review(ctx context.Context, code string) (string, error) {
	contents := genai.Text("Please review this code:\n" + code)

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents,
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		},
	)
	if err != nil {
		return "", fmt.Errorf("code review failed: %w", err)
	}

	feedback := resp.Text()
	if feedback == "" {
		return "", fmt.Errorf("empty response from model")
	}
	return feedback, nil
}
