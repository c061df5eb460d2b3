// Package gemini answers general questions through the Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/room4-2/frontdesk/domain"
)

const (
	defaultModel   = "gemini-2.5-flash"
	defaultTimeout = 15 * time.Second
	maxTokens      = 256
)

// Knowledge is a KnowledgeService backed by Gemini.
type Knowledge struct {
	client  *genai.Client
	model   string
	system  string
	timeout time.Duration
}

// NewKnowledge creates a client for the Gemini API.
func NewKnowledge(ctx context.Context, apiKey, model, systemPrompt string, timeout time.Duration) (*Knowledge, error) {
	if apiKey == "" {
		return nil, errors.New("gemini: API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	if model == "" {
		model = defaultModel
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Knowledge{client: client, model: model, system: systemPrompt, timeout: timeout}, nil
}

// Ask sends one question and returns the spoken answer. Failures are
// reported as domain.ErrKnowledgeUnavailable.
func (k *Knowledge) Ask(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, k.timeout)
	defer cancel()

	temp := float32(0.6)
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(k.system, genai.RoleUser),
		Temperature:       &temp,
		MaxOutputTokens:   maxTokens,
	}

	start := time.Now()
	res, err := k.client.Models.GenerateContent(ctx, k.model, genai.Text(prompt), cfg)
	if err != nil {
		log.Printf("❌ Gemini generate failed after %v: %v", time.Since(start), err)
		return "", fmt.Errorf("%w: %v", domain.ErrKnowledgeUnavailable, err)
	}
	text := strings.TrimSpace(res.Text())
	if text == "" {
		return "", fmt.Errorf("%w: empty answer", domain.ErrKnowledgeUnavailable)
	}
	log.Printf("📥 Received from Gemini: %d chars in %v", len(text), time.Since(start))
	return Speakable(text), nil
}

// Unavailable is the KnowledgeService used when no API key is configured.
type Unavailable struct{}

// Ask always fails.
func (Unavailable) Ask(context.Context, string) (string, error) {
	return "", domain.ErrKnowledgeUnavailable
}

// Speakable strips markdown the model sometimes adds so the text reads well
// aloud.
func Speakable(text string) string {
	r := strings.NewReplacer("**", "", "__", "", "`", "", "#", "")
	lines := strings.Split(r.Replace(text), "\n")
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		l = strings.TrimSpace(l)
		l = strings.TrimLeft(l, "-*• ")
		if l != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, " ")
}
