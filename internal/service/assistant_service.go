package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/agrolink/marketplace-service/internal/config"
	"github.com/agrolink/marketplace-service/internal/domain"
)

// Fixed replies for the degraded assistant paths. The assistant never
// propagates a failure to the caller.
const (
	assistantOfflineReply = "The assistant is currently offline (API key missing). Please try again later."
	assistantErrorReply   = "Sorry, I'm having trouble connecting right now. Please try again."
	assistantEmptyReply   = "I couldn't generate a response at this time."
)

// AssistantService is the boundary to the AI chat completion collaborator.
// One request, one reply; no retry, no caching, no rate limiting.
type AssistantService struct {
	cfg    config.AssistantConfig
	client *http.Client
	logger *zap.Logger
}

// NewAssistantService builds the service.
func NewAssistantService(cfg config.AssistantConfig, logger *zap.Logger) *AssistantService {
	return &AssistantService{cfg: cfg, client: &http.Client{}, logger: logger}
}

type generateContentRequest struct {
	SystemInstruction *contentBlock  `json:"system_instruction,omitempty"`
	Contents          []contentBlock `json:"contents"`
}

type contentBlock struct {
	Parts []contentPart `json:"parts"`
}

type contentPart struct {
	Text string `json:"text"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content contentBlock `json:"content"`
	} `json:"candidates"`
}

// Ask sends the prompt with the caller's role folded into the system
// instruction and returns the reply text, or a fixed fallback string when
// the collaborator is unreachable or unconfigured.
func (s *AssistantService) Ask(ctx context.Context, prompt string, role domain.Role) string {
	if s.cfg.APIKey == "" {
		return assistantOfflineReply
	}

	payload := generateContentRequest{
		SystemInstruction: &contentBlock{Parts: []contentPart{{Text: systemInstruction(role)}}},
		Contents:          []contentBlock{{Parts: []contentPart{{Text: prompt}}}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error("assistant request encode failed", zap.Error(err))
		return assistantErrorReply
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", s.cfg.Endpoint, s.cfg.Model, s.cfg.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		s.logger.Error("assistant request build failed", zap.Error(err))
		return assistantErrorReply
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn("assistant unreachable", zap.Error(err))
		return assistantErrorReply
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.Warn("assistant returned non-ok status", zap.Int("status", resp.StatusCode))
		return assistantErrorReply
	}

	var parsed generateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		s.logger.Warn("assistant response decode failed", zap.Error(err))
		return assistantErrorReply
	}

	text := replyText(parsed)
	if text == "" {
		return assistantEmptyReply
	}
	return text
}

func systemInstruction(role domain.Role) string {
	return fmt.Sprintf(`You are a helpful agricultural marketplace assistant.
You assist users who are either producers or buyers of goods.
Current user role: %s.
Keep answers concise, practical, and easy to understand.
If asked about prices, give general market trends but state they vary.`, role.Label())
}

func replyText(resp generateContentResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	parts := resp.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return ""
	}
	return parts[0].Text
}
