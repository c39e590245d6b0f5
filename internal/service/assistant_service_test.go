package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/agrolink/marketplace-service/internal/config"
	"github.com/agrolink/marketplace-service/internal/domain"
)

func newAssistant(endpoint, apiKey string) *AssistantService {
	cfg := config.AssistantConfig{Endpoint: endpoint, APIKey: apiKey, Model: "gemini-2.5-flash"}
	return NewAssistantService(cfg, zap.NewNop())
}

func TestAsk_ReturnsReplyText(t *testing.T) {
	var captured generateContentRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		assert.Contains(t, r.URL.Path, ":generateContent")
		assert.Equal(t, "k", r.URL.Query().Get("key"))

		resp := generateContentResponse{}
		resp.Candidates = []struct {
			Content contentBlock `json:"content"`
		}{{Content: contentBlock{Parts: []contentPart{{Text: "Wheat prices trend upward in winter."}}}}}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	reply := newAssistant(srv.URL, "k").Ask(context.Background(), "wheat prices?", domain.RoleProducer)
	assert.Equal(t, "Wheat prices trend upward in winter.", reply)

	require.NotNil(t, captured.SystemInstruction)
	assert.Contains(t, captured.SystemInstruction.Parts[0].Text, "Producer")
	require.Len(t, captured.Contents, 1)
	assert.Equal(t, "wheat prices?", captured.Contents[0].Parts[0].Text)
}

func TestAsk_MissingKeyIsOfflineReply(t *testing.T) {
	reply := newAssistant("http://unused.invalid", "").Ask(context.Background(), "hello", domain.RoleBuyer)
	assert.Equal(t, assistantOfflineReply, reply)
}

func TestAsk_UpstreamFailureIsErrorReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	reply := newAssistant(srv.URL, "k").Ask(context.Background(), "hello", domain.RoleBuyer)
	assert.Equal(t, assistantErrorReply, reply)
}

func TestAsk_UnreachableHostIsErrorReply(t *testing.T) {
	reply := newAssistant("http://127.0.0.1:1", "k").Ask(context.Background(), "hello", domain.RoleBuyer)
	assert.Equal(t, assistantErrorReply, reply)
}

func TestAsk_EmptyCandidatesIsEmptyReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	reply := newAssistant(srv.URL, "k").Ask(context.Background(), "hello", domain.RoleProducer)
	assert.Equal(t, assistantEmptyReply, reply)
}
