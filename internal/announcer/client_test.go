package announcer

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(serverURL string) *APIClient {
	return &APIClient{
		httpClient: &http.Client{Timeout: time.Second},
		BaseURL:    serverURL,
		apiKey:     "test-key",
	}
}

func TestSummarize(t *testing.T) {
	mockJSONResponse := `{
		"candidates": [{
			"content": { "parts": [{ "text": "¡Qué torneo! Ana & Bea lideran con 12 juegos." }] }
		}]
	}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/gemini-flash-latest:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		assert.Contains(t, req.Contents[0].Parts[0].Text, "Ana & Bea")
		require.NotNil(t, req.SystemInstruction)

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintln(w, mockJSONResponse)
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	summary, err := c.Summarize(context.Background(), "1. Ana & Bea: 12 juegos a favor")
	require.NoError(t, err)
	assert.Equal(t, "¡Qué torneo! Ana & Bea lideran con 12 juegos.", summary)
}

func TestAnnounceWinner(t *testing.T) {
	audio := []byte{0x52, 0x49, 0x46, 0x46, 0x01, 0x02}
	mockJSONResponse := fmt.Sprintf(`{
		"candidates": [{
			"content": { "parts": [{ "inlineData": { "mimeType": "audio/pcm", "data": "%s" } }] }
		}]
	}`, base64.StdEncoding.EncodeToString(audio))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/gemini-2.5-flash-preview-tts:generateContent", r.URL.Path)

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotNil(t, req.GenerationConfig)
		assert.Equal(t, []string{"AUDIO"}, req.GenerationConfig.ResponseModalities)
		assert.Equal(t, "Fenrir", req.GenerationConfig.SpeechConfig.VoiceConfig.PrebuiltVoiceConfig.VoiceName)
		assert.Contains(t, req.Contents[0].Parts[0].Text, "Carla & Diego")

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintln(w, mockJSONResponse)
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	got, err := c.AnnounceWinner(context.Background(), "Carla & Diego")
	require.NoError(t, err)
	assert.Equal(t, audio, got)
}

func TestGenerateWithoutAPIKey(t *testing.T) {
	c := NewClient("")
	_, err := c.Summarize(context.Background(), "standings")
	assert.ErrorIs(t, err, ErrNoAPIKey)

	_, err = c.AnnounceWinner(context.Background(), "winner")
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestGenerateNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "quota exceeded"}}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.Summarize(context.Background(), "standings")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-OK HTTP status")
}
