package announcer

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
)

const (
	summaryModel = "gemini-flash-latest"
	ttsModel     = "gemini-2.5-flash-preview-tts"
	ttsVoice     = "Fenrir"
)

// ErrNoAPIKey is returned when the announcer is asked to generate content but
// no API key was configured.
var ErrNoAPIKey = errors.New("no gemini api key configured")

// APIClient calls the Gemini generateContent REST API. It implements the
// Announcer interface.
type APIClient struct {
	httpClient *http.Client
	BaseURL    string
	apiKey     string
}

// NewClient creates a Gemini-backed announcer. An empty apiKey is allowed;
// calls then fail with ErrNoAPIKey and callers fall back to canned text.
func NewClient(apiKey string) *APIClient {
	return &APIClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		BaseURL:    "https://generativelanguage.googleapis.com",
		apiKey:     apiKey,
	}
}

var _ Announcer = (*APIClient)(nil)

type generateRequest struct {
	Contents          []content         `json:"contents"`
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generationConfig struct {
	ResponseModalities []string      `json:"responseModalities,omitempty"`
	SpeechConfig       *speechConfig `json:"speechConfig,omitempty"`
}

type speechConfig struct {
	VoiceConfig voiceConfig `json:"voiceConfig"`
}

type voiceConfig struct {
	PrebuiltVoiceConfig prebuiltVoiceConfig `json:"prebuiltVoiceConfig"`
}

type prebuiltVoiceConfig struct {
	VoiceName string `json:"voiceName"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Summarize asks the text model for a short, playful commentary on the
// current standings. The prompt is in Spanish because the announcements are.
func (c *APIClient) Summarize(ctx context.Context, standings string) (string, error) {
	req := generateRequest{
		Contents: []content{{Parts: []part{{Text: standings}}}},
		SystemInstruction: &content{Parts: []part{{
			Text: "Eres un comentarista deportivo de pádel. Resume la clasificación " +
				"del torneo en dos o tres frases, en español, con un tono divertido y " +
				"cercano. Menciona a la pareja líder y algún dato llamativo.",
		}}},
	}

	resp, err := c.generate(ctx, summaryModel, req)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("empty response from model")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

// AnnounceWinner synthesizes the spoken winner announcement.
func (c *APIClient) AnnounceWinner(ctx context.Context, winnerName string) ([]byte, error) {
	req := generateRequest{
		Contents: []content{{Parts: []part{{
			Text: fmt.Sprintf(
				"Di con entusiasmo de locutor deportivo: ¡Y los campeones del torneo son... %s! ¡Enhorabuena!",
				winnerName,
			),
		}}}},
		GenerationConfig: &generationConfig{
			ResponseModalities: []string{"AUDIO"},
			SpeechConfig: &speechConfig{
				VoiceConfig: voiceConfig{
					PrebuiltVoiceConfig: prebuiltVoiceConfig{VoiceName: ttsVoice},
				},
			},
		},
	}

	resp, err := c.generate(ctx, ttsModel, req)
	if err != nil {
		return nil, err
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, errors.New("empty response from model")
	}
	data := resp.Candidates[0].Content.Parts[0].InlineData
	if data == nil {
		return nil, errors.New("model returned no audio data")
	}

	audio, err := base64.StdEncoding.DecodeString(data.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode audio payload: %w", err)
	}
	return audio, nil
}

func (c *APIClient) generate(ctx context.Context, model string, payload generateRequest) (*generateResponse, error) {
	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.BaseURL, model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	log.Debug("Requesting content generation", "model", model)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		log.Error("Received non-OK HTTP status from Gemini API", "status", resp.StatusCode, "body", string(respBody))
		return nil, fmt.Errorf("received non-OK HTTP status: %d", resp.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &out, nil
}
