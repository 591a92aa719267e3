package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/dmitrijs2005/fieldkeeper/internal/logging"
	"github.com/dmitrijs2005/fieldkeeper/internal/server/config"
)

const maxVendorErrorBody = 1024

var vendorLanguages = map[string]string{
	"en": "en-IN",
	"hi": "hi-IN",
	"od": "or-IN",
}

// VendorLanguage maps an app language code to the vendor's locale.
// Unknown codes get en-IN.
func VendorLanguage(lang string) string {
	if code, ok := vendorLanguages[lang]; ok {
		return code
	}
	return "en-IN"
}

// VendorError is returned when the speech vendor answers with a non-2xx
// status.
type VendorError struct {
	Status int
	Body   string
}

func (e *VendorError) Error() string {
	return fmt.Sprintf("tts vendor error: %d - %s", e.Status, e.Body)
}

type ttsPayload struct {
	Text                string  `json:"text"`
	TargetLanguageCode  string  `json:"target_language_code"`
	Speaker             string  `json:"speaker"`
	Model               string  `json:"model"`
	Pace                float64 `json:"pace"`
	SpeechSampleRate    int     `json:"speech_sample_rate"`
	OutputAudioCodec    string  `json:"output_audio_codec"`
	EnablePreprocessing bool    `json:"enable_preprocessing"`
}

// TTSForwarder relays synthesis requests to the speech vendor and hands the
// audio stream back. Outbound requests share one rate limiter.
type TTSForwarder struct {
	endpoint string
	apiKey   string
	speaker  string
	model    string
	client   *http.Client
	limiter  *rate.Limiter
	log      logging.Logger
}

type TTSOption func(*TTSForwarder)

// WithHTTPClient replaces the client used for vendor calls.
func WithHTTPClient(c *http.Client) TTSOption {
	return func(f *TTSForwarder) { f.client = c }
}

func NewTTSForwarder(cfg *config.Config, log logging.Logger, opts ...TTSOption) *TTSForwarder {
	f := &TTSForwarder{
		endpoint: cfg.TTSEndpoint,
		apiKey:   cfg.TTSAPIKey,
		speaker:  cfg.TTSSpeaker,
		model:    cfg.TTSModel,
		client:   &http.Client{Timeout: cfg.TTSTimeout},
		limiter:  rate.NewLimiter(rate.Limit(cfg.TTSRateLimit), cfg.TTSBurst),
		log:      log.With("module", "tts"),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Stream asks the vendor to speak text in lang and returns the audio body.
// The caller must close it. Non-2xx answers yield *VendorError.
func (f *TTSForwarder) Stream(ctx context.Context, text, lang string) (io.ReadCloser, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("tts rate limit: %w", err)
	}

	body, err := json.Marshal(ttsPayload{
		Text:                text,
		TargetLanguageCode:  VendorLanguage(lang),
		Speaker:             f.speaker,
		Model:               f.model,
		Pace:                1.0,
		SpeechSampleRate:    22050,
		OutputAudioCodec:    "mp3",
		EnablePreprocessing: true,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("tts request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-subscription-key", f.apiKey)

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tts vendor unreachable: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxVendorErrorBody))
		return nil, &VendorError{Status: resp.StatusCode, Body: string(msg)}
	}

	f.log.Debug(ctx, "tts stream started", "lang", lang, "latency", time.Since(start))
	return resp.Body, nil
}
