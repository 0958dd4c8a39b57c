package googletranslate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jahiker-rca/tbc-translations-app/internal/domain/translation"
)

// TechnicalSeparator is the reserved separator for composite metafield
// payloads. Only the text preceding the first separator is translated; the
// remaining segments carry technical data (e.g. structured references) that
// must survive translation byte-identically.
const TechnicalSeparator = "~~"

// DefaultEndpoint is the Google Translate v2 REST endpoint
const DefaultEndpoint = "https://translation.googleapis.com/language/translate/v2"

// maxResponseSize is the maximum allowed response size from the translate API (1MB)
const maxResponseSize = 1 * 1024 * 1024

// ErrConfigMissingAPIKey indicates a missing Google Translate API key
var ErrConfigMissingAPIKey = errors.New("googletranslate: API key is required")

// Config holds configuration for the Google Translate API
type Config struct {
	// APIKey is the Google Cloud API key
	APIKey string
	// Endpoint is the translate API endpoint
	Endpoint string
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

// NewConfig creates a new Google Translate configuration with defaults
func NewConfig(apiKey string) *Config {
	return &Config{
		APIKey:         apiKey,
		Endpoint:       DefaultEndpoint,
		TimeoutSeconds: 15,
	}
}

// Validate validates the Google Translate configuration
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrConfigMissingAPIKey
	}
	if c.Endpoint == "" {
		c.Endpoint = DefaultEndpoint
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 15
	}
	return nil
}

// translateRequest is the v2 REST request body
type translateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
}

// translateResponse is the v2 REST response envelope
type translateResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText string `json:"translatedText"`
		} `json:"translations"`
	} `json:"data"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Translator translates text payloads via the Google Translate v2 REST API.
// It implements translation.MachineTranslator.
type Translator struct {
	config     *Config
	httpClient *http.Client
}

// NewTranslator creates a new Google Translate adapter
func NewTranslator(config *Config) (*Translator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Translator{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
	}, nil
}

// Translate translates a text payload from the source to the target locale.
// Composite payloads ("<text>~~<technical-data>...") have only their leading
// text segment translated; everything after the first separator is reattached
// verbatim. Callers treat failure as non-fatal and fall back to the original
// value.
func (t *Translator) Translate(ctx context.Context, text, sourceLocale, targetLocale string) (string, error) {
	translatable, technical, composite := SplitTechnicalPayload(text)

	translated, err := t.translateText(ctx, translatable, sourceLocale, targetLocale)
	if err != nil {
		return "", err
	}

	if !composite {
		return translated, nil
	}
	return translated + TechnicalSeparator + technical, nil
}

// translateText submits one text segment to the translate API
func (t *Translator) translateText(ctx context.Context, text, sourceLocale, targetLocale string) (string, error) {
	payload, err := json.Marshal(translateRequest{
		Q:      text,
		Source: sourceLocale,
		Target: targetLocale,
		Format: "text",
	})
	if err != nil {
		return "", fmt.Errorf("googletranslate: failed to encode request: %w", err)
	}

	url := t.config.Endpoint + "?key=" + t.config.APIKey
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("googletranslate: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", translation.ErrTranslateFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("googletranslate: failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("%w: HTTP %d", translation.ErrTranslateFailed, resp.StatusCode)
	}

	var parsed translateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("%w: failed to parse response: %v", translation.ErrTranslateFailed, err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("%w: %s", translation.ErrTranslateFailed, parsed.Error.Message)
	}
	if len(parsed.Data.Translations) == 0 {
		return "", fmt.Errorf("%w: empty translation list", translation.ErrTranslateFailed)
	}

	return parsed.Data.Translations[0].TranslatedText, nil
}

// SplitTechnicalPayload splits a composite value at the first reserved
// separator. The technical remainder may be empty even for a composite
// value ("<text>~~"), so found reports whether a separator was present and
// must be restored on rejoin.
func SplitTechnicalPayload(value string) (translatable, technical string, found bool) {
	return strings.Cut(value, TechnicalSeparator)
}

// Ensure Translator implements the machine translation port
var _ translation.MachineTranslator = (*Translator)(nil)
