package googletranslate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jahiker-rca/tbc-translations-app/internal/domain/translation"
)

func TestConfig_Validate(t *testing.T) {
	t.Run("valid config with defaults", func(t *testing.T) {
		config := &Config{APIKey: "test-key"}
		require.NoError(t, config.Validate())
		assert.Equal(t, DefaultEndpoint, config.Endpoint)
		assert.True(t, config.TimeoutSeconds > 0)
	})

	t.Run("missing api key", func(t *testing.T) {
		assert.ErrorIs(t, (&Config{}).Validate(), ErrConfigMissingAPIKey)
	})
}

func TestSplitTechnicalPayload(t *testing.T) {
	tests := []struct {
		name          string
		value         string
		wantText      string
		wantTechnical string
		wantFound     bool
	}{
		{
			name:     "no separator",
			value:    "Red shoes",
			wantText: "Red shoes",
		},
		{
			name:          "single technical segment",
			value:         "Hello~~REF123",
			wantText:      "Hello",
			wantTechnical: "REF123",
			wantFound:     true,
		},
		{
			name:          "multiple technical segments",
			value:         "Hello~~REF123~~X9",
			wantText:      "Hello",
			wantTechnical: "REF123~~X9",
			wantFound:     true,
		},
		{
			name:          "leading separator",
			value:         "~~REF123",
			wantText:      "",
			wantTechnical: "REF123",
			wantFound:     true,
		},
		{
			name:      "trailing separator with empty remainder",
			value:     "Hello~~",
			wantText:  "Hello",
			wantFound: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, technical, found := SplitTechnicalPayload(tt.value)
			assert.Equal(t, tt.wantText, text)
			assert.Equal(t, tt.wantTechnical, technical)
			assert.Equal(t, tt.wantFound, found)
		})
	}
}

// createTestTranslator creates a translator pointed at the given test server
func createTestTranslator(t *testing.T, serverURL string) *Translator {
	t.Helper()
	translator, err := NewTranslator(&Config{APIKey: "test-key", Endpoint: serverURL})
	require.NoError(t, err)
	return translator
}

func TestTranslator_Translate(t *testing.T) {
	t.Run("plain value", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "test-key", r.URL.Query().Get("key"))

			var req translateRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "Red shoes", req.Q)
			assert.Equal(t, "en", req.Source)
			assert.Equal(t, "de", req.Target)
			assert.Equal(t, "text", req.Format)

			w.Write([]byte(`{"data":{"translations":[{"translatedText":"Rote Schuhe"}]}}`))
		}))
		defer server.Close()

		translator := createTestTranslator(t, server.URL)
		result, err := translator.Translate(context.Background(), "Red shoes", "en", "de")
		require.NoError(t, err)
		assert.Equal(t, "Rote Schuhe", result)
	})

	t.Run("composite payload keeps technical segments verbatim", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req translateRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			// Only the leading text segment is sent for translation
			assert.Equal(t, "Hello", req.Q)
			w.Write([]byte(`{"data":{"translations":[{"translatedText":"Hallo"}]}}`))
		}))
		defer server.Close()

		translator := createTestTranslator(t, server.URL)
		result, err := translator.Translate(context.Background(), "Hello~~REF123~~X9", "en", "de")
		require.NoError(t, err)
		assert.Equal(t, "Hallo~~REF123~~X9", result)
	})

	t.Run("composite payload with empty technical remainder keeps separator", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req translateRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "Hello", req.Q)
			w.Write([]byte(`{"data":{"translations":[{"translatedText":"Hallo"}]}}`))
		}))
		defer server.Close()

		translator := createTestTranslator(t, server.URL)
		result, err := translator.Translate(context.Background(), "Hello~~", "en", "de")
		require.NoError(t, err)
		assert.Equal(t, "Hallo~~", result)
	})

	t.Run("api error object", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"error":{"code":403,"message":"Daily limit exceeded"}}`))
		}))
		defer server.Close()

		translator := createTestTranslator(t, server.URL)
		_, err := translator.Translate(context.Background(), "Red shoes", "en", "de")
		assert.ErrorIs(t, err, translation.ErrTranslateFailed)
		assert.Contains(t, err.Error(), "Daily limit exceeded")
	})

	t.Run("http error status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}))
		defer server.Close()

		translator := createTestTranslator(t, server.URL)
		_, err := translator.Translate(context.Background(), "Red shoes", "en", "de")
		assert.ErrorIs(t, err, translation.ErrTranslateFailed)
	})

	t.Run("unreachable server", func(t *testing.T) {
		translator := createTestTranslator(t, "http://127.0.0.1:1")
		_, err := translator.Translate(context.Background(), "Red shoes", "en", "de")
		assert.ErrorIs(t, err, translation.ErrTranslateFailed)
	})
}
