package shopify

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jahiker-rca/tbc-translations-app/internal/domain/translation"
)

var (
	testProductID = translation.ProductID("gid://shopify/Product/111")
	testCoord     = translation.MetafieldCoordinate{Namespace: "custom", Key: "desc"}
)

// ---------------------------------------------------------------------------
// Reader Tests
// ---------------------------------------------------------------------------

func TestClient_GetTranslation(t *testing.T) {
	t.Run("translation present", func(t *testing.T) {
		server := createMockShopifyServer(t, func(w http.ResponseWriter, r *http.Request) {
			var req graphQLRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "gid://shopify/Product/111", req.Variables["resourceId"])
			assert.Equal(t, "de", req.Variables["locale"])

			w.Write([]byte(`{"data":{"translatableResource":{"translations":[
				{"key":"title","value":"Rote Schuhe Titel","locale":"de"},
				{"key":"metafields.custom.desc","value":"Rote Schuhe","locale":"de"}
			]}}}`))
		})
		defer server.Close()

		client := createTestClient(t, server.URL)
		value, found, err := client.GetTranslation(context.Background(), testProductID, testCoord, "de")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "Rote Schuhe", value)
	})

	t.Run("key absent", func(t *testing.T) {
		server := createMockShopifyServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data":{"translatableResource":{"translations":[
				{"key":"title","value":"Rote Schuhe Titel","locale":"de"}
			]}}}`))
		})
		defer server.Close()

		client := createTestClient(t, server.URL)
		_, found, err := client.GetTranslation(context.Background(), testProductID, testCoord, "de")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("null resource is not an error", func(t *testing.T) {
		server := createMockShopifyServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data":{"translatableResource":null}}`))
		})
		defer server.Close()

		client := createTestClient(t, server.URL)
		_, found, err := client.GetTranslation(context.Background(), testProductID, testCoord, "de")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("transport failure propagates", func(t *testing.T) {
		client := createTestClient(t, "http://127.0.0.1:1")
		_, _, err := client.GetTranslation(context.Background(), testProductID, testCoord, "de")
		assert.ErrorIs(t, err, translation.ErrUpstreamUnavailable)
	})
}

func TestClient_GetOriginalMetafield(t *testing.T) {
	t.Run("metafield present", func(t *testing.T) {
		server := createMockShopifyServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data":{"product":{"metafield":{"value":"Red shoes","type":"single_line_text_field"}}}}`))
		})
		defer server.Close()

		client := createTestClient(t, server.URL)
		metafield, err := client.GetOriginalMetafield(context.Background(), testProductID, testCoord)
		require.NoError(t, err)
		assert.Equal(t, "Red shoes", metafield.Value)
		assert.Equal(t, "single_line_text_field", metafield.Type)
	})

	t.Run("null metafield maps to not found", func(t *testing.T) {
		server := createMockShopifyServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data":{"product":{"metafield":null}}}`))
		})
		defer server.Close()

		client := createTestClient(t, server.URL)
		_, err := client.GetOriginalMetafield(context.Background(), testProductID, testCoord)
		assert.ErrorIs(t, err, translation.ErrMetafieldNotFound)
	})

	t.Run("null product maps to not found", func(t *testing.T) {
		server := createMockShopifyServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data":{"product":null}}`))
		})
		defer server.Close()

		client := createTestClient(t, server.URL)
		_, err := client.GetOriginalMetafield(context.Background(), testProductID, testCoord)
		assert.ErrorIs(t, err, translation.ErrMetafieldNotFound)
	})
}

// ---------------------------------------------------------------------------
// GraphQLRegistrar Tests
// ---------------------------------------------------------------------------

func TestGraphQLRegistrar_Register(t *testing.T) {
	t.Run("digest resolved and translation registered", func(t *testing.T) {
		var sawRegister bool
		server := createMockShopifyServer(t, func(w http.ResponseWriter, r *http.Request) {
			var req graphQLRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

			if strings.Contains(req.Query, "translatableContent") {
				w.Write([]byte(`{"data":{"translatableResource":{"translatableContent":[
					{"key":"title","value":"Red shoes title","digest":"aaa"},
					{"key":"metafields.custom.desc","value":"Red shoes","digest":"digest-123"}
				]}}}`))
				return
			}

			sawRegister = true
			translations := req.Variables["translations"].([]any)
			entry := translations[0].(map[string]any)
			assert.Equal(t, "de", entry["locale"])
			assert.Equal(t, "metafields.custom.desc", entry["key"])
			assert.Equal(t, "Rote Schuhe", entry["value"])
			assert.Equal(t, "digest-123", entry["translatableContentDigest"])
			w.Write([]byte(`{"data":{"translationsRegister":{"userErrors":[],"translations":[{"key":"metafields.custom.desc","locale":"de"}]}}}`))
		})
		defer server.Close()

		registrar := NewGraphQLRegistrar(createTestClient(t, server.URL))
		err := registrar.Register(context.Background(), testProductID, testCoord, "de", "Rote Schuhe")
		require.NoError(t, err)
		assert.True(t, sawRegister)
	})

	t.Run("no digest fails immediately without mutation", func(t *testing.T) {
		var requests int
		server := createMockShopifyServer(t, func(w http.ResponseWriter, r *http.Request) {
			requests++
			w.Write([]byte(`{"data":{"translatableResource":{"translatableContent":[
				{"key":"title","value":"Red shoes title","digest":"aaa"}
			]}}}`))
		})
		defer server.Close()

		registrar := NewGraphQLRegistrar(createTestClient(t, server.URL))
		err := registrar.Register(context.Background(), testProductID, testCoord, "de", "Rote Schuhe")
		assert.ErrorIs(t, err, translation.ErrDigestNotFound)
		assert.Equal(t, 1, requests)
	})

	t.Run("user errors are failures despite HTTP 200", func(t *testing.T) {
		server := createMockShopifyServer(t, func(w http.ResponseWriter, r *http.Request) {
			var req graphQLRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

			if strings.Contains(req.Query, "translatableContent") {
				w.Write([]byte(`{"data":{"translatableResource":{"translatableContent":[
					{"key":"metafields.custom.desc","value":"Red shoes","digest":"digest-123"}
				]}}}`))
				return
			}
			w.Write([]byte(`{"data":{"translationsRegister":{"userErrors":[
				{"field":["translations","0","translatableContentDigest"],"message":"Digest is stale"}
			],"translations":[]}}}`))
		})
		defer server.Close()

		registrar := NewGraphQLRegistrar(createTestClient(t, server.URL))
		err := registrar.Register(context.Background(), testProductID, testCoord, "de", "Rote Schuhe")
		assert.ErrorIs(t, err, translation.ErrTranslationRegisterFailed)
		assert.Contains(t, err.Error(), "Digest is stale")
	})
}

// ---------------------------------------------------------------------------
// RESTRegistrar Tests
// ---------------------------------------------------------------------------

func TestRESTRegistrar_Register(t *testing.T) {
	t.Run("submits flat record with numeric id", func(t *testing.T) {
		server := createMockShopifyServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/admin/api/2024-01/translations.json", r.URL.Path)

			var payload map[string]map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			record := payload["translation"]
			assert.Equal(t, "de", record["locale"])
			assert.Equal(t, "metafields.custom.desc", record["key"])
			assert.Equal(t, "Rote Schuhe", record["value"])
			assert.Equal(t, float64(111), record["translatable_id"])
			assert.Equal(t, "Product", record["translatable_type"])

			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"translation":{"id":1}}`))
		})
		defer server.Close()

		registrar := NewRESTRegistrar(createTestClient(t, server.URL))
		err := registrar.Register(context.Background(), testProductID, testCoord, "de", "Rote Schuhe")
		assert.NoError(t, err)
	})

	t.Run("http error reported as failure", func(t *testing.T) {
		server := createMockShopifyServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		defer server.Close()

		registrar := NewRESTRegistrar(createTestClient(t, server.URL))
		err := registrar.Register(context.Background(), testProductID, testCoord, "de", "Rote Schuhe")
		assert.ErrorIs(t, err, translation.ErrUpstreamRequestFailed)
	})
}
