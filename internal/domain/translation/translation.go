package translation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ---------------------------------------------------------------------------
// Errors
// ---------------------------------------------------------------------------

var (
	// Upstream (Shopify Admin API) errors
	ErrUpstreamUnavailable     = errors.New("translation: upstream temporarily unavailable")
	ErrUpstreamRequestFailed   = errors.New("translation: upstream request failed")
	ErrUpstreamInvalidResponse = errors.New("translation: invalid upstream response")

	// Metafield errors
	ErrMetafieldNotFound = errors.New("translation: metafield not found")
	ErrInvalidProductID  = errors.New("translation: invalid product ID format")

	// Registration errors
	ErrDigestNotFound            = errors.New("translation: no translatable content digest for metafield")
	ErrTranslationRegisterFailed = errors.New("translation: translation registration failed")

	// Machine translation errors
	ErrTranslateFailed = errors.New("translation: machine translation failed")
)

// ---------------------------------------------------------------------------
// ProductID
// ---------------------------------------------------------------------------

// productGIDPrefix is the globally-scoped product identifier prefix used by
// the Shopify Admin GraphQL API.
const productGIDPrefix = "gid://shopify/Product/"

// ProductID is a globally-scoped product identifier
// (e.g. "gid://shopify/Product/111"). The embedded numeric id is usable by
// REST-style endpoints.
type ProductID string

// NewProductID normalizes a raw product id into a ProductID. It accepts
// either a full GID or a bare numeric id.
func NewProductID(raw string) (ProductID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalidProductID
	}
	if strings.HasPrefix(raw, productGIDPrefix) {
		id := ProductID(raw)
		if _, err := id.NumericID(); err != nil {
			return "", err
		}
		return id, nil
	}
	if _, err := strconv.ParseInt(raw, 10, 64); err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidProductID, raw)
	}
	return ProductID(productGIDPrefix + raw), nil
}

// String returns the full GID form of the product id.
func (id ProductID) String() string {
	return string(id)
}

// NumericID extracts the embedded numeric id for legacy-style endpoints.
func (id ProductID) NumericID() (int64, error) {
	numeric := strings.TrimPrefix(string(id), productGIDPrefix)
	n, err := strconv.ParseInt(numeric, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidProductID, id)
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// MetafieldCoordinate
// ---------------------------------------------------------------------------

// MetafieldCoordinate addresses one metafield on a resource by its
// (namespace, key) pair.
type MetafieldCoordinate struct {
	Namespace string
	Key       string
}

// DottedKey returns the combined key used by the translation subsystem,
// e.g. "metafields.custom.description".
func (c MetafieldCoordinate) DottedKey() string {
	return "metafields." + c.Namespace + "." + c.Key
}

// Validate checks that both parts of the coordinate are present.
func (c MetafieldCoordinate) Validate() error {
	if c.Namespace == "" || c.Key == "" {
		return errors.New("translation: metafield namespace and key are required")
	}
	return nil
}

// ---------------------------------------------------------------------------
// Source
// ---------------------------------------------------------------------------

// Source tags where a translation result came from.
type Source string

const (
	// SourceExistingTranslation indicates the target locale already had a
	// translation registered upstream.
	SourceExistingTranslation Source = "existing_translation"
	// SourceShopifyAutoTranslation indicates Shopify produced the translation
	// after an auto-translate trigger.
	SourceShopifyAutoTranslation Source = "shopify_auto_translation"
	// SourceRegisteredGraphQL indicates a machine translation persisted via
	// the translationsRegister mutation.
	SourceRegisteredGraphQL Source = "google_translate_registered_graphql"
	// SourceRegisteredREST indicates a machine translation persisted via the
	// REST translations endpoint.
	SourceRegisteredREST Source = "google_translate_registered_rest"
	// SourceGoogleTranslateOnly indicates a machine translation that could
	// not be persisted upstream.
	SourceGoogleTranslateOnly Source = "google_translate_only"
)

// IsValid returns true if the source tag is valid.
func (s Source) IsValid() bool {
	switch s {
	case SourceExistingTranslation, SourceShopifyAutoTranslation,
		SourceRegisteredGraphQL, SourceRegisteredREST, SourceGoogleTranslateOnly:
		return true
	default:
		return false
	}
}

// String returns the string representation of the source tag.
func (s Source) String() string {
	return string(s)
}

// ---------------------------------------------------------------------------
// Value Objects
// ---------------------------------------------------------------------------

// Metafield is the untranslated metafield value as stored upstream.
type Metafield struct {
	// Value is the raw metafield value
	Value string
	// Type is the upstream metafield type (e.g. "single_line_text_field")
	Type string
}

// TranslationResult is the outcome of a translation lookup or creation.
// It is always populated once an original value was found.
type TranslationResult struct {
	// Value is the best-effort translated (or original) value
	Value string
	// Locale is the locale the value is in
	Locale string
	// IsTranslated indicates whether Value differs from the original by
	// an actual translation step
	IsTranslated bool
	// Source tags which mechanism produced the value
	Source Source
	// Message carries an optional operator-facing note (e.g. persistence
	// did not succeed)
	Message string
}

// ContentDigest is an integrity token tied to the current untranslated
// content of a translatable field. It becomes stale when the source content
// changes; tracking that is the upstream caller's responsibility.
type ContentDigest string

// ---------------------------------------------------------------------------
// Ports
// ---------------------------------------------------------------------------

// QueryClient issues read-only structured queries against the upstream
// platform's query API. Implementations perform a single attempt, no retries.
type QueryClient interface {
	// Query runs a raw query and returns the upstream response body verbatim.
	Query(ctx context.Context, query string) (json.RawMessage, error)
}

// TranslationReader reads translation state from the upstream platform.
type TranslationReader interface {
	// GetTranslation returns the registered translation for the metafield in
	// the given locale. The boolean reports whether one exists; absence is
	// not an error.
	GetTranslation(ctx context.Context, id ProductID, coord MetafieldCoordinate, locale string) (string, bool, error)

	// GetOriginalMetafield returns the untranslated metafield value.
	// Returns ErrMetafieldNotFound when the metafield has no value.
	GetOriginalMetafield(ctx context.Context, id ProductID, coord MetafieldCoordinate) (*Metafield, error)
}

// MachineTranslator translates a text payload between locales via an
// external translation API.
type MachineTranslator interface {
	Translate(ctx context.Context, text, sourceLocale, targetLocale string) (string, error)
}

// TranslationRegistrar attempts to persist a translated value upstream.
// Implementations are independently fallible; a failed attempt returns an
// error and the caller moves on to the next mechanism.
type TranslationRegistrar interface {
	Register(ctx context.Context, id ProductID, coord MetafieldCoordinate, locale, value string) error
}

// AutoTranslationTrigger asks the upstream platform to generate its own
// translation asynchronously. The boolean reports whether any endpoint
// acknowledged the request; transport failures never propagate.
type AutoTranslationTrigger interface {
	Trigger(ctx context.Context, id ProductID, locale string) (bool, error)
}
