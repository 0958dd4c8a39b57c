package shopify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jahiker-rca/tbc-translations-app/internal/domain/translation"
)

// translationsQuery reads the registered translations for a resource in one locale
const translationsQuery = `
query resourceTranslations($resourceId: ID!, $locale: String!) {
  translatableResource(resourceId: $resourceId) {
    translations(locale: $locale) {
      key
      value
      locale
    }
  }
}`

// metafieldQuery reads the untranslated metafield value
const metafieldQuery = `
query productMetafield($id: ID!, $namespace: String!, $key: String!) {
  product(id: $id) {
    metafield(namespace: $namespace, key: $key) {
      value
      type
    }
  }
}`

// translatableContentQuery lists all translatable content of a resource with digests
const translatableContentQuery = `
query translatableContent($resourceId: ID!) {
  translatableResource(resourceId: $resourceId) {
    translatableContent {
      key
      value
      digest
    }
  }
}`

// translationsRegisterMutation persists one translation against a content digest
const translationsRegisterMutation = `
mutation registerTranslation($resourceId: ID!, $translations: [TranslationInput!]!) {
  translationsRegister(resourceId: $resourceId, translations: $translations) {
    userErrors {
      field
      message
    }
    translations {
      key
      locale
    }
  }
}`

// GetTranslation returns the registered translation for the metafield in the
// given locale. Absence is reported via the boolean, not an error.
func (c *Client) GetTranslation(ctx context.Context, id translation.ProductID, coord translation.MetafieldCoordinate, locale string) (string, bool, error) {
	data, err := c.query(ctx, translationsQuery, map[string]any{
		"resourceId": id.String(),
		"locale":     locale,
	})
	if err != nil {
		return "", false, err
	}

	var payload translatableResourcePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", false, fmt.Errorf("%w: %v", translation.ErrUpstreamInvalidResponse, err)
	}
	if payload.TranslatableResource == nil {
		return "", false, nil
	}

	dotted := coord.DottedKey()
	for _, entry := range payload.TranslatableResource.Translations {
		if entry.Key == dotted {
			return entry.Value, true, nil
		}
	}
	return "", false, nil
}

// GetOriginalMetafield returns the untranslated metafield value. A null
// metafield in the response maps to translation.ErrMetafieldNotFound.
func (c *Client) GetOriginalMetafield(ctx context.Context, id translation.ProductID, coord translation.MetafieldCoordinate) (*translation.Metafield, error) {
	data, err := c.query(ctx, metafieldQuery, map[string]any{
		"id":        id.String(),
		"namespace": coord.Namespace,
		"key":       coord.Key,
	})
	if err != nil {
		return nil, err
	}

	var payload productMetafieldPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", translation.ErrUpstreamInvalidResponse, err)
	}
	if payload.Product == nil || payload.Product.Metafield == nil {
		return nil, translation.ErrMetafieldNotFound
	}

	return &translation.Metafield{
		Value: payload.Product.Metafield.Value,
		Type:  payload.Product.Metafield.Type,
	}, nil
}

// lookupContentDigest resolves the content digest for the metafield's
// translatable content. No digest means the field is not translatable.
func (c *Client) lookupContentDigest(ctx context.Context, id translation.ProductID, coord translation.MetafieldCoordinate) (translation.ContentDigest, error) {
	data, err := c.query(ctx, translatableContentQuery, map[string]any{
		"resourceId": id.String(),
	})
	if err != nil {
		return "", err
	}

	var payload translatableResourcePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", fmt.Errorf("%w: %v", translation.ErrUpstreamInvalidResponse, err)
	}
	if payload.TranslatableResource == nil {
		return "", translation.ErrDigestNotFound
	}

	dotted := coord.DottedKey()
	for _, entry := range payload.TranslatableResource.TranslatableContent {
		if entry.Key == dotted && entry.Digest != "" {
			return translation.ContentDigest(entry.Digest), nil
		}
	}
	return "", translation.ErrDigestNotFound
}

// ---------------------------------------------------------------------------
// GraphQLRegistrar
// ---------------------------------------------------------------------------

// GraphQLRegistrar persists translations via the translationsRegister
// mutation. It requires a content digest for the target metafield; a missing
// digest fails the attempt immediately.
type GraphQLRegistrar struct {
	client *Client
}

// NewGraphQLRegistrar creates a registrar backed by the structured mutation transport
func NewGraphQLRegistrar(client *Client) *GraphQLRegistrar {
	return &GraphQLRegistrar{client: client}
}

// Register resolves the content digest and submits the translation. User
// errors in the mutation response count as failure even on HTTP 200.
func (r *GraphQLRegistrar) Register(ctx context.Context, id translation.ProductID, coord translation.MetafieldCoordinate, locale, value string) error {
	digest, err := r.client.lookupContentDigest(ctx, id, coord)
	if err != nil {
		return err
	}

	data, err := r.client.query(ctx, translationsRegisterMutation, map[string]any{
		"resourceId": id.String(),
		"translations": []map[string]any{
			{
				"locale":                    locale,
				"key":                       coord.DottedKey(),
				"value":                     value,
				"translatableContentDigest": string(digest),
			},
		},
	})
	if err != nil {
		return err
	}

	var payload translationsRegisterPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("%w: %v", translation.ErrUpstreamInvalidResponse, err)
	}
	if payload.TranslationsRegister == nil {
		return translation.ErrTranslationRegisterFailed
	}
	if userErrors := payload.TranslationsRegister.UserErrors; len(userErrors) > 0 {
		return fmt.Errorf("%w: %s", translation.ErrTranslationRegisterFailed, userErrors[0].Message)
	}

	return nil
}

// ---------------------------------------------------------------------------
// RESTRegistrar
// ---------------------------------------------------------------------------

// RESTRegistrar persists translations via the flat REST record-creation
// endpoint using the embedded numeric resource id.
type RESTRegistrar struct {
	client *Client
}

// NewRESTRegistrar creates a registrar backed by the record-creation transport
func NewRESTRegistrar(client *Client) *RESTRegistrar {
	return &RESTRegistrar{client: client}
}

// Register submits the flat translation record. Any transport-level failure
// is returned for the caller to treat as "no result".
func (r *RESTRegistrar) Register(ctx context.Context, id translation.ProductID, coord translation.MetafieldCoordinate, locale, value string) error {
	numericID, err := id.NumericID()
	if err != nil {
		return err
	}

	payload := map[string]any{
		"translation": map[string]any{
			"locale":            locale,
			"key":               coord.DottedKey(),
			"value":             value,
			"translatable_id":   numericID,
			"translatable_type": "Product",
		},
	}

	if _, err := r.client.doREST(ctx, "POST", "translations.json", payload); err != nil {
		return err
	}
	return nil
}

// Ensure both registrars implement the registration port
var (
	_ translation.TranslationReader    = (*Client)(nil)
	_ translation.TranslationRegistrar = (*GraphQLRegistrar)(nil)
	_ translation.TranslationRegistrar = (*RESTRegistrar)(nil)
)
