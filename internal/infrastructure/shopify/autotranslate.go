package shopify

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/jahiker-rca/tbc-translations-app/internal/domain/translation"
)

// autoTranslateMutation asks Shopify to generate its own translations for a
// resource. Availability depends on the shop's Translate & Adapt setup, so
// the trigger treats any failure as "not acknowledged" and moves on.
const autoTranslateMutation = `
mutation autoTranslate($resourceId: ID!, $locales: [String!]!) {
  translationsAutoTranslate(resourceId: $resourceId, locales: $locales) {
    userErrors {
      field
      message
    }
  }
}`

// autoTranslatePayload is the data shape of the auto-translate mutation
type autoTranslatePayload struct {
	TranslationsAutoTranslate *struct {
		UserErrors []struct {
			Field   []string `json:"field"`
			Message string   `json:"message"`
		} `json:"userErrors"`
	} `json:"translationsAutoTranslate"`
}

// triggerStrategy is one named endpoint shape for requesting an automatic
// translation. Strategies report acknowledgement uniformly; errors stay
// inside the trigger.
type triggerStrategy struct {
	name string
	run  func(ctx context.Context, id translation.ProductID, locale string) (bool, error)
}

// AutoTranslateTrigger asks Shopify to generate a translation asynchronously.
// It probes an ordered list of endpoint shapes and stops at the first one
// that acknowledges. It implements translation.AutoTranslationTrigger.
type AutoTranslateTrigger struct {
	client     *Client
	strategies []triggerStrategy
	logger     *zap.Logger
}

// NewAutoTranslateTrigger creates a trigger backed by the given client
func NewAutoTranslateTrigger(client *Client, logger *zap.Logger) *AutoTranslateTrigger {
	if logger == nil {
		logger = zap.NewNop()
	}
	t := &AutoTranslateTrigger{
		client: client,
		logger: logger,
	}
	t.strategies = []triggerStrategy{
		{name: "graphql_mutation", run: t.triggerGraphQL},
		{name: "rest_locale_endpoint", run: t.triggerRESTLocale},
		{name: "rest_bulk_endpoint", run: t.triggerRESTBulk},
	}
	return t
}

// Trigger tries each endpoint strategy in order and returns whether any of
// them acknowledged. This mechanism is opportunistic: transport failures are
// logged and never propagate.
func (t *AutoTranslateTrigger) Trigger(ctx context.Context, id translation.ProductID, locale string) (bool, error) {
	for _, strategy := range t.strategies {
		acked, err := strategy.run(ctx, id, locale)
		if err != nil {
			t.logger.Debug("auto-translate strategy failed",
				zap.String("strategy", strategy.name),
				zap.String("product_id", id.String()),
				zap.String("locale", locale),
				zap.Error(err),
			)
			continue
		}
		if acked {
			t.logger.Info("auto-translate triggered",
				zap.String("strategy", strategy.name),
				zap.String("product_id", id.String()),
				zap.String("locale", locale),
			)
			return true, nil
		}
	}
	return false, nil
}

// triggerGraphQL submits the auto-translate mutation
func (t *AutoTranslateTrigger) triggerGraphQL(ctx context.Context, id translation.ProductID, locale string) (bool, error) {
	data, err := t.client.query(ctx, autoTranslateMutation, map[string]any{
		"resourceId": id.String(),
		"locales":    []string{locale},
	})
	if err != nil {
		return false, err
	}

	var payload autoTranslatePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return false, fmt.Errorf("%w: %v", translation.ErrUpstreamInvalidResponse, err)
	}
	if payload.TranslationsAutoTranslate == nil {
		return false, nil
	}
	if len(payload.TranslationsAutoTranslate.UserErrors) > 0 {
		return false, fmt.Errorf("%w: %s", translation.ErrTranslationRegisterFailed,
			payload.TranslationsAutoTranslate.UserErrors[0].Message)
	}
	return true, nil
}

// triggerRESTLocale submits the locale-scoped REST auto-translate request
func (t *AutoTranslateTrigger) triggerRESTLocale(ctx context.Context, id translation.ProductID, locale string) (bool, error) {
	numericID, err := id.NumericID()
	if err != nil {
		return false, err
	}

	path := fmt.Sprintf("locales/%s/auto_translate.json", locale)
	payload := map[string]any{
		"resource_id":   numericID,
		"resource_type": "Product",
	}
	if _, err := t.client.doREST(ctx, "POST", path, payload); err != nil {
		return false, err
	}
	return true, nil
}

// triggerRESTBulk submits the bulk REST auto-translate request
func (t *AutoTranslateTrigger) triggerRESTBulk(ctx context.Context, id translation.ProductID, locale string) (bool, error) {
	numericID, err := id.NumericID()
	if err != nil {
		return false, err
	}

	payload := map[string]any{
		"auto_translate": map[string]any{
			"resource_ids":  []int64{numericID},
			"resource_type": "Product",
			"locales":       []string{locale},
		},
	}
	if _, err := t.client.doREST(ctx, "POST", "translations/auto_translate.json", payload); err != nil {
		return false, err
	}
	return true, nil
}

// Ensure AutoTranslateTrigger implements the trigger port
var _ translation.AutoTranslationTrigger = (*AutoTranslateTrigger)(nil)
