package translation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jahiker-rca/tbc-translations-app/internal/domain/translation"
	"github.com/jahiker-rca/tbc-translations-app/internal/infrastructure/logger"
)

// Config holds orchestration settings
type Config struct {
	// SourceLocale is the locale the untranslated metafield values are in
	SourceLocale string
	// SettleDelay is the fixed wait after a successful auto-translate
	// trigger, before the single recheck. It is a propagation heuristic,
	// not a guarantee.
	SettleDelay time.Duration
}

// applyDefaults sets default values for any empty config fields
func (c *Config) applyDefaults() {
	if c.SourceLocale == "" {
		c.SourceLocale = "en"
	}
	if c.SettleDelay == 0 {
		c.SettleDelay = 5 * time.Second
	}
}

// Service orchestrates metafield translation lookup and creation. Each
// request runs the fallback chain strictly sequentially: existing
// translation, original-value fetch, platform auto-translation, machine
// translation, and finally the two registration transports in fixed order.
// Once the original value is confirmed to exist the caller always receives a
// usable value; only total absence of the source value is fatal.
type Service struct {
	reader           translation.TranslationReader
	queries          translation.QueryClient
	trigger          translation.AutoTranslationTrigger
	translator       translation.MachineTranslator
	graphqlRegistrar translation.TranslationRegistrar
	restRegistrar    translation.TranslationRegistrar
	config           Config
	logger           *zap.Logger
}

// NewService creates a new translation orchestration service
func NewService(
	reader translation.TranslationReader,
	queries translation.QueryClient,
	trigger translation.AutoTranslationTrigger,
	translator translation.MachineTranslator,
	graphqlRegistrar translation.TranslationRegistrar,
	restRegistrar translation.TranslationRegistrar,
	config Config,
	logger *zap.Logger,
) *Service {
	config.applyDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		reader:           reader,
		queries:          queries,
		trigger:          trigger,
		translator:       translator,
		graphqlRegistrar: graphqlRegistrar,
		restRegistrar:    restRegistrar,
		config:           config,
		logger:           logger,
	}
}

// GetOrCreateMetafieldTranslation returns the metafield's translation in the
// requested locale, creating and best-effort persisting one when none exists.
func (s *Service) GetOrCreateMetafieldTranslation(
	ctx context.Context,
	id translation.ProductID,
	coord translation.MetafieldCoordinate,
	locale string,
) (*translation.TranslationResult, error) {
	log := s.logger.With(
		zap.String("product_id", id.String()),
		zap.String("metafield_key", coord.DottedKey()),
		zap.String("locale", locale),
	)
	if requestID := logger.GetRequestID(ctx); requestID != "" {
		log = log.With(zap.String("request_id", requestID))
	}

	// Step 1: existing translation short-circuits everything else.
	value, found, err := s.reader.GetTranslation(ctx, id, coord, locale)
	if err != nil {
		return nil, fmt.Errorf("failed to get metafield translation: %w", err)
	}
	if found {
		log.Info("existing translation found")
		return &translation.TranslationResult{
			Value:        value,
			Locale:       locale,
			IsTranslated: true,
			Source:       translation.SourceExistingTranslation,
		}, nil
	}

	// Step 2: the original value must exist; its absence is the only
	// fatal outcome past this point.
	metafield, err := s.reader.GetOriginalMetafield(ctx, id, coord)
	if err != nil {
		return nil, fmt.Errorf("failed to get metafield translation: %w", err)
	}

	// Step 3: opportunistic platform auto-translation with a single
	// recheck after the settle delay.
	if result := s.tryAutoTranslation(ctx, id, coord, locale, log); result != nil {
		return result, nil
	}

	// Step 4: machine translation of the original value. Failure falls
	// back to the untranslated original; nothing is registered then.
	translated, err := s.translator.Translate(ctx, metafield.Value, s.config.SourceLocale, locale)
	if err != nil {
		log.Warn("machine translation failed, returning original value", zap.Error(err))
		return &translation.TranslationResult{
			Value:        metafield.Value,
			Locale:       locale,
			IsTranslated: false,
			Source:       translation.SourceGoogleTranslateOnly,
			Message:      "Machine translation unavailable; returning the original untranslated value.",
		}, nil
	}

	// Step 5: best-effort persistence, structured mutation first.
	return s.registerTranslation(ctx, id, coord, locale, translated, log), nil
}

// tryAutoTranslation triggers the platform's own translation and rechecks
// once after the settle delay. A nil result means the chain continues.
func (s *Service) tryAutoTranslation(
	ctx context.Context,
	id translation.ProductID,
	coord translation.MetafieldCoordinate,
	locale string,
	log *zap.Logger,
) *translation.TranslationResult {
	acked, err := s.trigger.Trigger(ctx, id, locale)
	if err != nil {
		log.Warn("auto-translate trigger failed", zap.Error(err))
		return nil
	}
	if !acked {
		return nil
	}

	// Fixed settle wait for asynchronous propagation. One recheck, no
	// poll loop.
	if err := s.wait(ctx, s.config.SettleDelay); err != nil {
		log.Warn("settle wait interrupted", zap.Error(err))
		return nil
	}

	value, found, err := s.reader.GetTranslation(ctx, id, coord, locale)
	if err != nil {
		log.Warn("recheck after auto-translate failed", zap.Error(err))
		return nil
	}
	if !found {
		log.Info("auto-translation did not propagate within settle delay")
		return nil
	}

	log.Info("auto-translation propagated")
	return &translation.TranslationResult{
		Value:        value,
		Locale:       locale,
		IsTranslated: true,
		Source:       translation.SourceShopifyAutoTranslation,
	}
}

// registerTranslation attempts both registration transports in fixed order.
// Persistence failures degrade to returning the translated value unregistered.
func (s *Service) registerTranslation(
	ctx context.Context,
	id translation.ProductID,
	coord translation.MetafieldCoordinate,
	locale, value string,
	log *zap.Logger,
) *translation.TranslationResult {
	err := s.graphqlRegistrar.Register(ctx, id, coord, locale, value)
	if err == nil {
		log.Info("translation registered via structured mutation")
		return &translation.TranslationResult{
			Value:        value,
			Locale:       locale,
			IsTranslated: true,
			Source:       translation.SourceRegisteredGraphQL,
		}
	}
	log.Warn("structured mutation registration failed", zap.Error(err))

	err = s.restRegistrar.Register(ctx, id, coord, locale, value)
	if err == nil {
		log.Info("translation registered via record transport")
		return &translation.TranslationResult{
			Value:        value,
			Locale:       locale,
			IsTranslated: true,
			Source:       translation.SourceRegisteredREST,
		}
	}
	log.Warn("record transport registration failed", zap.Error(err))

	return &translation.TranslationResult{
		Value:        value,
		Locale:       locale,
		IsTranslated: true,
		Source:       translation.SourceGoogleTranslateOnly,
		Message:      "Translation succeeded but could not be registered in Shopify; add it in the store's translation editor if it should persist.",
	}
}

// GetOriginalMetafield returns the untranslated metafield value and type.
func (s *Service) GetOriginalMetafield(
	ctx context.Context,
	id translation.ProductID,
	coord translation.MetafieldCoordinate,
) (*translation.Metafield, error) {
	return s.reader.GetOriginalMetafield(ctx, id, coord)
}

// Query forwards a raw structured query upstream and returns the response
// body verbatim.
func (s *Service) Query(ctx context.Context, query string) (json.RawMessage, error) {
	return s.queries.Query(ctx, query)
}

// wait blocks for the given duration or until the context is done.
func (s *Service) wait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
