package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jahiker-rca/tbc-translations-app/internal/domain/translation"
	"github.com/jahiker-rca/tbc-translations-app/internal/infrastructure/logger"
	"github.com/jahiker-rca/tbc-translations-app/internal/interfaces/http/dto"
)

// TranslationService defines the application operations the metafield
// endpoints depend on
type TranslationService interface {
	GetOrCreateMetafieldTranslation(ctx context.Context, id translation.ProductID, coord translation.MetafieldCoordinate, locale string) (*translation.TranslationResult, error)
	GetOriginalMetafield(ctx context.Context, id translation.ProductID, coord translation.MetafieldCoordinate) (*translation.Metafield, error)
	Query(ctx context.Context, query string) (json.RawMessage, error)
}

// MetafieldHandler handles metafield translation API endpoints
type MetafieldHandler struct {
	BaseHandler
	service       TranslationService
	defaultLocale string
}

// NewMetafieldHandler creates a new MetafieldHandler
func NewMetafieldHandler(service TranslationService, defaultLocale string) *MetafieldHandler {
	if defaultLocale == "" {
		defaultLocale = "de"
	}
	return &MetafieldHandler{
		service:       service,
		defaultLocale: defaultLocale,
	}
}

// RegisterRoutes registers the metafield routes on the given group
func (h *MetafieldHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/get-metafield", h.GetMetafield)
	rg.POST("/get-translated-metafield", h.GetTranslatedMetafield)
	rg.POST("/get-original-metafield", h.GetOriginalMetafield)
}

// GetMetafield forwards a raw structured query upstream and returns the
// response verbatim
func (h *MetafieldHandler) GetMetafield(c *gin.Context) {
	var req dto.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	body, err := h.service.Query(c.Request.Context(), req.Query)
	if err != nil {
		logger.GetGinLogger(c).Error("raw metafield query failed", zap.Error(err))
		h.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.Data(http.StatusOK, "application/json", body)
}

// GetTranslatedMetafield runs the translation fallback chain for one
// product metafield
func (h *MetafieldHandler) GetTranslatedMetafield(c *gin.Context) {
	var req dto.TranslatedMetafieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	id, err := translation.NewProductID(req.ProductID)
	if err != nil {
		h.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	coord := translation.MetafieldCoordinate{Namespace: req.Namespace, Key: req.Key}
	if err := coord.Validate(); err != nil {
		h.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	locale := req.Locale
	if locale == "" {
		locale = h.defaultLocale
	}

	result, err := h.service.GetOrCreateMetafieldTranslation(c.Request.Context(), id, coord, locale)
	if err != nil {
		logger.GetGinLogger(c).Error("metafield translation failed", zap.Error(err))
		h.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, dto.NewTranslatedMetafieldResponse(result, locale, coord))
}

// GetOriginalMetafield returns the untranslated metafield value
func (h *MetafieldHandler) GetOriginalMetafield(c *gin.Context) {
	var req dto.OriginalMetafieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	id, err := translation.NewProductID(req.ProductID)
	if err != nil {
		h.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	coord := translation.MetafieldCoordinate{Namespace: req.Namespace, Key: req.Key}
	if err := coord.Validate(); err != nil {
		h.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	metafield, err := h.service.GetOriginalMetafield(c.Request.Context(), id, coord)
	if err != nil {
		if errors.Is(err, translation.ErrMetafieldNotFound) {
			h.Error(c, http.StatusNotFound, "Metafield not found")
			return
		}
		logger.GetGinLogger(c).Error("original metafield lookup failed", zap.Error(err))
		h.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, dto.NewOriginalMetafieldResponse(metafield, coord))
}
