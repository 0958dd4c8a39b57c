package dto

import (
	"github.com/jahiker-rca/tbc-translations-app/internal/domain/translation"
)

// TranslatedMetafieldResponse is the success payload of the
// translated-metafield endpoint
type TranslatedMetafieldResponse struct {
	Success         bool   `json:"success"`
	Value           string `json:"value"`
	Locale          string `json:"locale"`
	IsTranslated    bool   `json:"isTranslated"`
	Source          string `json:"source"`
	RequestedLocale string `json:"requestedLocale"`
	MetafieldKey    string `json:"metafieldKey"`
	Message         string `json:"message,omitempty"`
}

// OriginalMetafieldResponse is the success payload of the
// original-metafield endpoint
type OriginalMetafieldResponse struct {
	Success       bool   `json:"success"`
	OriginalValue string `json:"originalValue"`
	Type          string `json:"type"`
	MetafieldKey  string `json:"metafieldKey"`
}

// ErrorResponse is the error payload shared by all endpoints
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewTranslatedMetafieldResponse builds the success payload from an
// orchestration result
func NewTranslatedMetafieldResponse(result *translation.TranslationResult, requestedLocale string, coord translation.MetafieldCoordinate) TranslatedMetafieldResponse {
	return TranslatedMetafieldResponse{
		Success:         true,
		Value:           result.Value,
		Locale:          result.Locale,
		IsTranslated:    result.IsTranslated,
		Source:          result.Source.String(),
		RequestedLocale: requestedLocale,
		MetafieldKey:    coord.DottedKey(),
		Message:         result.Message,
	}
}

// NewOriginalMetafieldResponse builds the success payload from a metafield
func NewOriginalMetafieldResponse(metafield *translation.Metafield, coord translation.MetafieldCoordinate) OriginalMetafieldResponse {
	return OriginalMetafieldResponse{
		Success:       true,
		OriginalValue: metafield.Value,
		Type:          metafield.Type,
		MetafieldKey:  coord.DottedKey(),
	}
}

// NewErrorResponse builds an error payload
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}
