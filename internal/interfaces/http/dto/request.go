package dto

// QueryRequest is the body of the raw query pass-through endpoint
type QueryRequest struct {
	Query string `json:"query" binding:"required"`
}

// TranslatedMetafieldRequest is the body of the translated-metafield endpoint.
// Locale falls back to the configured default when omitted.
type TranslatedMetafieldRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Namespace string `json:"namespace" binding:"required"`
	Key       string `json:"key" binding:"required"`
	Locale    string `json:"locale" binding:"omitempty,locale"`
}

// OriginalMetafieldRequest is the body of the original-metafield endpoint
type OriginalMetafieldRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Namespace string `json:"namespace" binding:"required"`
	Key       string `json:"key" binding:"required"`
}
