package shopify

import "encoding/json"

// graphQLRequest is the Admin GraphQL request envelope
type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// graphQLError is a request-level error entry in a GraphQL response
type graphQLError struct {
	Message string `json:"message"`
}

// graphQLResponse is the Admin GraphQL response envelope. A present Errors
// slice signals a request-level failure even on HTTP 200.
type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors,omitempty"`
}

// IsSuccess returns true when the response carries no request-level errors
func (r *graphQLResponse) IsSuccess() bool {
	return len(r.Errors) == 0
}

// ErrorMessage joins all request-level error messages
func (r *graphQLResponse) ErrorMessage() string {
	if len(r.Errors) == 0 {
		return ""
	}
	msg := r.Errors[0].Message
	for _, e := range r.Errors[1:] {
		msg += "; " + e.Message
	}
	return msg
}

// ---------------------------------------------------------------------------
// Query payloads
// ---------------------------------------------------------------------------

// translationEntry is one registered translation on a translatable resource
type translationEntry struct {
	Key    string `json:"key"`
	Value  string `json:"value"`
	Locale string `json:"locale"`
}

// translatableContentEntry is one translatable field with its content digest
type translatableContentEntry struct {
	Key    string `json:"key"`
	Value  string `json:"value"`
	Digest string `json:"digest"`
}

// translatableResourcePayload is the data shape of translatableResource
// queries. Either Translations or TranslatableContent is populated depending
// on the query.
type translatableResourcePayload struct {
	TranslatableResource *struct {
		Translations        []translationEntry         `json:"translations"`
		TranslatableContent []translatableContentEntry `json:"translatableContent"`
	} `json:"translatableResource"`
}

// productMetafieldPayload is the data shape of the product metafield query.
// A null metafield means the metafield has no value (application-level
// "not found", not a request failure).
type productMetafieldPayload struct {
	Product *struct {
		Metafield *struct {
			Value string `json:"value"`
			Type  string `json:"type"`
		} `json:"metafield"`
	} `json:"product"`
}

// translationsRegisterPayload is the data shape of the translationsRegister
// mutation. Field-level user errors mean logical failure even on HTTP 200.
type translationsRegisterPayload struct {
	TranslationsRegister *struct {
		UserErrors []struct {
			Field   []string `json:"field"`
			Message string   `json:"message"`
		} `json:"userErrors"`
		Translations []translationEntry `json:"translations"`
	} `json:"translationsRegister"`
}
