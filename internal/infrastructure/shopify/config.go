package shopify

import (
	"errors"
	"fmt"
	"strings"
)

// Config holds configuration for the Shopify Admin API integration
type Config struct {
	// ShopDomain is the myshopify hostname (e.g. "example.myshopify.com")
	ShopDomain string
	// AccessToken is the Admin API access token
	AccessToken string
	// APIVersion is the Admin API version (e.g. "2024-01")
	APIVersion string
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

// DefaultAPIVersion is the Admin API version used when none is configured.
const DefaultAPIVersion = "2024-01"

// Errors for Shopify configuration
var (
	ErrConfigMissingShopDomain  = errors.New("shopify: shop domain is required")
	ErrConfigMissingAccessToken = errors.New("shopify: access token is required")
)

// NewConfig creates a new Shopify configuration with defaults
func NewConfig(shopDomain, accessToken string) *Config {
	return &Config{
		ShopDomain:     shopDomain,
		AccessToken:    accessToken,
		APIVersion:     DefaultAPIVersion,
		TimeoutSeconds: 30,
	}
}

// Validate validates the Shopify configuration
func (c *Config) Validate() error {
	if c.ShopDomain == "" {
		return ErrConfigMissingShopDomain
	}
	if c.AccessToken == "" {
		return ErrConfigMissingAccessToken
	}
	if c.APIVersion == "" {
		c.APIVersion = DefaultAPIVersion
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	return nil
}

// GraphQLURL returns the Admin GraphQL endpoint URL
func (c *Config) GraphQLURL() string {
	return fmt.Sprintf("%s/admin/api/%s/graphql.json", c.baseURL(), c.APIVersion)
}

// RESTURL returns the Admin REST endpoint URL for the given resource path
// (e.g. "translations.json").
func (c *Config) RESTURL(path string) string {
	return fmt.Sprintf("%s/admin/api/%s/%s", c.baseURL(), c.APIVersion, strings.TrimPrefix(path, "/"))
}

// baseURL returns the https base URL for the shop. A bare hostname in
// configuration is accepted and normalized.
func (c *Config) baseURL() string {
	domain := strings.TrimSuffix(c.ShopDomain, "/")
	if strings.HasPrefix(domain, "http://") || strings.HasPrefix(domain, "https://") {
		return domain
	}
	return "https://" + domain
}
