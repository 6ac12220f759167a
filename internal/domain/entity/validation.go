package entity

import (
	"fmt"
	"net/url"
	"strings"
)

// maxURLLength defines the maximum allowed length for URLs to prevent DoS attacks.
const maxURLLength = 2048

// ValidateRequired rejects values that are empty after trimming whitespace.
func ValidateRequired(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Message: "is required"}
	}
	return nil
}

// ValidateCoverImage validates the optional cover image URL.
// An empty value is accepted; anything else must be an absolute http(s) URL.
// The URL is only rendered by browsers, so no host resolution is attempted.
func ValidateCoverImage(rawURL string) error {
	if rawURL == "" {
		return nil
	}

	// DoS protection: enforce maximum URL length
	if len(rawURL) > maxURLLength {
		return &ValidationError{
			Field:   "coverImage",
			Message: fmt.Sprintf("must not exceed %d characters", maxURLLength),
		}
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return &ValidationError{Field: "coverImage", Message: "must be a valid URL"}
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return &ValidationError{Field: "coverImage", Message: "must use http or https scheme"}
	}

	if parsedURL.Host == "" {
		return &ValidationError{Field: "coverImage", Message: "must have a valid host"}
	}

	return nil
}
