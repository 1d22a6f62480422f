package service

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Inline-encoded images arrive as data URLs: "data:image/png;base64,....".

// IsDataURL reports whether s is an inline-encoded payload rather than a
// regular URL.
func IsDataURL(s string) bool {
	return strings.HasPrefix(s, "data:")
}

// ParseDataURL decodes a base64 data URL into its media type and raw bytes.
func ParseDataURL(s string) (contentType string, data []byte, err error) {
	if !IsDataURL(s) {
		return "", nil, fmt.Errorf("not a data URL")
	}

	meta, payload, found := strings.Cut(s[len("data:"):], ",")
	if !found {
		return "", nil, fmt.Errorf("malformed data URL")
	}

	if !strings.HasSuffix(meta, ";base64") {
		return "", nil, fmt.Errorf("unsupported data URL encoding: %s", meta)
	}
	contentType = strings.TrimSuffix(meta, ";base64")

	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode data URL payload: %w", err)
	}

	return contentType, data, nil
}
