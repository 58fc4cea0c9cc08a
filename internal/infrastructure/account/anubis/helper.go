package anubis

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"
)

// tokenCacheKey keeps raw bearer tokens out of the principal cache.
func tokenCacheKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// introspectionURL joins base and path unless path is already absolute.
func introspectionURL(baseURL, path string) string {
	path = strings.TrimSpace(path)
	if parsed, err := url.Parse(path); err == nil && parsed.IsAbs() {
		return path
	}
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if path == "" {
		return base
	}
	return base + "/" + strings.TrimLeft(path, "/")
}
