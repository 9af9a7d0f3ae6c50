package app

import (
	"net/url"
	"strings"

	"github.com/riskibarqy/fantasy-madness/internal/config"
)

// DatabaseURL is the driver URL used by both the API and the migrator.
// With binary parameters on, lib/pq sends arguments in one round trip
// without named prepared statements, which keeps it usable behind
// transaction-pooling proxies.
func DatabaseURL(cfg config.Config) string {
	raw := strings.TrimSpace(cfg.DBURL)
	if !cfg.DBBinaryParameters {
		return raw
	}
	return withBinaryParameters(raw)
}

// withBinaryParameters leaves an explicit binary_parameters setting alone.
func withBinaryParameters(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" {
		if strings.Contains(raw, "binary_parameters=") {
			return raw
		}
		return strings.TrimSpace(raw + " binary_parameters=yes")
	}

	query := parsed.Query()
	if _, ok := query["binary_parameters"]; ok {
		return raw
	}
	query.Set("binary_parameters", "yes")
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

// dbNameFromURL accepts both URL and key=value connection strings.
func dbNameFromURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if parsed, err := url.Parse(raw); err == nil && parsed.Scheme != "" {
		return strings.Trim(parsed.Path, "/ ")
	}

	for _, token := range strings.Fields(raw) {
		key, value, ok := strings.Cut(token, "=")
		if ok && key == "dbname" {
			return strings.Trim(value, `"'`)
		}
	}
	return ""
}
