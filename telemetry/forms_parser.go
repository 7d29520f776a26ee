package telemetry

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/iancoleman/strcase"
	"go.uber.org/zap"
)

const (
	formsHost     = "docs.google.com"
	entryPrefix   = "entry."
	viewSegment   = "viewform"
	submitSegment = "formResponse"
)

var (
	// ErrMalformedURL indicates the endpoint string could not be parsed as a URL.
	ErrMalformedURL = errors.New("malformed forms url")
	// ErrNotFormsURL indicates the host is not a recognised forms-hosting domain.
	ErrNotFormsURL = errors.New("not a google forms url")
	// ErrNoQueryParameters indicates a forms link without any prefilled parameters.
	ErrNoQueryParameters = errors.New("forms url has no query parameters")
	// ErrNoUsableFields indicates no entry parameter mapped to a known placeholder.
	ErrNoUsableFields = errors.New("forms url has no usable field mappings")
)

// EntryMapping binds one form entry id to the accessor that supplies its value.
type EntryMapping struct {
	EntryID     string
	Placeholder string
	Get         FieldAccessor
}

// ParsedFormsEndpoint is the result of parsing a prefilled forms link: the
// programmatic submission URL plus the entry mappings in document order.
// Immutable after parsing; owned by the forms submitter built from it.
type ParsedFormsEndpoint struct {
	SubmitURL string
	Mappings  []EntryMapping
}

// IsFormsHost reports whether a URL host belongs to the forms-hosting domain.
func IsFormsHost(host string) bool {
	return host == formsHost || strings.HasSuffix(host, "."+formsHost)
}

// ParseFormsURL turns a browser-shareable prefilled forms link into a
// ParsedFormsEndpoint. Entry parameters whose prefilled value names a known
// placeholder become field mappings; unknown placeholders and non-entry
// parameters are skipped with a warning. Parsing fails if the URL is not a
// forms link, carries no query parameters, or yields no usable mappings.
func ParseFormsURL(raw string, logger *zap.Logger) (*ParsedFormsEndpoint, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedURL, err)
	}
	if !IsFormsHost(u.Hostname()) {
		return nil, fmt.Errorf("%w: host %q", ErrNotFormsURL, u.Hostname())
	}
	if u.RawQuery == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoQueryParameters, raw)
	}

	base := *u
	base.RawQuery = ""
	base.Fragment = ""
	base.Path = rewriteSubmitPath(base.Path)

	// url.Values is unordered, so walk the raw query to keep the document
	// order of the entry parameters.
	var mappings []EntryMapping
	for _, pair := range strings.Split(u.RawQuery, "&") {
		if pair == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			logger.Warn("undecodable form parameter key, skipped", zap.String("key", rawKey))
			continue
		}
		if !strings.HasPrefix(key, entryPrefix) {
			logger.Warn("form parameter is not an entry id, skipped", zap.String("key", key))
			continue
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			logger.Warn("undecodable form parameter value, skipped", zap.String("key", key))
			continue
		}
		placeholder := strcase.ToScreamingSnake(strings.TrimSpace(value))
		get, known := AccessorFor(placeholder)
		if !known {
			logger.Warn("unknown placeholder, field skipped",
				zap.String("entry", key),
				zap.String("placeholder", value))
			continue
		}
		mappings = append(mappings, EntryMapping{EntryID: key, Placeholder: placeholder, Get: get})
		logger.Info("mapped form entry",
			zap.String("entry", key),
			zap.String("placeholder", placeholder))
	}
	if len(mappings) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoUsableFields, raw)
	}

	return &ParsedFormsEndpoint{SubmitURL: base.String(), Mappings: mappings}, nil
}

// rewriteSubmitPath swaps the interactive viewing segment for the
// programmatic submission one. A link already pointing at formResponse is
// left untouched.
func rewriteSubmitPath(path string) string {
	trimmed := strings.TrimSuffix(path, "/")
	if strings.HasSuffix(trimmed, "/"+viewSegment) {
		return strings.TrimSuffix(trimmed, viewSegment) + submitSegment
	}
	return path
}
