package request

import (
	"net/url"
	"sort"
	"strings"

	"github.com/aretw0/javelin/pkg/domain"
)

// EncodeData serializes a payload as an ampersand-joined query string.
// Caller keys come first in sorted order; the async marker is always last and
// replaces any caller-supplied value under the same key.
func EncodeData(data map[string]string) string {
	keys := make([]string, 0, len(data))
	for k := range data {
		if k == domain.AsyncMarker {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys)+1)
	for _, k := range keys {
		parts = append(parts, url.QueryEscape(k)+"="+url.QueryEscape(data[k]))
	}
	parts = append(parts, domain.AsyncMarker+"="+domain.AsyncMarkerValue)
	return strings.Join(parts, "&")
}

// AppendQuery attaches a query string to uri, extending an existing query if there is one.
func AppendQuery(uri, query string) string {
	if strings.Contains(uri, "?") {
		return uri + "&" + query
	}
	return uri + "?" + query
}
