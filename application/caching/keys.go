// Package caching implements the read-through / write-invalidate cache
// layer: key-space construction, single-entity and query-result caches with
// fixed per-namespace TTLs, and the invalidation fan-out applied on every
// mutation. It sits between the application handlers and the KeyValueStore
// port; the persistent store stays canonical and the cache is only ever a
// performance optimization.
package caching

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"wayfarer-backend/application/ports"
)

// Entity kinds used as single-entity key namespaces
const (
	KindUser      = "user"
	KindItinerary = "itinerary"
)

// PublicScope is the sentinel scope for the public itinerary listing.
// Any other scope value is treated as a user ID.
const PublicScope = "public"

// List key namespaces. User-scoped keys embed the user ID so a whole scope
// can be dropped with one pattern delete.
const (
	nsUserList   = "itineraries"
	nsPublicList = "public_itineraries"
)

// EntityKey builds the cache key for a single entity: "user:<id>",
// "itinerary:<id>".
func EntityKey(kind, id string) string {
	return kind + ":" + id
}

// ListKey builds the cache key for one page of a list query:
// "itineraries:<userID>:<encodedFilter>" or "public_itineraries:<encodedFilter>".
func ListKey(scope string, filter ports.ListFilter) string {
	if scope == PublicScope {
		return nsPublicList + ":" + EncodeFilter(filter)
	}
	return nsUserList + ":" + scope + ":" + EncodeFilter(filter)
}

// ScopePattern builds the glob pattern matching every list key ever cached
// under a scope, regardless of which filter combination produced it.
func ScopePattern(scope string) string {
	if scope == PublicScope {
		return nsPublicList + ":*"
	}
	return nsUserList + ":" + scope + ":*"
}

// EncodeFilter produces a canonical encoding of a list filter. The encoding
// is a pure function of the filter's values: pairs are sorted by field name
// and values are query-escaped, so semantically identical filters always map
// to the same key and distinct filters cannot collide through separator
// characters in user-supplied text.
func EncodeFilter(f ports.ListFilter) string {
	pairs := []string{
		"destination=" + url.QueryEscape(f.Destination),
		"limit=" + strconv.Itoa(f.Limit),
		"page=" + strconv.Itoa(f.Page),
		"search=" + url.QueryEscape(f.Search),
		"sort=" + url.QueryEscape(f.Sort),
		"status=" + url.QueryEscape(f.Status),
		"visibility=" + url.QueryEscape(f.Visibility),
	}
	sort.Strings(pairs)
	return strings.Join(pairs, "&")
}
