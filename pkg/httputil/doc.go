// Package httputil fetches remote calendar feeds.
//
// # Overview
//
// Events can be loaded from an iCalendar URL as well as from a local file.
// This package provides the plumbing for that:
//
//   - [Client]: GET with retries, basic auth and conditional revalidation
//   - [Cache]: file-based storage of feed bodies with a TTL
//   - [Retry]: exponential backoff for transient failures
//
// # Caching
//
// [Cache] stores entries as JSON files under ~/.cache/yeargrid/feeds by
// default. A [Client] with a cache serves fresh entries without touching the
// network; once an entry expires the client revalidates it with
// If-None-Match / If-Modified-Since and keeps the cached body on a
// 304 Not Modified response.
//
//	cache, _ := httputil.NewCache("", 15*time.Minute)
//	client := httputil.NewClient(httputil.WithCache(cache.Namespace("ics:")))
//	body, err := client.Get(ctx, "https://example.com/team.ics")
//
// # Retry
//
// Network errors, 5xx responses and 429 rate limiting are retried three
// times with a doubling delay. Other 4xx responses fail immediately with a
// [*StatusError].
package httputil
