// Package source loads conference sessions. A cached API response on disk
// is preferred; only when it is absent is the API queried, once, and its
// body kept as the new cache. The cache is never refreshed implicitly.
package source
