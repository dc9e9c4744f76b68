// Package infra contains technical adapters: the session source backed
// by the HTTP API and its cache file, the zerolog logger and the metrics
// sinks. These packages depend only on the interfaces and types defined
// in the core packages.
package infra
