// Package notifications delivers run results via pluggable notifiers.
//
// The default implementation publishes to Pushover using the token and user
// key from config.toml and gracefully degrades to a no-op when either is
// missing. The three events cover the whole surface the pipeline needs:
// a successful run, a failed run, and a delivery test.
//
// Extend this package if you need alternative transports; the pipeline
// depends only on the simple Service interface.
package notifications
