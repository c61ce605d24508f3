// Package albums is the sample application deployed into the playground: a small HTTP API
// that serves music albums stored in Redis and exposes Prometheus metrics.
package albums
