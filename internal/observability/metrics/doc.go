// Package metrics declares the Prometheus collectors shared across the API.
//
// Collectors register with the default registry at init and are served at
// /metrics. Paths are normalized before labeling so post ids never become
// label values. Helpers such as RecordPostMutation and UpdatePostsTotal keep
// label names in one place.
package metrics
