// Package logging builds the process logger and carries request-scoped
// loggers through contexts.
//
// NewLogger reads LOG_LEVEL and LOG_FORMAT. The HTTP Logging middleware derives
// a logger tagged with request_id and trace_id via ForRequest and stores it with
// WithLogger; code below the handlers picks it up with FromContext:
//
//	logging.FromContext(ctx).Info("post created", "post_id", id)
package logging
