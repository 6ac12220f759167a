// Package responsewriter records what a handler sent so that middleware can
// log, measure and trace the response after the handler returns.
package responsewriter

import (
	"net/http"
)

// Recorder wraps an http.ResponseWriter and records the status and body size.
type Recorder struct {
	http.ResponseWriter
	status      int
	size        int
	wroteHeader bool
}

// Wrap returns a Recorder for w. When w already is a Recorder it is returned
// as is, so stacked middleware share one record of the response.
func Wrap(w http.ResponseWriter) *Recorder {
	if rec, ok := w.(*Recorder); ok {
		return rec
	}
	return &Recorder{ResponseWriter: w}
}

// WriteHeader forwards the first call only.
func (r *Recorder) WriteHeader(status int) {
	if r.wroteHeader {
		return
	}
	r.status = status
	r.wroteHeader = true
	r.ResponseWriter.WriteHeader(status)
}

func (r *Recorder) Write(b []byte) (int, error) {
	if !r.wroteHeader {
		r.WriteHeader(http.StatusOK)
	}
	n, err := r.ResponseWriter.Write(b)
	r.size += n
	return n, err
}

// Flush sends buffered data to the client when the underlying writer supports it.
func (r *Recorder) Flush() {
	if !r.wroteHeader {
		r.WriteHeader(http.StatusOK)
	}
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Status is the status sent, or 200 when the handler wrote nothing,
// matching what net/http sends in that case.
func (r *Recorder) Status() int {
	if !r.wroteHeader {
		return http.StatusOK
	}
	return r.status
}

// Size is the number of body bytes written.
func (r *Recorder) Size() int {
	return r.size
}

// Written reports whether a status line has been sent.
func (r *Recorder) Written() bool {
	return r.wroteHeader
}

// Unwrap supports http.ResponseController.
func (r *Recorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
