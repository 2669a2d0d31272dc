package resp

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/xy-planning-network/enumerate"
	"github.com/xy-planning-network/enumerate/logger"
)

// Responder maintains reusable pieces for responding to HTTP requests
// with structured data.
//
// Most oftentimes, setting up a single instance of a Responder suffices for an application.
//
// When handling a specific HTTP request, calling code supplies additional data
// and the status code through Fn functions.
type Responder struct {
	logger logger.Logger

	// Pool of *bytes.Buffer to prerender responses into
	pool *sync.Pool
}

// NewResponder constructs a *Responder using the ResponderOptFns passed in.
func NewResponder(opts ...ResponderOptFn) *Responder {
	d := &Responder{
		logger: logger.Discard(),
		pool:   &sync.Pool{New: func() any { return new(bytes.Buffer) }},
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

type jsonSchema struct {
	D any    `json:"data,omitempty"`
	E string `json:"error,omitempty"`
}

// Json responds with data in JSON format, collating it from Data() and setting appropriate headers.
//
// The JSON schema looks like this:
//
//	{
//		"data": {}
//	}
//
// The default response status code is 200.
func (doer *Responder) Json(w http.ResponseWriter, r *http.Request, opts ...Fn) error {
	rr := &Response{code: http.StatusOK}
	for _, opt := range opts {
		opt(rr)
	}

	payload := jsonSchema{D: rr.data}
	if rr.err != nil {
		payload.E = rr.err.Error()
	}

	b := doer.pool.Get().(*bytes.Buffer)
	b.Reset()
	defer doer.pool.Put(b)

	if err := json.NewEncoder(b).Encode(payload); err != nil {
		doer.logger.Error("failed encoding response", &logger.LogContext{Error: err, Request: r})
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return err
	}

	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(rr.code)
	if r.Method == http.MethodHead {
		return nil
	}

	if _, err := b.WriteTo(w); err != nil {
		return err
	}

	return nil
}

// Err responds with err in JSON format,
// picking the status code from the enumerate error err wraps:
//
//	ErrNotExist    -> 404
//	ErrNotValid    -> 400
//	ErrMissingData -> 400
//	anything else  -> 500
//
// Errors responded to with a 500 are logged and their message is not exposed.
func (doer *Responder) Err(w http.ResponseWriter, r *http.Request, err error) {
	code := StatusFor(err)
	if code >= http.StatusInternalServerError {
		doer.logger.Error(err.Error(), &logger.LogContext{Error: err, Request: r})
		err = errors.New(http.StatusText(code))
	}

	_ = doer.Json(w, r, Code(code), Err(err))
}

// StatusFor maps err to an HTTP status code.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, enumerate.ErrNotExist):
		return http.StatusNotFound
	case errors.Is(err, enumerate.ErrNotValid), errors.Is(err, enumerate.ErrMissingData):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
