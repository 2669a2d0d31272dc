// Package handler serves the enumerations of a *enumerate.Registry over HTTP as JSON.
//
//	GET /enumerations              names of every registered enumeration
//	GET /enumerations/{name}       entries of one enumeration
//
// The entries endpoint accepts two query params:
// sort, one of none, value, key or label, and locale, a BCP 47 language tag.
// Unless set, each enumeration's own sort and locale apply.
package handler

import (
	"fmt"
	"net/http"

	"github.com/xy-planning-network/enumerate"
	"github.com/xy-planning-network/enumerate/http/middleware"
	"github.com/xy-planning-network/enumerate/http/req"
	"github.com/xy-planning-network/enumerate/http/resp"
	"github.com/xy-planning-network/enumerate/http/router"
	"github.com/xy-planning-network/enumerate/logger"
	"golang.org/x/text/language"
)

// Handler handles requests for enumerations.
type Handler struct {
	reg     *enumerate.Registry
	log     logger.Logger
	origins []string
	prefix  string
	sort    enumerate.SortBy
	locale  language.Tag

	parser *req.Parser
	resp   *resp.Responder
	router *router.Router
}

// An Option configures a *Handler.
type Option func(*Handler)

// WithLogger logs requests and failures through l.
func WithLogger(l logger.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.log = l
		}
	}
}

// WithOrigins allows cross-origin requests from origins.
func WithOrigins(origins ...string) Option {
	return func(h *Handler) { h.origins = append(h.origins, origins...) }
}

// WithPrefix mounts the routes under prefix, e.g. "/api/v1".
func WithPrefix(prefix string) Option {
	return func(h *Handler) { h.prefix = prefix }
}

// WithSort sets the sort used when a request does not set one.
func WithSort(sort enumerate.SortBy) Option {
	return func(h *Handler) { h.sort = sort }
}

// WithLocale sets the locale used when a request does not set one.
func WithLocale(tag language.Tag) Option {
	return func(h *Handler) { h.locale = tag }
}

// New constructs a *Handler serving the enumerations registered in reg.
// If reg is nil, enumerate.Default is used.
func New(reg *enumerate.Registry, opts ...Option) *Handler {
	if reg == nil {
		reg = enumerate.Default
	}

	h := &Handler{reg: reg, log: logger.Discard()}
	for _, opt := range opts {
		opt(h)
	}

	h.parser = req.NewParser(reg)
	h.resp = resp.NewResponder(resp.WithLogger(h.log))
	h.router = h.newRouter()

	return h
}

// Routes lists the Routes h handles.
func (h *Handler) Routes() []router.Route {
	return []router.Route{
		{Path: "/enumerations", Method: http.MethodGet, Handler: h.list},
		{Path: "/enumerations/{name}", Method: http.MethodGet, Handler: h.show},
	}
}

// newRouter builds the *router.Router serving h's Routes.
// Every request is recovered from panics and logged,
// its response compressed and CORS allowed from the origins WithOrigins sets.
func (h *Handler) newRouter() *router.Router {
	rt := router.New(
		middleware.Recover(h.log),
		middleware.LogRequest(h.log),
		middleware.Compress(),
		middleware.CORS(h.origins...),
	)
	rt.HandleNotFound(func(w http.ResponseWriter, r *http.Request) {
		h.resp.Err(w, r, fmt.Errorf("%w: %s", enumerate.ErrNotExist, r.URL.Path))
	})

	if h.prefix != "" {
		rt.Subrouter(h.prefix).HandleRoutes(h.Routes())
		return rt
	}

	rt.HandleRoutes(h.Routes())
	return rt
}

// ServeHTTP responds to an HTTP request.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}
