package router

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
)

type Middleware func(http.Handler) http.Handler

// Access is the protection level a route is registered with. The zero
// value is Admin: a route that declares nothing is admin-only.
type Access int

const (
	Admin Access = iota
	Authenticated
	Public
)

func (a Access) String() string {
	switch a {
	case Public:
		return "public"
	case Authenticated:
		return "authenticated"
	default:
		return "admin"
	}
}

// Guard turns an access level into the middleware that enforces it.
type Guard func(Access) []Middleware

// Option customises a route or group registration.
type Option interface {
	apply(*options)
}

type options struct {
	access      Access
	middlewares []Middleware
}

func (a Access) apply(o *options) { o.access = a }

type middlewareOption []Middleware

func (m middlewareOption) apply(o *options) { o.middlewares = append(o.middlewares, m...) }

// With attaches extra middleware to a route or group.
func With(mws ...Middleware) Option { return middlewareOption(mws) }

// RouteInfo describes one registered route.
type RouteInfo struct {
	Method string
	Path   string
	Name   string
	Access Access
}

type Router struct {
	mux    chi.Router
	guard  Guard
	mu     sync.RWMutex
	routes map[string]string
	infos  []RouteInfo
}

type Group struct {
	router *Router
	prefix string
	opts   options
}

// New creates a router. guard enforces access levels; a nil guard
// registers routes without enforcement (used for listing routes only).
func New(guard Guard) *Router {
	return &Router{
		mux:    chi.NewRouter(),
		guard:  guard,
		routes: make(map[string]string),
	}
}

func (r *Router) Handler() http.Handler {
	return r.mux
}

func (r *Router) Use(middlewares ...Middleware) {
	for _, mw := range middlewares {
		r.mux.Use(mw)
	}
}

// NotFound sets the handler for unmatched paths.
func (r *Router) NotFound(h http.HandlerFunc) { r.mux.NotFound(h) }

// MethodNotAllowed sets the handler for a known path with a wrong method.
func (r *Router) MethodNotAllowed(h http.HandlerFunc) { r.mux.MethodNotAllowed(h) }

func (r *Router) Group(prefix string, opts ...Option) *Group {
	g := &Group{router: r, prefix: normalizePath(prefix)}
	for _, o := range opts {
		o.apply(&g.opts)
	}
	return g
}

func (r *Router) Get(path, name string, handler http.HandlerFunc, opts ...Option) {
	r.Group("").mount(http.MethodGet, path, name, handler, opts)
}

func (r *Router) Post(path, name string, handler http.HandlerFunc, opts ...Option) {
	r.Group("").mount(http.MethodPost, path, name, handler, opts)
}

// Routes returns every registered route in registration order.
func (r *Router) Routes() []RouteInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]RouteInfo(nil), r.infos...)
}

func (r *Router) Path(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	path, ok := r.routes[name]
	return path, ok
}

func (r *Router) URL(name string, params map[string]string) (string, error) {
	path, ok := r.Path(name)
	if !ok {
		return "", fmt.Errorf("route %q not found", name)
	}

	for key, value := range params {
		path = strings.ReplaceAll(path, "{"+key+"}", value)
	}

	if strings.Contains(path, "{") {
		return "", fmt.Errorf("missing parameters for route %q", name)
	}

	return path, nil
}

func (g *Group) Group(prefix string, opts ...Option) *Group {
	child := &Group{
		router: g.router,
		prefix: joinPath(g.prefix, prefix),
		opts: options{
			access:      g.opts.access,
			middlewares: append([]Middleware(nil), g.opts.middlewares...),
		},
	}
	for _, o := range opts {
		o.apply(&child.opts)
	}
	return child
}

func (g *Group) Get(path, name string, handler http.HandlerFunc, opts ...Option) {
	g.mount(http.MethodGet, path, name, handler, opts)
}

func (g *Group) Post(path, name string, handler http.HandlerFunc, opts ...Option) {
	g.mount(http.MethodPost, path, name, handler, opts)
}

func (g *Group) Put(path, name string, handler http.HandlerFunc, opts ...Option) {
	g.mount(http.MethodPut, path, name, handler, opts)
}

func (g *Group) Delete(path, name string, handler http.HandlerFunc, opts ...Option) {
	g.mount(http.MethodDelete, path, name, handler, opts)
}

func (g *Group) mount(method, path, name string, handler http.HandlerFunc, opts []Option) {
	o := options{
		access:      g.opts.access,
		middlewares: append([]Middleware(nil), g.opts.middlewares...),
	}
	for _, opt := range opts {
		opt.apply(&o)
	}

	var mws []Middleware
	if g.router.guard != nil {
		mws = append(mws, g.router.guard(o.access)...)
	}
	mws = append(mws, o.middlewares...)

	fullPath := joinPath(g.prefix, path)
	g.router.mux.Method(method, fullPath, chain(handler, mws...))

	g.router.mu.Lock()
	defer g.router.mu.Unlock()
	g.router.infos = append(g.router.infos, RouteInfo{Method: method, Path: fullPath, Name: name, Access: o.access})
	if name != "" {
		g.router.routes[name] = fullPath
	}
}

func chain(handler http.Handler, middlewares ...Middleware) http.Handler {
	wrapped := handler
	for i := len(middlewares) - 1; i >= 0; i-- {
		wrapped = middlewares[i](wrapped)
	}
	return wrapped
}

func joinPath(parts ...string) string {
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.Trim(part, "/")
		if trimmed != "" {
			segments = append(segments, trimmed)
		}
	}

	if len(segments) == 0 {
		return "/"
	}

	return "/" + strings.Join(segments, "/")
}

func normalizePath(path string) string {
	if path == "" {
		return "/"
	}
	return joinPath(path)
}
