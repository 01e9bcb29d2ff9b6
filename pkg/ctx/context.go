// Package ctx provides a request context for handlers.
//
// Instead of accepting (http.ResponseWriter, *http.Request), a handler
// receives a single *Context and returns an error. Handle maps the error
// onto the JSON envelope, so handlers only deal with the happy path:
//
//	func (c *ProductController) Show(cx *ctx.Context) error {
//	    id, err := cx.ParamID("id")
//	    if err != nil {
//	        return err
//	    }
//	    p, err := c.service.Get(cx.Context(), id)
//	    if err != nil {
//	        return err
//	    }
//	    return cx.Success(p)
//	}
//
//	router.Get("/products/{id}", "products.show", ctx.Handle(pc.Show), router.Public)
package ctx

import (
	"context"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/sheshine/backoffice/pkg/auth"
	"github.com/sheshine/backoffice/pkg/bind"
	"github.com/sheshine/backoffice/pkg/errs"
	"github.com/sheshine/backoffice/pkg/logger"
	"github.com/sheshine/backoffice/pkg/response"
)

// HandlerFunc is the context-aware handler signature.
type HandlerFunc func(c *Context)

// ErrorHandlerFunc is a handler that reports failure by returning an error.
type ErrorHandlerFunc func(c *Context) error

// Wrap converts a HandlerFunc to a standard http.HandlerFunc.
func Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := acquire(w, r)
		defer release(c)
		h(c)
	}
}

// Handle converts an ErrorHandlerFunc to an http.HandlerFunc. A returned
// error is classified with errs.From and written as the JSON envelope;
// internal causes are logged and replaced by a generic message.
func Handle(h ErrorHandlerFunc) http.HandlerFunc {
	return Wrap(func(c *Context) {
		if err := h(c); err != nil {
			c.Fail(err)
		}
	})
}

// ─── Context ──────────────────────────────────────────────────────────────────

// Context wraps a request/response pair.
type Context struct {
	W http.ResponseWriter
	R *http.Request
}

var pool = sync.Pool{
	New: func() any { return &Context{} },
}

func acquire(w http.ResponseWriter, r *http.Request) *Context {
	c := pool.Get().(*Context)
	c.W = w
	c.R = r
	return c
}

func release(c *Context) {
	c.W = nil
	c.R = nil
	pool.Put(c)
}

// ─── Request helpers ──────────────────────────────────────────────────────────

// Param returns a URL path parameter.
func (c *Context) Param(key string) string {
	return chi.URLParam(c.R, key)
}

// ParamID parses a numeric path parameter. Anything that is not a positive
// integer cannot name a row, so it is reported as NotFound.
func (c *Context) ParamID(key string) (uint, error) {
	n, err := strconv.ParseUint(c.Param(key), 10, 64)
	if err != nil || n == 0 {
		return 0, errs.NotFound("Resource not found")
	}
	return uint(n), nil
}

// Query returns a query-string value. Returns "" if not present.
func (c *Context) Query(key string) string {
	return c.R.URL.Query().Get(key)
}

// Context returns the underlying request context.
func (c *Context) Context() context.Context { return c.R.Context() }

// Identity returns the authenticated caller attached by the auth gate.
func (c *Context) Identity() (auth.Identity, bool) {
	return auth.FromContext(c.R.Context())
}

// BindJSON decodes the JSON body into dest and validates it. Decode and
// rule failures both come back as a Validation error.
func (c *Context) BindJSON(dest any) error {
	fields, err := bind.JSON(c.R, dest)
	if err != nil {
		return errs.Validation(err.Error(), nil)
	}
	if len(fields) > 0 {
		return errs.Validation("Validation failed", fields)
	}
	return nil
}

// ─── Response helpers ─────────────────────────────────────────────────────────

// JSON writes a raw envelope with the given status code.
func (c *Context) JSON(code int, body response.Envelope) error {
	response.Write(c.W, code, body)
	return nil
}

// Success sends a 200 envelope with data.
func (c *Context) Success(data any) error {
	return c.JSON(http.StatusOK, response.Envelope{Status: http.StatusOK, Data: data})
}

// Created sends a 201 envelope with data.
func (c *Context) Created(data any) error {
	return c.JSON(http.StatusCreated, response.Envelope{Status: http.StatusCreated, Data: data})
}

// Message sends a 200 envelope carrying a message and optional data.
func (c *Context) Message(message string, data any) error {
	return c.JSON(http.StatusOK, response.Envelope{Status: http.StatusOK, Message: message, Data: data})
}

// NoContent sends an empty 204.
func (c *Context) NoContent() error {
	response.NoContent(c.W)
	return nil
}

// Fail writes err as an error envelope.
func (c *Context) Fail(err error) {
	e := errs.From(err)
	status := e.Kind.Status()

	if e.Kind == errs.KindInternal {
		logger.WithCtx(c.Context()).Error("request failed",
			"method", c.R.Method,
			"path", c.R.URL.Path,
			"error", e.Err,
		)
	}

	body := response.Envelope{Status: status, Message: e.Message}
	if len(e.Fields) > 0 {
		body.Errors = e.Fields
	}
	c.JSON(status, body) //nolint:errcheck
}
