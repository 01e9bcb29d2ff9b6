package ctx_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	appctx "github.com/sheshine/backoffice/pkg/ctx"
	"github.com/sheshine/backoffice/pkg/errs"
)

type envelope struct {
	Status  int               `json:"status"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("invalid JSON body %q: %v", rec.Body.String(), err)
	}
	return env
}

func TestSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	appctx.Handle(func(c *appctx.Context) error {
		return c.Success(map[string]any{"id": 1})
	})(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if env := decode(t, rec); string(env.Data) != `{"id":1}` {
		t.Errorf("unexpected data: %s", env.Data)
	}
}

func TestBindJSONValid(t *testing.T) {
	rec := httptest.NewRecorder()
	body := `{"name":"John","email":"john@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))

	appctx.Handle(func(c *appctx.Context) error {
		var input struct {
			Name  string `json:"name"  validate:"required"`
			Email string `json:"email" validate:"required,email"`
		}
		if err := c.BindJSON(&input); err != nil {
			return err
		}
		if input.Name != "John" {
			t.Errorf("expected John, got %s", input.Name)
		}
		return c.Created(nil)
	})(rec, req)

	if rec.Code != http.StatusCreated {
		t.Errorf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
}

func TestBindJSONInvalidFields(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":""}`))

	appctx.Handle(func(c *appctx.Context) error {
		var input struct {
			Name string `json:"name" validate:"required"`
		}
		return c.BindJSON(&input)
	})(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d (body: %s)", rec.Code, rec.Body.String())
	}
	if env := decode(t, rec); env.Errors["name"] != "is required" {
		t.Errorf("unexpected errors: %v", env.Errors)
	}
}

func TestBindJSONMalformed(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))

	appctx.Handle(func(c *appctx.Context) error {
		var input struct{ Name string }
		return c.BindJSON(&input)
	})(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestParamIDInvalidIsNotFound(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/items/{id}", appctx.Handle(func(c *appctx.Context) error {
		id, err := c.ParamID("id")
		if err != nil {
			return err
		}
		return c.Success(id)
	}))

	for path, want := range map[string]int{
		"/items/7":   http.StatusOK,
		"/items/abc": http.StatusNotFound,
		"/items/0":   http.StatusNotFound,
		"/items/-3":  http.StatusNotFound,
	} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != want {
			t.Errorf("%s: expected %d, got %d", path, want, rec.Code)
		}
	}
}

func TestHandleMapsErrorKinds(t *testing.T) {
	cases := map[error]int{
		errs.NotFound("Product not found"):         http.StatusNotFound,
		errs.Forbidden("nope"):                     http.StatusForbidden,
		errs.Unauthorized("Invalid token"):         http.StatusUnauthorized,
		errs.Duplicate("Email already registered"): http.StatusConflict,
		errors.New("database is on fire"):          http.StatusInternalServerError,
	}

	for err, want := range cases {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		appctx.Handle(func(c *appctx.Context) error { return err })(rec, req)

		if rec.Code != want {
			t.Errorf("%v: expected %d, got %d", err, want, rec.Code)
		}
	}
}

func TestInternalErrorHidesCause(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	appctx.Handle(func(c *appctx.Context) error {
		return errors.New("dial tcp 10.0.0.5:5432: refused")
	})(rec, req)

	env := decode(t, rec)
	if env.Message != "Internal Server Error" {
		t.Errorf("unexpected message %q", env.Message)
	}
}
