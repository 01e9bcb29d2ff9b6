package reqid_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheshine/backoffice/pkg/reqid"
)

func TestMiddlewareGeneratesID(t *testing.T) {
	var seen string
	h := reqid.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = reqid.FromCtx(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	_, err := uuid.Parse(seen)
	require.NoError(t, err)
	assert.Equal(t, seen, rec.Header().Get(reqid.Header))
}

func TestMiddlewareHonoursUpstreamID(t *testing.T) {
	var seen string
	h := reqid.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = reqid.FromCtx(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(reqid.Header, "gateway-42")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "gateway-42", seen)
}
