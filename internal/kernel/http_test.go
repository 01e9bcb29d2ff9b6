package kernel_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sheshine/backoffice/app/models"
	"github.com/sheshine/backoffice/app/services"
	"github.com/sheshine/backoffice/config"
	"github.com/sheshine/backoffice/internal/kernel"
	"github.com/sheshine/backoffice/pkg/auth"
	"github.com/sheshine/backoffice/pkg/event"
	"github.com/sheshine/backoffice/pkg/router"
	"github.com/sheshine/backoffice/pkg/storage"
	"github.com/sheshine/backoffice/pkg/testkit"
)

var ctx = context.Background()

type fixture struct {
	handler    http.Handler
	db         *gorm.DB
	adminToken string
	userToken  string
	category   models.Category
}

func setup(t *testing.T) fixture {
	t.Helper()
	config.Set("JWT_SECRET", "kernel-test")
	t.Cleanup(event.Flush)

	db := testkit.DB(t)
	disk := storage.NewLocalDisk(t.TempDir(), "http://cdn.test/storage")
	k, err := kernel.NewHTTPKernel(db, disk)
	require.NoError(t, err)

	users := services.NewUserService(db)
	profile := &services.ProfileInput{Address: "1 Main St", Dob: "1992-04-01"}
	admin, err := users.Create(ctx, services.UserInput{
		Name: "Admin", Email: "admin@sheshine.test", Password: "secret123", Role: models.RoleAdmin, Profile: profile,
	})
	require.NoError(t, err)
	buyer, err := users.Create(ctx, services.UserInput{
		Name: "Buyer", Email: "buyer@sheshine.test", Password: "secret123", Profile: profile,
	})
	require.NoError(t, err)

	category, err := services.NewCategoryService(db).Create(ctx, services.CategoryInput{Name: "Lips"})
	require.NoError(t, err)

	return fixture{
		handler:    k.Handler(),
		db:         db,
		adminToken: token(t, admin),
		userToken:  token(t, buyer),
		category:   category,
	}
}

func token(t *testing.T, u models.User) string {
	t.Helper()
	tok, err := auth.GenerateToken(u.ID, u.Role)
	require.NoError(t, err)
	return tok
}

func TestAPIScenarios(t *testing.T) {
	f := setup(t)

	testkit.RunDir(t, f.handler, "testdata", testkit.Vars{
		"adminToken": f.adminToken,
		"userToken":  f.userToken,
		"categoryId": fmt.Sprint(f.category.ID),
		"productId":  "1",
	})
}

func TestUnlabelledRouteIsAdminOnly(t *testing.T) {
	f := setup(t)

	r := router.New(kernel.Guard(services.NewAuthService(f.db).ResolveIdentity))
	r.Get("/internal", "internal", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := r.Handler()

	cases := []struct {
		name  string
		token string
		want  int
	}{
		{"anonymous", "", http.StatusUnauthorized},
		{"shopper", f.userToken, http.StatusForbidden},
		{"admin", f.adminToken, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/internal", nil)
			if tc.token != "" {
				req.Header.Set("Authorization", "Bearer "+tc.token)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestDemotedAdminLosesAccess(t *testing.T) {
	f := setup(t)

	require.NoError(t, f.db.Model(&models.User{}).Where("email = ?", "admin@sheshine.test").Update("role", models.RoleUser).Error)

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("Authorization", "Bearer "+f.adminToken)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestInactiveEmployeeLogin(t *testing.T) {
	f := setup(t)

	_, err := services.NewUserService(f.db).Create(ctx, services.UserInput{
		Name: "Staff", Email: "staff@sheshine.test", Password: "secret123", Role: models.RoleEmployee,
		Profile:  &services.ProfileInput{Address: "3 Shop St", Dob: "1995-02-02"},
		Employee: &services.EmployeeInput{DateOfHire: "2024-01-01", Salary: decimal.NewFromInt(2500)},
	})
	require.NoError(t, err)

	login := func() *httptest.ResponseRecorder {
		body := strings.NewReader(`{"email":"staff@sheshine.test","password":"secret123"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		f.handler.ServeHTTP(rec, req)
		return rec
	}

	rec := login()
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"isWorking":true`)

	require.NoError(t, f.db.Model(&models.Employee{}).Where("1 = 1").Update("is_working", false).Error)

	rec = login()
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.NotContains(t, rec.Body.String(), "token")
}

func TestUploadIsServedFromLocalDisk(t *testing.T) {
	f := setup(t)

	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("categoryName", "Lip Care"))
	fw, err := mw.CreateFormFile("categoryImage", "swatch.png")
	require.NoError(t, err)
	_, err = fw.Write(png)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload/categories", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+f.adminToken)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Data services.UploadResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, strings.HasPrefix(body.Data.PublicID, "ecommerce/categories/lip-care/category-"))

	get := httptest.NewRequest(http.MethodGet, strings.TrimPrefix(body.Data.ImageURL, "http://cdn.test"), nil)
	rec = httptest.NewRecorder()
	f.handler.ServeHTTP(rec, get)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, png, rec.Body.Bytes())
}

func TestUploadRejectsNonImage(t *testing.T) {
	f := setup(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("productImage", "notes.txt")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("plain text, not an image"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+f.adminToken)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Only image files are allowed")
}

func TestRouteTable(t *testing.T) {
	access := map[string]router.Access{}
	for _, ri := range kernel.RouteTable() {
		access[ri.Method+" "+ri.Path] = ri.Access
	}

	assert.Equal(t, router.Public, access["GET /api/products"])
	assert.Equal(t, router.Admin, access["POST /api/products"])
	assert.Equal(t, router.Public, access["GET /api/products/categories/tree"])
	assert.Equal(t, router.Admin, access["DELETE /api/products/variants/{id}"])
	assert.Equal(t, router.Authenticated, access["GET /api/auth/me"])
	assert.Equal(t, router.Admin, access["GET /api/users"])
	assert.Equal(t, router.Admin, access["POST /api/upload/variantImage"])
	assert.Equal(t, router.Public, access["GET /metrics"])
	assert.Contains(t, access, "GET /api/ws")
}
