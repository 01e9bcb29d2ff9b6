// Package routes declares the HTTP surface. Each route names its access
// level; a route registered without one is admin-only.
package routes

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/sheshine/backoffice/app/controllers"
	"github.com/sheshine/backoffice/app/services"
	"github.com/sheshine/backoffice/pkg/ctx"
	"github.com/sheshine/backoffice/pkg/router"
	"github.com/sheshine/backoffice/pkg/storage"
)

// Deps is what the route table is built from. Events may be nil.
type Deps struct {
	DB             *gorm.DB
	Disk           storage.Disk
	MaxUploadBytes int64
	Events         http.Handler
}

var h = ctx.Handle

func RegisterAPI(r *router.Router, d Deps) {
	api := r.Group("/api")

	health := services.NewHealthService(d.DB)
	api.Get("/health", "health", h(func(cx *ctx.Context) error {
		return cx.Success(health.Check(cx.Context()))
	}), router.Public)

	if d.Events != nil {
		api.Get("/ws", "events", d.Events.ServeHTTP, router.Public)
	}

	registerAuth(api, services.NewAuthService(d.DB))
	registerCatalog(api.Group("/products"), d.DB)
	registerAccounts(api, d.DB)
	registerUploads(api.Group("/upload"), services.NewUploadService(d.Disk, d.MaxUploadBytes))
}

func registerAuth(api *router.Group, svc *services.AuthService) {
	c := controllers.NewAuthController(svc)
	g := api.Group("/auth")
	g.Post("/login", "auth.login", h(c.Login), router.Public)
	g.Get("/me", "auth.me", h(c.Me), router.Authenticated)
}

// registerCatalog mounts static segments before {id} so "search",
// "categories" and friends are never read as ids.
func registerCatalog(products *router.Group, db *gorm.DB) {
	categories := controllers.NewCategoryController(services.NewCategoryService(db))
	cg := products.Group("/categories")
	cg.Get("/", "categories.index", h(categories.Index), router.Public)
	cg.Post("/", "categories.store", h(categories.Store))
	cg.Get("/tree", "categories.tree", h(categories.Tree), router.Public)
	cg.Get("/search", "categories.search", h(categories.Search), router.Public)
	cg.Get("/{id}", "categories.show", h(categories.Show), router.Public)
	cg.Put("/{id}", "categories.update", h(categories.Update))
	cg.Delete("/{id}", "categories.destroy", h(categories.Destroy))

	variants := controllers.NewVariantController(services.NewVariantService(db))
	vg := products.Group("/variants")
	vg.Get("/", "variants.index", h(variants.Index), router.Public)
	vg.Post("/", "variants.store", h(variants.Store))
	vg.Get("/search", "variants.search", h(variants.Search), router.Public)
	vg.Get("/product/{productId}", "variants.by_product", h(variants.ByProduct), router.Public)
	vg.Get("/{id}", "variants.show", h(variants.Show), router.Public)
	vg.Put("/{id}", "variants.update", h(variants.Update))
	vg.Delete("/{id}", "variants.destroy", h(variants.Destroy))

	p := controllers.NewProductController(services.NewProductService(db))
	products.Get("/", "products.index", h(p.Index), router.Public)
	products.Post("/", "products.store", h(p.Store))
	products.Get("/search", "products.search", h(p.Search), router.Public)
	products.Get("/category/{categoryId}", "products.by_category", h(p.ByCategory), router.Public)
	products.Get("/smiller/{categoryId}", "products.similar", h(p.Similar), router.Public)
	products.Get("/{id}", "products.show", h(p.Show), router.Public)
	products.Put("/{id}", "products.update", h(p.Update))
	products.Delete("/{id}", "products.destroy", h(p.Destroy))
}

// registerAccounts mounts the user, profile and employee endpoints. They
// are all admin-only, which is the default level.
func registerAccounts(api *router.Group, db *gorm.DB) {
	users := controllers.NewUserController(services.NewUserService(db))
	ug := api.Group("/users")
	ug.Get("/", "users.index", h(users.Index))
	ug.Post("/", "users.store", h(users.Store))
	ug.Get("/{id}", "users.show", h(users.Show))
	ug.Put("/{id}", "users.update", h(users.Update))
	ug.Delete("/{id}", "users.destroy", h(users.Destroy))

	profiles := controllers.NewProfileController(services.NewProfileService(db))
	pg := api.Group("/profiles")
	pg.Get("/", "profiles.index", h(profiles.Index))
	pg.Get("/{id}", "profiles.show", h(profiles.Show))
	pg.Put("/{id}", "profiles.update", h(profiles.Update))
	pg.Delete("/{id}", "profiles.destroy", h(profiles.Destroy))

	employees := controllers.NewEmployeeController(services.NewEmployeeService(db))
	eg := api.Group("/employees")
	eg.Get("/", "employees.index", h(employees.Index))
	eg.Post("/", "employees.store", h(employees.Store))
	eg.Get("/{id}", "employees.show", h(employees.Show))
	eg.Put("/{id}", "employees.update", h(employees.Update))
	eg.Delete("/{id}", "employees.destroy", h(employees.Destroy))
}

func registerUploads(g *router.Group, svc *services.UploadService) {
	c := controllers.NewUploadController(svc)
	g.Post("/", "upload.product", h(c.Handler(services.ProductImage)))
	g.Post("/categories", "upload.category", h(c.Handler(services.CategoryImage)))
	g.Post("/variantImage", "upload.variant", h(c.Handler(services.VariantImage)))
}
