// Package kernel assembles the HTTP handler: global middleware, the access
// guard, the route table and the catalog event hub.
package kernel

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/sheshine/backoffice/app/routes"
	"github.com/sheshine/backoffice/app/services"
	"github.com/sheshine/backoffice/config"
	"github.com/sheshine/backoffice/pkg/cache"
	"github.com/sheshine/backoffice/pkg/metrics"
	"github.com/sheshine/backoffice/pkg/middleware"
	"github.com/sheshine/backoffice/pkg/rbac"
	"github.com/sheshine/backoffice/pkg/reqid"
	"github.com/sheshine/backoffice/pkg/response"
	"github.com/sheshine/backoffice/pkg/router"
	"github.com/sheshine/backoffice/pkg/storage"
	"github.com/sheshine/backoffice/pkg/ws"
)

// HTTPKernel owns the router and the WebSocket hub. Run the hub with
// Hub().Run before serving.
type HTTPKernel struct {
	router *router.Router
	hub    *ws.Hub
}

// Guard enforces access levels. Admin routes resolve the caller against
// the database, so a demoted or deleted admin is refused at once.
func Guard(resolve middleware.IdentityResolver) router.Guard {
	protect := middleware.Protect(resolve)
	return func(a router.Access) []router.Middleware {
		switch a {
		case router.Public:
			return nil
		case router.Authenticated:
			return []router.Middleware{protect}
		default:
			return []router.Middleware{protect, rbac.Admin()}
		}
	}
}

func NewHTTPKernel(db *gorm.DB, disk storage.Disk) (*HTTPKernel, error) {
	auth := services.NewAuthService(db)
	r := router.New(Guard(auth.ResolveIdentity))

	limit, err := middleware.RateLimit(config.RateLimit(), cache.RDB, config.TrustProxy())
	if err != nil {
		return nil, err
	}

	// outermost first
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions(config.CORSAllowedOrigins())))
	r.Use(limit)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	hub := ws.NewHub(config.CORSAllowedOrigins()...)
	services.ListenCatalogEvents(hub)
	mount(r, db, disk, hub)

	return &HTTPKernel{router: r, hub: hub}, nil
}

// mount registers every endpoint on r.
func mount(r *router.Router, db *gorm.DB, disk storage.Disk, events http.Handler) {
	r.Get("/metrics", "metrics", metrics.Handler(), router.Public)
	if local, ok := disk.(*storage.LocalDisk); ok {
		files := http.StripPrefix("/storage/", http.FileServer(http.Dir(local.Root())))
		r.Get("/storage/*", "storage", files.ServeHTTP, router.Public)
	}

	routes.RegisterAPI(r, routes.Deps{
		DB:             db,
		Disk:           disk,
		MaxUploadBytes: config.MaxUploadBytes(),
		Events:         events,
	})
}

// RouteTable lists the routes the server mounts without connecting to
// anything.
func RouteTable() []router.RouteInfo {
	r := router.New(nil)
	mount(r, nil, storage.NewLocalDisk(config.StorageLocalRoot(), config.StorageURL()), http.NotFoundHandler())
	return r.Routes()
}

func (k *HTTPKernel) Handler() http.Handler { return k.router.Handler() }

func (k *HTTPKernel) Hub() *ws.Hub { return k.hub }

// Routes lists the registered routes.
func (k *HTTPKernel) Routes() []router.RouteInfo { return k.router.Routes() }
