package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"boothtrack.in/internal/api/middleware"
	"boothtrack.in/internal/auth"
	"boothtrack.in/internal/config"
	"boothtrack.in/internal/domain"
	"boothtrack.in/internal/infra"
	"boothtrack.in/internal/service"
)

// Router wires services, authorization and routes onto the fiber app.
type Router struct {
	app *fiber.App
	cfg *config.Config
	db  *gorm.DB
	rdb *redis.Client // may be nil
	hub *infra.WsHub  // may be nil (no live feed)
}

func NewRouter(app *fiber.App, cfg *config.Config, db *gorm.DB, rdb *redis.Client, hub *infra.WsHub) *Router {
	return &Router{
		app: app,
		cfg: cfg,
		db:  db,
		rdb: rdb,
		hub: hub,
	}
}

// RegisterRoutes builds the services and registers all business routes.
func (r *Router) RegisterRoutes() error {
	// 1. Authorization
	enforcer, err := auth.InitCasbin(r.db)
	if err != nil {
		return err
	}

	// 2. Services
	var notifier domain.Notifier
	if r.hub != nil {
		notifier = infra.NewLocationNotifier(r.hub, r.rdb)
	}
	authSvc := service.NewAuthService(r.db, infra.NewTokenCache(r.rdb))
	directorySvc := service.NewDirectoryService(r.db)
	locationSvc := service.NewLocationService(r.db, notifier)
	adminSvc := service.NewAdminService(r.db)

	// 3. Handlers
	authHandler := NewAuthHandler(authSvc)
	employeeHandler := NewEmployeeHandler(directorySvc)
	locationHandler := NewLocationHandler(locationSvc)
	adminHandler := NewAdminHandler(adminSvc)

	// 4. Live location feed (public, no token required)
	if r.hub != nil {
		InitWebsocket(r.app, r.hub)
	}

	// 5. Public routes
	api := r.app.Group("/api")
	api.Post("/auth/login", authHandler.Login)
	api.Post("/auth/mobile-login", authHandler.MobileLogin)

	employees := api.Group("/employees")
	employees.Get("/", employeeHandler.ListEmployees)
	// Static paths are registered before the :emp_id parameter routes.
	employees.Get("/wards", employeeHandler.ListWards)
	employees.Get("/stats/dashboard", employeeHandler.DashboardStats)
	employees.Get("/mobile/:mobile_number", employeeHandler.GetEmployeeByMobile)
	employees.Get("/:emp_id", employeeHandler.GetEmployee)
	employees.Get("/:emp_id/location-updates", locationHandler.ListLocationUpdates)

	// 6. Protected routes (bearer token + Casbin). Registered after all
	// public routes: the group middleware matches the whole /api prefix,
	// and fiber walks the stack in registration order.
	protected := api.Group("", middleware.TokenAuth(authSvc, enforcer))
	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/auth/profile", authHandler.Profile)
	protected.Post("/employees/location-updates/create", locationHandler.CreateLocationUpdate)

	admin := protected.Group("/admin")
	admin.Post("/employees", adminHandler.CreateEmployee)
	admin.Put("/employees/:emp_id", adminHandler.UpdateEmployee)
	admin.Delete("/employees/:emp_id", adminHandler.DeleteEmployee)
	admin.Delete("/location-updates/:id", adminHandler.DeleteLocationUpdate)
	admin.Post("/users", adminHandler.CreateUser)

	return nil
}
