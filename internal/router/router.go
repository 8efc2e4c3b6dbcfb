// Package router defines how HTTP routes are registered for the API.
// Role gating happens here, server-side: every protected route names
// the role set allowed to reach it, enforced by middleware on each
// request rather than by client-held state.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/asset-management/internal/handler"
	"github.com/iliyamo/asset-management/internal/middleware"
	"github.com/iliyamo/asset-management/internal/model"
)

// API bundles the handlers wired by RegisterAPI.
type API struct {
	Auth      *handler.AuthHandler
	Users     *handler.UserHandler
	Assets    *handler.AssetHandler
	Dashboard *handler.DashboardHandler
	Requests  *handler.RequestHandler
	Inbox     *handler.InboxHandler
	Reference *handler.ReferenceHandler
}

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check; the image directory is
// mounted by main since it owns the configured path.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAPI registers the full API surface.  The identity endpoints
// are public (the login route carries the rate limiter); everything
// else sits behind JWT validation plus a per-route role check.  The
// cache middleware wraps the read-heavy listing and dashboard routes.
func RegisterAPI(e *echo.Echo, api API, jwtSecret string, rateLimit, cache echo.MiddlewareFunc) {
	// Unauthenticated identity operations.
	e.POST("/api/authenticate", api.Auth.Authenticate, rateLimit)
	e.POST("/api/refresh", api.Auth.Refresh)
	e.POST("/api/logout", api.Auth.Logout)

	// Everything below requires a valid access token.
	g := e.Group("/api", middleware.JWTAuth(jwtSecret))

	anyRole := middleware.RequireRole(model.RoleAdmin, model.RoleStoreManager, model.RoleUser)
	managers := middleware.RequireRole(model.RoleAdmin, model.RoleStoreManager)
	adminOnly := middleware.RequireRole(model.RoleAdmin)

	// Browse surface reachable by every role: the search view, the
	// reference data behind its filters, the my-assets view and
	// request submission.
	g.GET("/me", api.Auth.Me, anyRole)
	g.GET("/assets", api.Assets.List, anyRole, cache)
	g.GET("/assets/username/:username", api.Assets.ListByOwner, anyRole)
	g.GET("/types", api.Reference.Types, anyRole)
	g.GET("/subcategories/:typeId", api.Reference.SubcategoriesByType, anyRole)
	g.POST("/requests", api.Requests.Submit, anyRole)

	// Store managers and admins: catalog mutation, moderation inbox,
	// dashboard aggregates.
	g.POST("/assets", api.Assets.Create, managers)
	g.DELETE("/assets/:id", api.Assets.Delete, managers)
	g.GET("/inbox", api.Inbox.List, managers, cache)
	g.PUT("/inbox/:id", api.Inbox.Update, managers)
	g.GET("/assets/subcategories", api.Dashboard.BySubcategory, managers, cache)
	g.GET("/assets/users", api.Dashboard.ByOwner, managers, cache)
	g.GET("/assets/assignedDate", api.Dashboard.ByAssignedMonth, managers, cache)

	// Admin-only user management and reference admin data.
	g.GET("/users", api.Users.List, adminOnly)
	g.POST("/users", api.Users.Create, adminOnly)
	g.PUT("/users/:id", api.Users.Update, adminOnly)
	g.DELETE("/users/:id", api.Users.Delete, adminOnly)
	g.GET("/usernames", api.Users.Usernames, adminOnly)
	g.GET("/roles", api.Reference.Roles, adminOnly)
}
