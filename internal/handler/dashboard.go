package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/asset-management/internal/repository"
)

// DashboardHandler serves the aggregate projections behind the charts.
// Each endpoint is one GROUP BY query recomputed per request; the
// response cache in front of these routes absorbs repeated loads.
type DashboardHandler struct {
	Assets *repository.AssetRepo
}

func NewDashboardHandler(assets *repository.AssetRepo) *DashboardHandler {
	if assets == nil {
		panic("nil repository passed to NewDashboardHandler")
	}
	return &DashboardHandler{Assets: assets}
}

// BySubcategory handles GET /api/assets/subcategories.
func (h *DashboardHandler) BySubcategory(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	buckets, err := h.Assets.CountBySubcategory(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, buckets)
}

// ByOwner handles GET /api/assets/users.
func (h *DashboardHandler) ByOwner(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	buckets, err := h.Assets.CountByOwner(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, buckets)
}

// ByAssignedMonth handles GET /api/assets/assignedDate.
func (h *DashboardHandler) ByAssignedMonth(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	buckets, err := h.Assets.CountByAssignedMonth(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, buckets)
}
