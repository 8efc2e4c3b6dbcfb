package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/asset-management/internal/repository"
)

// ReferenceHandler serves the static reference data behind the forms:
// asset types, per-type subcategories and the role list.
type ReferenceHandler struct {
	Taxonomy *repository.TaxonomyRepo
}

func NewReferenceHandler(taxonomy *repository.TaxonomyRepo) *ReferenceHandler {
	if taxonomy == nil {
		panic("nil repository passed to NewReferenceHandler")
	}
	return &ReferenceHandler{Taxonomy: taxonomy}
}

// Types handles GET /api/types.
func (h *ReferenceHandler) Types(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	types, err := h.Taxonomy.ListTypes(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch types"})
	}
	return c.JSON(http.StatusOK, types)
}

// SubcategoriesByType handles GET /api/subcategories/:typeId.
func (h *ReferenceHandler) SubcategoriesByType(c echo.Context) error {
	typeID, ok := pathID(c, "typeId")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid typeId"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	subs, err := h.Taxonomy.ListSubcategoriesByType(ctx, typeID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch subcategories"})
	}
	return c.JSON(http.StatusOK, subs)
}

// Roles handles GET /api/roles.
func (h *ReferenceHandler) Roles(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	roles, err := h.Taxonomy.ListRoles(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch roles"})
	}
	return c.JSON(http.StatusOK, roles)
}
