package handler

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/asset-management/internal/model"
	"github.com/iliyamo/asset-management/internal/repository"
	"github.com/iliyamo/asset-management/internal/storage"
	"github.com/iliyamo/asset-management/internal/utils"
)

// AssetHandler implements the catalog endpoints: the joined listing for
// the management grid and search view, multipart creation with image
// upload, hard deletion and the per-owner listing.
type AssetHandler struct {
	Assets *repository.AssetRepo
	Images *storage.ImageStore
}

func NewAssetHandler(assets *repository.AssetRepo, images *storage.ImageStore) *AssetHandler {
	if assets == nil || images == nil {
		panic("nil dependency passed to NewAssetHandler")
	}
	return &AssetHandler{Assets: assets, Images: images}
}

// List handles GET /api/assets.
func (h *AssetHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	assets, err := h.Assets.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, assets)
}

// ListByOwner handles GET /api/assets/username/:username for the
// "My Assets" view.
func (h *AssetHandler) ListByOwner(c echo.Context) error {
	username := strings.TrimSpace(c.Param("username"))
	if username == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid username"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	assets, err := h.Assets.ListByOwner(ctx, username)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, assets)
}

// Create handles POST /api/assets.  The body is multipart form data:
// scalar fields plus an optional image file.  Dates are normalized to
// YYYY-MM-DD before storage; time of day and timezone are discarded.
func (h *AssetHandler) Create(c echo.Context) error {
	name := strings.TrimSpace(c.FormValue("name"))
	userName := strings.TrimSpace(c.FormValue("userName"))
	typeID, err1 := strconv.ParseUint(c.FormValue("typeId"), 10, 64)
	subID, err2 := strconv.ParseUint(c.FormValue("subCategoryId"), 10, 64)
	if name == "" || userName == "" || err1 != nil || err2 != nil || typeID == 0 || subID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, typeId, subCategoryId and userName are required"})
	}

	unitPrice, err := strconv.ParseFloat(c.FormValue("unitPrice"), 64)
	if err != nil || unitPrice < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid unitPrice"})
	}

	dueDate, ok1 := utils.NormalizeDate(c.FormValue("dueDate"))
	assignedDate, ok2 := utils.NormalizeDate(c.FormValue("assignedDate"))
	purchaseDate, ok3 := utils.NormalizeDate(c.FormValue("dateOfPurchase"))
	if !ok1 || !ok2 || !ok3 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date"})
	}

	// The image is optional; an asset without one renders a placeholder.
	imagePath := ""
	if fh, err := c.FormFile("image"); err == nil && fh != nil {
		src, err := fh.Open()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "read upload failed"})
		}
		defer src.Close()
		imagePath, err = h.Images.Save(fh.Filename, src)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store image failed"})
		}
	}

	asset := model.Asset{
		Name:          name,
		TypeID:        typeID,
		SubcategoryID: subID,
		Username:      userName,
		UnitPrice:     unitPrice,
		DueDate:       dueDate,
		AssignedDate:  assignedDate,
		PurchaseDate:  purchaseDate,
		Description:   c.FormValue("description"),
		Image:         imagePath,
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Assets.Create(ctx, &asset); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create asset failed"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"id":             asset.ID,
		"name":           asset.Name,
		"typeId":         asset.TypeID,
		"subCategoryId":  asset.SubcategoryID,
		"userName":       asset.Username,
		"unitPrice":      asset.UnitPrice,
		"dueDate":        asset.DueDate,
		"assignedDate":   asset.AssignedDate,
		"dateOfPurchase": asset.PurchaseDate,
		"description":    asset.Description,
		"image":          asset.Image,
	})
}

// Delete handles DELETE /api/assets/:id.  Returns 404 when no row was
// deleted.  Inbox snapshots taken from the asset remain untouched.
func (h *AssetHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Assets.Delete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "asset not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
