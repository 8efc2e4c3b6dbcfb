package handler

import (
	"database/sql"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/asset-management/internal/repository"
)

// InboxHandler exposes the moderation inbox to store managers and
// admins: the full listing and the availability/status update.
type InboxHandler struct {
	Inbox *repository.InboxRepo
}

func NewInboxHandler(inbox *repository.InboxRepo) *InboxHandler {
	if inbox == nil {
		panic("nil repository passed to NewInboxHandler")
	}
	return &InboxHandler{Inbox: inbox}
}

type inboxUpdateReq struct {
	// Pointers distinguish "field absent" from "field set to empty";
	// only present fields are written.
	Availability *string `json:"availability"`
	Status       *string `json:"status"`
}

// List handles GET /api/inbox.
func (h *InboxHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	entries, err := h.Inbox.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, entries)
}

// Update handles PUT /api/inbox/:id.  Partial update: unspecified
// fields retain their prior values.  The stored values are not checked
// against the enumerated sets; the UI constrains the choices.
func (h *InboxHandler) Update(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req inboxUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	entry, err := h.Inbox.UpdatePartial(ctx, id, req.Availability, req.Status)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "request not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, entry)
}
