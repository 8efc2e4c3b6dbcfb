package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/asset-management/internal/model"
	"github.com/iliyamo/asset-management/internal/queue"
	"github.com/iliyamo/asset-management/internal/repository"
	queue_publisher "github.com/iliyamo/asset-management/internal/service"
	"github.com/iliyamo/asset-management/internal/utils"
)

// RequestHandler converts a catalog browse action into a durable,
// moderatable inbox entry.  The asset lookup and the snapshot insert
// run in one transaction so a concurrent delete of the asset cannot
// produce a request for a row that no longer exists.
type RequestHandler struct {
	Assets *repository.AssetRepo
	Inbox  *repository.InboxRepo

	// publish emits the asset.requested event after commit.  Failures
	// are ignored by the caller; a broker outage must not fail the
	// request.  Swappable so tests run without a broker.
	publish func(context.Context, queue.AssetRequestedEvent) error
}

func NewRequestHandler(assets *repository.AssetRepo, inbox *repository.InboxRepo) *RequestHandler {
	if assets == nil || inbox == nil {
		panic("nil repository passed to NewRequestHandler")
	}
	return &RequestHandler{Assets: assets, Inbox: inbox, publish: queue_publisher.PublishAssetRequested}
}

type submitRequestReq struct {
	ID       uint64 `json:"id"` // asset id being requested
	UserName string `json:"userName"`
	DueDate  string `json:"dueDate"`
}

// Submit handles POST /api/requests.  The named asset's display fields
// (name, type, subcategory, image) are copied into a new inbox entry
// together with the requester and due date.  The snapshot carries no
// reference back to the asset: later catalog edits do not propagate.
// New entries are written as Available/Approved, matching the inbox
// schema which has no pending state.
func (h *RequestHandler) Submit(c echo.Context) error {
	var req submitRequestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.UserName = strings.TrimSpace(req.UserName)
	if req.ID == 0 || req.UserName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id and userName are required"})
	}
	dueDate, ok := utils.NormalizeDate(req.DueDate)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid dueDate"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	tx, err := h.Assets.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	snap, err := h.Assets.SnapshotTx(ctx, tx, req.ID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "asset not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	entry := model.InboxEntry{
		Image:        snap.Image,
		AssetName:    snap.Name,
		AssetType:    snap.TypeName,
		SubCategory:  snap.SubCategory,
		UserName:     req.UserName,
		DueDate:      dueDate,
		Availability: model.AvailabilityAvailable,
		Status:       model.StatusApproved,
	}
	if err := h.Inbox.CreateTx(ctx, tx, &entry); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create request failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	// Best effort: a broker outage must not fail the request.
	_ = h.publish(ctx, queue.AssetRequestedEvent{
		EntryID:     entry.ID,
		AssetName:   entry.AssetName,
		AssetType:   entry.AssetType,
		SubCategory: entry.SubCategory,
		RequestedBy: entry.UserName,
		DueDate:     entry.DueDate,
		RequestedAt: time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, entry)
}
