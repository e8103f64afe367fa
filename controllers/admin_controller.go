package controllers

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dacapperclub/pickboard/store"
	"github.com/dacapperclub/pickboard/utils"
)

const (
	// hiddenByActor is the fixed actor label stamped on hide marks. Moderator
	// tokens carry no per-token identity to record instead.
	hiddenByActor = "moderator"
	maxReasonLen  = 300
)

// AdminController handles the hide/unhide moderation mutations. The routes
// are gated by ModeratorRequired before these handlers run.
type AdminController struct {
	store store.PickStore
}

// NewAdminController creates a new AdminController instance.
func NewAdminController(s store.PickStore) *AdminController {
	return &AdminController{store: s}
}

type hideRequest struct {
	ID     any    `json:"id"`
	Reason string `json:"reason"`
}

// Hide upserts the hidden mark for a pick. A second hide replaces the reason
// rather than duplicating the mark. Hiding an id with no matching pick is a
// store-level no-op and still succeeds.
func (a *AdminController) Hide(ctx *gin.Context) {
	var req hideRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Fail(ctx, http.StatusBadRequest, "invalid request payload")
		return
	}

	id, ok := coercePickID(req.ID)
	if !ok {
		utils.Fail(ctx, http.StatusBadRequest, "missing or invalid pick id")
		return
	}

	reason := truncateReason(req.Reason)
	if err := a.store.UpsertHiddenMark(ctx.Request.Context(), id, hiddenByActor, reason); err != nil {
		utils.Sugar.Errorw("failed to hide pick", "err", err, "pick_id", id)
		utils.Fail(ctx, http.StatusInternalServerError, "failed to hide pick")
		return
	}

	utils.CacheInvalidate(publicPicksCacheKey)
	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}

// Unhide deletes the hidden mark for a pick. Idempotent: unhiding a pick with
// no mark succeeds.
func (a *AdminController) Unhide(ctx *gin.Context) {
	var req hideRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Fail(ctx, http.StatusBadRequest, "invalid request payload")
		return
	}

	id, ok := coercePickID(req.ID)
	if !ok {
		utils.Fail(ctx, http.StatusBadRequest, "missing or invalid pick id")
		return
	}

	if err := a.store.DeleteHiddenMark(ctx.Request.Context(), id); err != nil {
		utils.Sugar.Errorw("failed to unhide pick", "err", err, "pick_id", id)
		utils.Fail(ctx, http.StatusInternalServerError, "failed to unhide pick")
		return
	}

	utils.CacheInvalidate(publicPicksCacheKey)
	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}

// coercePickID accepts a JSON number or numeric string and coerces it to a
// pick id. Anything non-numeric, non-finite, fractional or negative is a
// validation error and never reaches the store.
func coercePickID(v any) (uint, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f != math.Trunc(f) {
		return 0, false
	}
	return uint(f), true
}

// truncateReason caps the reason at maxReasonLen characters without splitting
// a multi-byte character.
func truncateReason(reason string) string {
	runes := []rune(reason)
	if len(runes) <= maxReasonLen {
		return reason
	}
	return string(runes[:maxReasonLen])
}
