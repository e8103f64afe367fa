package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/dacapperclub/pickboard/middleware"
	"github.com/dacapperclub/pickboard/models"
	"github.com/dacapperclub/pickboard/store"
	"github.com/dacapperclub/pickboard/utils"
)

const (
	publicPicksCacheKey = "cache:picks:public"
	publicPicksCacheTTL = time.Minute
)

// PickController serves the pick list and accepts submissions from the
// ingest bot.
type PickController struct {
	store store.PickStore
	mods  middleware.ModeratorSet
}

// NewPickController creates a new PickController instance.
func NewPickController(s store.PickStore, mods middleware.ModeratorSet) *PickController {
	return &PickController{store: s, mods: mods}
}

// projectedPick is a pick with the derived hidden flag attached. The flag is
// computed from overlay membership at read time, never stored on the pick.
type projectedPick struct {
	models.Pick
	Hidden bool `json:"hidden"`
}

// ListPicks returns the newest picks, received-time descending. Moderators
// get hidden picks included with hidden:true; everyone else never sees them.
func (p *PickController) ListPicks(ctx *gin.Context) {
	mod := p.mods.IsModerator(ctx)

	// Only the public projection is cacheable; the moderator view carries
	// overlay metadata and always hits the store.
	if !mod {
		if b, ok := utils.CacheGetBytes(publicPicksCacheKey); ok {
			ctx.Data(http.StatusOK, "application/json", b)
			return
		}
	}

	rctx := ctx.Request.Context()
	hiddenIDs, err := p.store.SelectHiddenIDs(rctx)
	if err != nil {
		utils.Sugar.Errorw("failed to load hidden pick ids", "err", err)
		utils.Fail(ctx, http.StatusInternalServerError, "failed to load picks")
		return
	}
	picks, err := p.store.SelectPicks(rctx)
	if err != nil {
		utils.Sugar.Errorw("failed to load picks", "err", err)
		utils.Fail(ctx, http.StatusInternalServerError, "failed to load picks")
		return
	}

	out := projectPicks(picks, hiddenIDs, mod)

	if !mod {
		if b, err := json.Marshal(out); err == nil {
			utils.CacheSetBytes(publicPicksCacheKey, b, publicPicksCacheTTL)
		}
	}
	ctx.JSON(http.StatusOK, out)
}

// projectPicks merges the pick list with the hidden-id set into the
// role-dependent view. Non-moderators never observe hidden picks, not even
// their existence; moderators get them flagged so UIs can render a hidden
// affordance.
func projectPicks(picks []models.Pick, hiddenIDs map[uint]struct{}, mod bool) []projectedPick {
	out := make([]projectedPick, 0, len(picks))
	for _, pick := range picks {
		_, hidden := hiddenIDs[pick.ID]
		if hidden && !mod {
			continue
		}
		out = append(out, projectedPick{Pick: pick, Hidden: hidden})
	}
	return out
}

// pickSubmission is the payload pushed by the forwarder bot. Attachments and
// embeds are opaque; the single authenticated producer is trusted for shape.
type pickSubmission struct {
	ChannelID   string         `json:"channelId"`
	ChannelName string         `json:"channelName"`
	AuthorID    string         `json:"authorId"`
	AuthorName  string         `json:"authorName"`
	Content     string         `json:"content"`
	Attachments datatypes.JSON `json:"attachments"`
	Embeds      datatypes.JSON `json:"embeds"`
	CreatedAt   string         `json:"createdAt"`
}

// CreatePick stores a submitted pick.
func (p *PickController) CreatePick(ctx *gin.Context) {
	var req pickSubmission
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid payload"})
		return
	}

	pick := models.Pick{
		ChannelID:   req.ChannelID,
		ChannelName: req.ChannelName,
		AuthorID:    req.AuthorID,
		AuthorName:  req.AuthorName,
		Content:     req.Content,
		Attachments: req.Attachments,
		Embeds:      req.Embeds,
		CreatedAt:   parseCreatedAt(req.CreatedAt),
	}

	if err := p.store.InsertPick(ctx.Request.Context(), &pick); err != nil {
		utils.Sugar.Errorw("failed to insert pick", "err", err, "channel", req.ChannelID)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false})
		return
	}

	utils.CacheInvalidate(publicPicksCacheKey)
	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

var createdAtLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// parseCreatedAt normalizes the producer-supplied timestamp to UTC. Absent or
// unparseable values become null; the store-assigned receipt time still
// orders the row.
func parseCreatedAt(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	for _, layout := range createdAtLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t
		}
	}
	utils.Sugar.Debugf("unparseable createdAt %q, storing null", raw)
	return nil
}
