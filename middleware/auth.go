package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dacapperclub/pickboard/utils"
)

const (
	// HeaderIngestToken carries the shared ingest secret (set by the
	// forwarder bot).
	HeaderIngestToken = "X-Ingest-Token"
	// HeaderModToken carries a moderator token. It elevates GET /picks and
	// gates the /admin endpoints.
	HeaderModToken = "X-Mod-Token"
)

// IngestAuth gates the submission endpoint on the single shared ingest
// secret. If no secret is configured the gate fails closed: a 500 distinct
// from 401, so operators notice the misconfiguration instead of the bot
// retrying against a silently open endpoint.
func IngestAuth(expected string) gin.HandlerFunc {
	expected = strings.TrimSpace(expected)
	return func(ctx *gin.Context) {
		if expected == "" {
			utils.Sugar.Error("INGEST_TOKEN is not configured; rejecting submission")
			utils.Fail(ctx, http.StatusInternalServerError, "server misconfigured")
			ctx.Abort()
			return
		}

		token := strings.TrimSpace(ctx.GetHeader(HeaderIngestToken))
		if token == "" || token != expected {
			utils.Fail(ctx, http.StatusUnauthorized, "unauthorized")
			ctx.Abort()
			return
		}

		ctx.Next()
	}
}

// ModeratorSet is the flat set of moderator tokens, loaded once at startup
// and read-only thereafter.
type ModeratorSet map[string]struct{}

// NewModeratorSet builds the set from configured tokens, trimming entries and
// discarding empties.
func NewModeratorSet(tokens []string) ModeratorSet {
	set := make(ModeratorSet, len(tokens))
	for _, t := range tokens {
		if trimmed := strings.TrimSpace(t); trimmed != "" {
			set[trimmed] = struct{}{}
		}
	}
	return set
}

// Contains reports whether the trimmed token is a non-empty member of the set.
func (s ModeratorSet) Contains(token string) bool {
	token = strings.TrimSpace(token)
	if token == "" {
		return false
	}
	_, ok := s[token]
	return ok
}

// IsModerator reports whether the request carries a valid moderator token.
func (s ModeratorSet) IsModerator(ctx *gin.Context) bool {
	return s.Contains(ctx.GetHeader(HeaderModToken))
}

// ModeratorRequired rejects requests without a valid moderator token. The
// message never reveals which check failed.
func ModeratorRequired(set ModeratorSet) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !set.IsModerator(ctx) {
			utils.Fail(ctx, http.StatusUnauthorized, "unauthorized")
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}
