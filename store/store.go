package store

import (
	"context"

	"github.com/dacapperclub/pickboard/models"
)

// ListWindow is the hard ceiling on rows returned by SelectPicks. There is no
// pagination cursor; callers never see rows beyond this window.
const ListWindow = 500

// PickStore is the gateway to the backing store. Callers treat every error as
// an opaque server-side failure: log it, answer with a generic 500.
type PickStore interface {
	// InsertPick persists a new pick. The store assigns ID and ReceivedAt.
	InsertPick(ctx context.Context, pick *models.Pick) error

	// SelectPicks returns up to ListWindow picks, received-time descending.
	SelectPicks(ctx context.Context) ([]models.Pick, error)

	// SelectHiddenIDs returns the full set of pick ids with an active hidden
	// mark. The overlay is a small control table; a full scan is fine.
	SelectHiddenIDs(ctx context.Context) (map[uint]struct{}, error)

	// UpsertHiddenMark creates or replaces the hidden mark for pickID.
	UpsertHiddenMark(ctx context.Context, pickID uint, actor, reason string) error

	// DeleteHiddenMark removes the hidden mark for pickID. Deleting a mark
	// that does not exist is not an error.
	DeleteHiddenMark(ctx context.Context, pickID uint) error
}
