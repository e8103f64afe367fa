package store

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dacapperclub/pickboard/models"
)

// GormStore implements PickStore on a GORM connection.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a GormStore instance.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) InsertPick(ctx context.Context, pick *models.Pick) error {
	return s.db.WithContext(ctx).Create(pick).Error
}

func (s *GormStore) SelectPicks(ctx context.Context) ([]models.Pick, error) {
	var picks []models.Pick
	err := s.db.WithContext(ctx).
		Order("received_at DESC, id DESC").
		Limit(ListWindow).
		Find(&picks).Error
	if err != nil {
		return nil, err
	}
	return picks, nil
}

func (s *GormStore) SelectHiddenIDs(ctx context.Context) (map[uint]struct{}, error) {
	var ids []uint
	err := s.db.WithContext(ctx).
		Model(&models.HiddenPick{}).
		Pluck("pick_id", &ids).Error
	if err != nil {
		return nil, err
	}
	set := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

func (s *GormStore) UpsertHiddenMark(ctx context.Context, pickID uint, actor, reason string) error {
	mark := models.HiddenPick{
		PickID:   pickID,
		HiddenBy: actor,
		Reason:   reason,
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "pick_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"hidden_by", "reason", "updated_at"}),
		}).
		Create(&mark).Error
}

func (s *GormStore) DeleteHiddenMark(ctx context.Context, pickID uint) error {
	// RowsAffected == 0 is fine, unhide is idempotent.
	return s.db.WithContext(ctx).
		Where("pick_id = ?", pickID).
		Delete(&models.HiddenPick{}).Error
}
