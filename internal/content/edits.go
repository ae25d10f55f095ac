package content

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mhndckngyn/askdev-api/internal/apperror"
	"github.com/mhndckngyn/askdev-api/internal/models"
)

// snapshot records the pre-edit state of a content item, including its
// current image set, keyed by the UpdatedAt the live record carried before
// the edit. Called inside the update transaction.
func (s *Service) snapshot(tx *gorm.DB, kind models.ContentType, contentID int, prevTitle, prevContent string, editedAt time.Time) error {
	snap := models.EditSnapshot{
		ContentType:     kind,
		ContentID:       contentID,
		PreviousTitle:   prevTitle,
		PreviousContent: prevContent,
		EditedAt:        editedAt,
	}
	if err := tx.Create(&snap).Error; err != nil {
		return err
	}

	var images []models.ContentImage
	if err := tx.Where("content_type = ? AND content_id = ?", kind, contentID).Find(&images).Error; err != nil {
		return err
	}
	for _, img := range images {
		if err := tx.Create(&models.SnapshotImage{SnapshotID: snap.ID, URL: img.URL}).Error; err != nil {
			return err
		}
	}
	return nil
}

// deleteSnapshots removes every snapshot for a content item together with
// the snapshot images, so deleting the item leaves no orphaned history.
func deleteSnapshots(tx *gorm.DB, kind models.ContentType, contentID int) error {
	var snapIDs []int
	if err := tx.Model(&models.EditSnapshot{}).
		Where("content_type = ? AND content_id = ?", kind, contentID).
		Pluck("id", &snapIDs).Error; err != nil {
		return err
	}
	if len(snapIDs) > 0 {
		if err := tx.Where("snapshot_id IN ?", snapIDs).Delete(&models.SnapshotImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id IN ?", snapIDs).Delete(&models.EditSnapshot{}).Error; err != nil {
			return err
		}
	}
	return nil
}

// EditHistory walks a content item's edit chain. direction -1 returns the
// most recent snapshot strictly older than ref; direction +1 returns the
// snapshot immediately newer, falling back to the live record when none
// exists. A nil snapshot without error means there is nothing older.
func (s *Service) EditHistory(kind models.ContentType, contentID int, ref time.Time, direction int) (*models.EditSnapshot, error) {
	if direction != 1 && direction != -1 {
		return nil, apperror.BadRequest("edit-history.invalid-direction")
	}

	item, err := s.loadInfo(s.db, kind, contentID)
	if err != nil {
		return nil, err
	}

	var snap models.EditSnapshot
	q := s.db.Preload("Images").Where("content_type = ? AND content_id = ?", kind, contentID)

	if direction == -1 {
		err = q.Where("edited_at < ?", ref).Order("edited_at desc").First(&snap).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return &snap, nil
	}

	err = q.Where("edited_at > ?", ref).Order("edited_at asc").First(&snap).Error
	if err == nil {
		return &snap, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// no newer snapshot: the live record is the terminal "newest" state
	live := models.EditSnapshot{
		ContentType:     kind,
		ContentID:       contentID,
		PreviousTitle:   item.Title,
		PreviousContent: item.Content,
		EditedAt:        item.UpdatedAt,
	}
	if kind != models.ContentQuestion {
		live.PreviousTitle = ""
	}
	var images []models.ContentImage
	if err := s.db.Where("content_type = ? AND content_id = ?", kind, contentID).Find(&images).Error; err != nil {
		return nil, err
	}
	for _, img := range images {
		live.Images = append(live.Images, models.SnapshotImage{URL: img.URL})
	}
	return &live, nil
}
