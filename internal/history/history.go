// Package history maintains each user's personal activity log. Entries are
// append-only and attributed to the acting user, never the content owner.
package history

import (
	"time"

	"gorm.io/gorm"

	"github.com/mhndckngyn/askdev-api/internal/apperror"
	"github.com/mhndckngyn/askdev-api/internal/models"
)

type Recorder struct {
	db *gorm.DB
}

func NewRecorder(db *gorm.DB) *Recorder {
	return &Recorder{db: db}
}

// Record appends one entry of a known action type to userID's log.
func (r *Recorder) Record(userID int, typ models.HistoryType, contentTitle string, questionID *int) (*models.HistoryEntry, error) {
	if !typ.Valid() {
		return nil, apperror.BadRequest("history.invalid-type")
	}

	entry := models.HistoryEntry{
		UserID:       userID,
		Type:         typ,
		ContentTitle: contentTitle,
		QuestionID:   questionID,
	}
	if err := r.db.Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// Filters narrows a history listing. All fields are optional.
type Filters struct {
	Query string
	Types []models.HistoryType
	Start *time.Time
	End   *time.Time // inclusive, normalized to end of day
}

type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasMore    bool `json:"hasMore"`
}

// List returns userID's entries newest-first, paginated.
func (r *Recorder) List(userID, page, pageSize int, f Filters) ([]models.HistoryEntry, Pagination, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	q := r.db.Model(&models.HistoryEntry{}).Where("user_id = ?", userID)

	if f.Query != "" {
		q = q.Where("content_title ILIKE ?", "%"+f.Query+"%")
	}
	if len(f.Types) > 0 {
		q = q.Where("type IN ?", f.Types)
	}
	if f.Start != nil {
		q = q.Where("created_at >= ?", *f.Start)
	}
	if f.End != nil {
		end := time.Date(f.End.Year(), f.End.Month(), f.End.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), f.End.Location())
		q = q.Where("created_at <= ?", end)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, Pagination{}, err
	}

	var items []models.HistoryEntry
	err := q.Preload("User").
		Order("created_at desc").
		Offset(offset).
		Limit(pageSize).
		Find(&items).Error
	if err != nil {
		return nil, Pagination{}, err
	}

	totalPages := (int(total) + pageSize - 1) / pageSize
	return items, Pagination{
		Page:       page,
		Limit:      pageSize,
		Total:      int(total),
		TotalPages: totalPages,
		HasMore:    offset+len(items) < int(total),
	}, nil
}

// DeleteOne removes a single entry owned by userID.
func (r *Recorder) DeleteOne(id, userID int) error {
	var entry models.HistoryEntry
	if err := r.db.First(&entry, id).Error; err != nil || entry.UserID != userID {
		return apperror.NotFound("history.not-found-or-no-permission")
	}
	return r.db.Delete(&entry).Error
}

// DeleteMany removes a batch of entries, all-or-nothing: if any id is
// missing or not owned by userID, nothing is deleted.
func (r *Recorder) DeleteMany(ids []int, userID int) (int, error) {
	deleted := 0
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var items []models.HistoryEntry
		if err := tx.Select("id", "user_id").Where("id IN ?", ids).Find(&items).Error; err != nil {
			return err
		}

		for _, item := range items {
			if item.UserID != userID {
				return apperror.Forbidden("history.no-permission-some-items")
			}
		}
		if len(items) != len(ids) {
			return apperror.NotFound("history.some-items-not-found")
		}

		if err := tx.Where("id IN ? AND user_id = ?", ids, userID).Delete(&models.HistoryEntry{}).Error; err != nil {
			return err
		}
		deleted = len(items)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// DeleteAll clears userID's entire log and reports how many entries went.
func (r *Recorder) DeleteAll(userID int) (int, error) {
	res := r.db.Where("user_id = ?", userID).Delete(&models.HistoryEntry{})
	return int(res.RowsAffected), res.Error
}
