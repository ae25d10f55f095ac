package content

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/mhndckngyn/askdev-api/internal/apperror"
	"github.com/mhndckngyn/askdev-api/internal/models"
	"github.com/mhndckngyn/askdev-api/internal/upload"
)

type QuestionInput struct {
	Title         string
	Content       string
	TagIDs        []int
	NewTags       []string
	CurrentImages []string // update only: live image URLs the client kept
	Files         []upload.File
}

// CreateQuestion persists a new question with its tags and images, then
// records QUESTION_CREATE for the asker. Anyone authenticated may create;
// there is no parent owner to notify.
func (s *Service) CreateQuestion(ctx context.Context, userID int, in QuestionInput) (*models.Question, error) {
	urls, err := s.uploader.Upload(ctx, in.Files)
	if err != nil {
		return nil, apperror.Internal("upload.failed")
	}

	q := &models.Question{
		Title:   strings.TrimSpace(in.Title),
		Content: s.sanitizer.Sanitize(in.Content),
		UserID:  userID,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(q).Error; err != nil {
			return err
		}
		tags, err := resolveTags(tx, in.TagIDs, in.NewTags)
		if err != nil {
			return err
		}
		if len(tags) > 0 {
			if err := tx.Model(q).Association("Tags").Append(tags); err != nil {
				return err
			}
		}
		return createImages(tx, models.ContentQuestion, q.ID, urls)
	})
	if err != nil {
		return nil, err
	}

	qid := q.ID
	s.recordHistory(userID, models.HistoryQuestionCreate, q.Title, &qid)
	return q, nil
}

// UpdateQuestion snapshots the pre-edit state, applies the new body, tags
// and image set, and records QUESTION_EDIT. Only the author may edit.
func (s *Service) UpdateQuestion(ctx context.Context, id, userID int, in QuestionInput) (*models.Question, error) {
	var existing models.Question
	if err := s.db.First(&existing, id).Error; err != nil {
		return nil, apperror.NotFound("question.not-found")
	}
	if existing.UserID != userID {
		return nil, apperror.Forbidden("question.forbidden")
	}

	urls, err := s.uploader.Upload(ctx, in.Files)
	if err != nil {
		return nil, apperror.Internal("upload.failed")
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.snapshot(tx, models.ContentQuestion, existing.ID, existing.Title, existing.Content, existing.UpdatedAt); err != nil {
			return err
		}

		updates := map[string]interface{}{
			"title":     strings.TrimSpace(in.Title),
			"content":   s.sanitizer.Sanitize(in.Content),
			"is_edited": true,
		}
		if err := tx.Model(&existing).Updates(updates).Error; err != nil {
			return err
		}

		tags, err := resolveTags(tx, in.TagIDs, in.NewTags)
		if err != nil {
			return err
		}
		if err := tx.Model(&existing).Association("Tags").Replace(tags); err != nil {
			return err
		}

		return reconcileImages(tx, models.ContentQuestion, existing.ID, in.CurrentImages, urls)
	})
	if err != nil {
		return nil, err
	}

	qid := existing.ID
	s.recordHistory(userID, models.HistoryQuestionEdit, existing.Title, &qid)

	var updated models.Question
	if err := s.db.Preload("Tags").Preload("User").First(&updated, id).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteQuestion removes a question and everything hanging off it: its
// answers and their comments, every vote, snapshot and image involved.
// Snapshots go before their entities so no orphaned history survives.
func (s *Service) DeleteQuestion(id, userID int) error {
	var existing models.Question
	if err := s.db.First(&existing, id).Error; err != nil {
		return apperror.NotFound("question.not-found")
	}
	if existing.UserID != userID {
		return apperror.Forbidden("question.forbidden")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var answerIDs []int
		if err := tx.Model(&models.Answer{}).Where("question_id = ?", id).Pluck("id", &answerIDs).Error; err != nil {
			return err
		}

		if len(answerIDs) > 0 {
			var commentIDs []int
			if err := tx.Model(&models.Comment{}).Where("answer_id IN ?", answerIDs).Pluck("id", &commentIDs).Error; err != nil {
				return err
			}
			for _, cid := range commentIDs {
				if err := deleteContentRows(tx, models.ContentComment, cid); err != nil {
					return err
				}
			}
			if len(commentIDs) > 0 {
				if err := tx.Where("id IN ?", commentIDs).Delete(&models.Comment{}).Error; err != nil {
					return err
				}
			}
			for _, aid := range answerIDs {
				if err := deleteContentRows(tx, models.ContentAnswer, aid); err != nil {
					return err
				}
			}
			if err := tx.Where("id IN ?", answerIDs).Delete(&models.Answer{}).Error; err != nil {
				return err
			}
		}

		if err := deleteContentRows(tx, models.ContentQuestion, id); err != nil {
			return err
		}
		if err := tx.Model(&existing).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Delete(&existing).Error
	})
	if err != nil {
		return err
	}

	s.recordHistory(userID, models.HistoryQuestionDelete, existing.Title, nil)
	return nil
}

// GetQuestion loads one question for display, tags, author and answers
// included.
func (s *Service) GetQuestion(id int) (*models.Question, error) {
	var q models.Question
	err := s.db.Preload("Tags").Preload("User").
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("answers.created_at asc").Preload("User")
		}).
		First(&q, id).Error
	if err != nil {
		return nil, apperror.NotFound("question.not-found")
	}
	return &q, nil
}

// ListQuestions returns visible questions newest-first, optionally
// filtered by a title keyword, paginated.
func (s *Service) ListQuestions(keyword string, page, pageSize int) ([]models.Question, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	q := s.db.Model(&models.Question{}).Where("is_hidden = ?", false)
	if keyword != "" {
		q = q.Where("title ILIKE ?", "%"+keyword+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var questions []models.Question
	err := q.Preload("Tags").Preload("User").
		Order("created_at desc").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&questions).Error
	return questions, int(total), err
}

// QuestionImages returns the live image URLs of a question.
func (s *Service) QuestionImages(id int) ([]string, error) {
	var images []models.ContentImage
	if err := s.db.Where("content_type = ? AND content_id = ?", models.ContentQuestion, id).Find(&images).Error; err != nil {
		return nil, err
	}
	urls := make([]string, 0, len(images))
	for _, img := range images {
		urls = append(urls, img.URL)
	}
	return urls, nil
}

// resolveTags loads the referenced tags and creates the missing ones by
// name, skipping names that already exist.
func resolveTags(tx *gorm.DB, tagIDs []int, newTags []string) ([]models.Tag, error) {
	var tags []models.Tag
	if len(tagIDs) > 0 {
		if err := tx.Where("id IN ?", tagIDs).Find(&tags).Error; err != nil {
			return nil, err
		}
	}
	for _, name := range newTags {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		var tag models.Tag
		if err := tx.Where("name = ?", name).FirstOrCreate(&tag, models.Tag{Name: name}).Error; err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

func createImages(tx *gorm.DB, kind models.ContentType, contentID int, urls []string) error {
	for _, u := range urls {
		img := models.ContentImage{ContentType: kind, ContentID: contentID, URL: u}
		if err := tx.Create(&img).Error; err != nil {
			return err
		}
	}
	return nil
}

// reconcileImages drops live images the client no longer lists and adds
// the freshly uploaded ones.
func reconcileImages(tx *gorm.DB, kind models.ContentType, contentID int, kept, added []string) error {
	q := tx.Where("content_type = ? AND content_id = ?", kind, contentID)
	if len(kept) > 0 {
		q = q.Where("url NOT IN ?", kept)
	}
	if err := q.Delete(&models.ContentImage{}).Error; err != nil {
		return err
	}
	return createImages(tx, kind, contentID, added)
}

// deleteContentRows clears the rows that reference one content item:
// votes, live images, and the snapshot chain.
func deleteContentRows(tx *gorm.DB, kind models.ContentType, contentID int) error {
	if err := tx.Where("content_type = ? AND content_id = ?", kind, contentID).Delete(&models.Vote{}).Error; err != nil {
		return err
	}
	if err := tx.Where("content_type = ? AND content_id = ?", kind, contentID).Delete(&models.ContentImage{}).Error; err != nil {
		return err
	}
	return deleteSnapshots(tx, kind, contentID)
}
