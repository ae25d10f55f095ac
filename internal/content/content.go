// Package content implements the mutation engine shared by questions,
// answers and comments: create/update/delete orchestration, votes with
// denormalized counters, chosen-answer marking, edit-history snapshots,
// and the notification/history side effects each mutation triggers.
package content

import (
	"log/slog"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"

	"github.com/mhndckngyn/askdev-api/internal/apperror"
	"github.com/mhndckngyn/askdev-api/internal/history"
	"github.com/mhndckngyn/askdev-api/internal/metrics"
	"github.com/mhndckngyn/askdev-api/internal/models"
	"github.com/mhndckngyn/askdev-api/internal/notification"
	"github.com/mhndckngyn/askdev-api/internal/upload"
)

type Service struct {
	db        *gorm.DB
	log       *slog.Logger
	notifier  *notification.Notifier
	history   *history.Recorder
	uploader  upload.Uploader
	sanitizer *bluemonday.Policy
	metrics   *metrics.Collector
}

// NewService wires the mutation engine. metrics may be nil in tests.
func NewService(db *gorm.DB, log *slog.Logger, notifier *notification.Notifier, recorder *history.Recorder, uploader upload.Uploader, collector *metrics.Collector) *Service {
	return &Service{
		db:        db,
		log:       log,
		notifier:  notifier,
		history:   recorder,
		uploader:  uploader,
		sanitizer: bluemonday.UGCPolicy(),
		metrics:   collector,
	}
}

// info is the cross-kind view of one content item: enough to check
// ownership, build notifications/history entries, and navigate edits.
type info struct {
	OwnerID    int
	Title      string // question title, or answer/comment body
	Content    string
	QuestionID *int
	UpdatedAt  time.Time
}

func notFoundKey(kind models.ContentType) string {
	switch kind {
	case models.ContentQuestion:
		return "question.not-found"
	case models.ContentAnswer:
		return "answer.not-found"
	default:
		return "comment.not-found"
	}
}

// loadInfo resolves a content item of any kind, or a NotFound error.
func (s *Service) loadInfo(tx *gorm.DB, kind models.ContentType, id int) (info, error) {
	switch kind {
	case models.ContentQuestion:
		var q models.Question
		if err := tx.First(&q, id).Error; err != nil {
			return info{}, apperror.NotFound(notFoundKey(kind))
		}
		qid := q.ID
		return info{OwnerID: q.UserID, Title: q.Title, Content: q.Content, QuestionID: &qid, UpdatedAt: q.UpdatedAt}, nil

	case models.ContentAnswer:
		var a models.Answer
		if err := tx.First(&a, id).Error; err != nil {
			return info{}, apperror.NotFound(notFoundKey(kind))
		}
		qid := a.QuestionID
		return info{OwnerID: a.UserID, Title: a.Content, Content: a.Content, QuestionID: &qid, UpdatedAt: a.UpdatedAt}, nil

	case models.ContentComment:
		var c models.Comment
		if err := tx.First(&c, id).Error; err != nil {
			return info{}, apperror.NotFound(notFoundKey(kind))
		}
		var a models.Answer
		var qid *int
		if err := tx.Select("question_id").First(&a, c.AnswerID).Error; err == nil {
			qid = &a.QuestionID
		}
		return info{OwnerID: c.UserID, Title: c.Content, Content: c.Content, QuestionID: qid, UpdatedAt: c.UpdatedAt}, nil
	}
	return info{}, apperror.BadRequest("content.invalid-type")
}

// modelFor maps a kind to its GORM model for counter updates and
// moderation toggles.
func modelFor(kind models.ContentType) interface{} {
	switch kind {
	case models.ContentQuestion:
		return &models.Question{}
	case models.ContentAnswer:
		return &models.Answer{}
	default:
		return &models.Comment{}
	}
}

// recordHistory appends an activity-log entry, best-effort: a failure is
// logged and never propagated to the triggering mutation.
func (s *Service) recordHistory(userID int, typ models.HistoryType, contentTitle string, questionID *int) {
	if _, err := s.history.Record(userID, typ, contentTitle, questionID); err != nil {
		s.log.Error("failed to record history entry", "type", typ, "user_id", userID, "err", err)
		return
	}
	if s.metrics != nil {
		s.metrics.RecordHistoryEntry()
	}
}

// notify creates a cross-user notification, best-effort like recordHistory.
func (s *Service) notify(ownerID, actorID int, typ models.NotificationType, contentTitle string, questionID *int) {
	n, err := s.notifier.Emit(ownerID, actorID, typ, contentTitle, questionID)
	if err != nil {
		s.log.Error("failed to create notification", "type", typ, "recipient", ownerID, "err", err)
		return
	}
	if n != nil && s.metrics != nil {
		s.metrics.RecordNotification()
	}
}

// SetHidden flips the moderation flag on a batch of content items.
func (s *Service) SetHidden(kind models.ContentType, ids []int, hidden bool) (int, error) {
	if !kind.Valid() {
		return 0, apperror.BadRequest("content.invalid-type")
	}
	res := s.db.Model(modelFor(kind)).Where("id IN ?", ids).Update("is_hidden", hidden)
	return int(res.RowsAffected), res.Error
}
