// Package notification manages per-recipient inbox entries alerting a
// content owner to another user's action on their content.
package notification

import (
	"gorm.io/gorm"

	"github.com/mhndckngyn/askdev-api/internal/apperror"
	"github.com/mhndckngyn/askdev-api/internal/models"
)

type Notifier struct {
	db *gorm.DB
}

func NewNotifier(db *gorm.DB) *Notifier {
	return &Notifier{db: db}
}

// Emit creates a notification for ownerID about actorID's action, unless
// the actor is the owner — nobody gets notified about their own actions.
// Returns nil without error in that case.
func (n *Notifier) Emit(ownerID, actorID int, typ models.NotificationType, contentTitle string, questionID *int) (*models.Notification, error) {
	if ownerID == actorID {
		return nil, nil
	}

	notif := models.Notification{
		UserID:       ownerID,
		ActorID:      actorID,
		Type:         typ,
		ContentTitle: contentTitle,
		QuestionID:   questionID,
	}
	if err := n.db.Create(&notif).Error; err != nil {
		return nil, err
	}
	return &notif, nil
}

// List returns userID's notifications newest-first.
func (n *Notifier) List(userID int) ([]models.Notification, error) {
	var notifs []models.Notification
	err := n.db.Preload("Actor").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&notifs).Error
	return notifs, err
}

func (n *Notifier) owned(id, userID int) (*models.Notification, error) {
	var notif models.Notification
	if err := n.db.First(&notif, id).Error; err != nil || notif.UserID != userID {
		return nil, apperror.NotFound("notification.not-found-or-no-permission")
	}
	return &notif, nil
}

func (n *Notifier) SetRead(id, userID int, read bool) error {
	notif, err := n.owned(id, userID)
	if err != nil {
		return err
	}
	return n.db.Model(notif).Update("is_read", read).Error
}

func (n *Notifier) SetAllRead(userID int, read bool) error {
	return n.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, !read).
		Update("is_read", read).Error
}

func (n *Notifier) DeleteOne(id, userID int) error {
	notif, err := n.owned(id, userID)
	if err != nil {
		return err
	}
	return n.db.Delete(notif).Error
}

func (n *Notifier) DeleteAll(userID int) error {
	return n.db.Where("user_id = ?", userID).Delete(&models.Notification{}).Error
}
