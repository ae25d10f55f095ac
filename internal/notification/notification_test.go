package notification

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mhndckngyn/askdev-api/internal/models"
	"github.com/mhndckngyn/askdev-api/internal/testutil"
)

func TestEmitSkipsSelfAction(t *testing.T) {
	db := testutil.NewTestDB(t)
	n := NewNotifier(db)
	user := testutil.CreateUser(t, db, "u")

	notif, err := n.Emit(user.ID, user.ID, models.NotifyAnswer, "own question", nil)
	require.NoError(t, err)
	require.Nil(t, notif)

	var count int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestEmitAndList(t *testing.T) {
	db := testutil.NewTestDB(t)
	n := NewNotifier(db)
	owner := testutil.CreateUser(t, db, "owner")
	actor := testutil.CreateUser(t, db, "actor")

	notif, err := n.Emit(owner.ID, actor.ID, models.NotifyComment, "nice answer", nil)
	require.NoError(t, err)
	require.NotNil(t, notif)
	require.False(t, notif.IsRead)

	items, err := n.List(owner.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, actor.Username, items[0].Actor.Username)

	// the actor's own inbox stays empty
	items, err = n.List(actor.ID)
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestReadFlags(t *testing.T) {
	db := testutil.NewTestDB(t)
	n := NewNotifier(db)
	owner := testutil.CreateUser(t, db, "owner")
	actor := testutil.CreateUser(t, db, "actor")
	stranger := testutil.CreateUser(t, db, "stranger")

	notif, err := n.Emit(owner.ID, actor.ID, models.NotifyAnswer, "q", nil)
	require.NoError(t, err)

	// only the recipient can mark it
	require.Error(t, n.SetRead(notif.ID, stranger.ID, true))
	require.NoError(t, n.SetRead(notif.ID, owner.ID, true))

	var got models.Notification
	require.NoError(t, db.First(&got, notif.ID).Error)
	require.True(t, got.IsRead)

	_, err = n.Emit(owner.ID, actor.ID, models.NotifyAnswerVote, "q", nil)
	require.NoError(t, err)
	require.NoError(t, n.SetAllRead(owner.ID, true))

	var unread int64
	require.NoError(t, db.Model(&models.Notification{}).Where("user_id = ? AND is_read = ?", owner.ID, false).Count(&unread).Error)
	require.Zero(t, unread)
}

func TestDelete(t *testing.T) {
	db := testutil.NewTestDB(t)
	n := NewNotifier(db)
	owner := testutil.CreateUser(t, db, "owner")
	actor := testutil.CreateUser(t, db, "actor")
	stranger := testutil.CreateUser(t, db, "stranger")

	notif, err := n.Emit(owner.ID, actor.ID, models.NotifyAnswer, "q", nil)
	require.NoError(t, err)

	require.Error(t, n.DeleteOne(notif.ID, stranger.ID))
	require.NoError(t, n.DeleteOne(notif.ID, owner.ID))

	for i := 0; i < 3; i++ {
		_, err := n.Emit(owner.ID, actor.ID, models.NotifyCommentVote, "q", nil)
		require.NoError(t, err)
	}
	require.NoError(t, n.DeleteAll(owner.ID))

	var count int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&count).Error)
	require.Zero(t, count)
}
