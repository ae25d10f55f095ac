package content

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mhndckngyn/askdev-api/internal/models"
	"github.com/mhndckngyn/askdev-api/internal/testutil"
)

func TestEditHistoryNavigation(t *testing.T) {
	svc, db := newTestService(t)
	asker := testutil.CreateUser(t, db, "asker")

	q := createQuestion(t, svc, asker.ID, "v1 title")

	// two edits, distinct timestamps
	time.Sleep(20 * time.Millisecond)
	_, err := svc.UpdateQuestion(context.Background(), q.ID, asker.ID, QuestionInput{
		Title: "v2 title", Content: "v2 body",
	})
	require.NoError(t, err)
	time.Sleep(20 * time.Millisecond)
	_, err = svc.UpdateQuestion(context.Background(), q.ID, asker.ID, QuestionInput{
		Title: "v3 title", Content: "v3 body",
	})
	require.NoError(t, err)

	var live models.Question
	require.NoError(t, db.First(&live, q.ID).Error)
	require.True(t, live.IsEdited)

	// step back from the live record: v2, then v1, then nothing
	snap, err := svc.EditHistory(models.ContentQuestion, q.ID, live.UpdatedAt, -1)
	require.NoError(t, err)
	require.NotNil(t, snap)
	require.Equal(t, "v2 title", snap.PreviousTitle)

	older, err := svc.EditHistory(models.ContentQuestion, q.ID, snap.EditedAt, -1)
	require.NoError(t, err)
	require.NotNil(t, older)
	require.Equal(t, "v1 title", older.PreviousTitle)

	none, err := svc.EditHistory(models.ContentQuestion, q.ID, older.EditedAt, -1)
	require.NoError(t, err)
	require.Nil(t, none)

	// step forward from the oldest: v2, then the live record
	newer, err := svc.EditHistory(models.ContentQuestion, q.ID, older.EditedAt, 1)
	require.NoError(t, err)
	require.NotNil(t, newer)
	require.Equal(t, "v2 title", newer.PreviousTitle)

	liveSnap, err := svc.EditHistory(models.ContentQuestion, q.ID, newer.EditedAt, 1)
	require.NoError(t, err)
	require.NotNil(t, liveSnap)
	require.Equal(t, "v3 title", liveSnap.PreviousTitle)
	require.Equal(t, "v3 body", liveSnap.PreviousContent)
}

func TestEditHistoryInvalidDirection(t *testing.T) {
	svc, db := newTestService(t)
	asker := testutil.CreateUser(t, db, "asker")
	q := createQuestion(t, svc, asker.ID, "whatever")

	_, err := svc.EditHistory(models.ContentQuestion, q.ID, time.Now(), 0)
	require.Error(t, err)
}

func TestUpdateSnapshotsImages(t *testing.T) {
	svc, db := newTestService(t)
	asker := testutil.CreateUser(t, db, "asker")

	q := createQuestion(t, svc, asker.ID, "with image")
	require.NoError(t, db.Create(&models.ContentImage{
		ContentType: models.ContentQuestion, ContentID: q.ID, URL: "/uploads/a.png",
	}).Error)

	_, err := svc.UpdateQuestion(context.Background(), q.ID, asker.ID, QuestionInput{
		Title: "with image", Content: "new body",
		CurrentImages: []string{}, // the edit drops the image
	})
	require.NoError(t, err)

	// the snapshot keeps the pre-edit image, the live set is empty
	var snap models.EditSnapshot
	require.NoError(t, db.Preload("Images").Where("content_id = ?", q.ID).First(&snap).Error)
	require.Len(t, snap.Images, 1)
	require.Equal(t, "/uploads/a.png", snap.Images[0].URL)

	var liveImages int64
	require.NoError(t, db.Model(&models.ContentImage{}).Where("content_id = ?", q.ID).Count(&liveImages).Error)
	require.Zero(t, liveImages)
}

func TestDeleteRemovesSnapshots(t *testing.T) {
	svc, db := newTestService(t)
	asker := testutil.CreateUser(t, db, "asker")

	q := createQuestion(t, svc, asker.ID, "edit then delete")
	_, err := svc.UpdateQuestion(context.Background(), q.ID, asker.ID, QuestionInput{
		Title: "edited", Content: "body",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteQuestion(q.ID, asker.ID))

	var snaps, snapImages int64
	require.NoError(t, db.Model(&models.EditSnapshot{}).Count(&snaps).Error)
	require.NoError(t, db.Model(&models.SnapshotImage{}).Count(&snapImages).Error)
	require.Zero(t, snaps)
	require.Zero(t, snapImages)
}
