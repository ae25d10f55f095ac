package content

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mhndckngyn/askdev-api/internal/history"
	"github.com/mhndckngyn/askdev-api/internal/models"
	"github.com/mhndckngyn/askdev-api/internal/notification"
	"github.com/mhndckngyn/askdev-api/internal/testutil"
	"github.com/mhndckngyn/askdev-api/internal/upload"
)

type stubUploader struct{}

func (stubUploader) Upload(ctx context.Context, files []upload.File) ([]string, error) {
	urls := make([]string, len(files))
	for i, f := range files {
		urls[i] = "/uploads/" + f.Name
	}
	return urls, nil
}

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db := testutil.NewTestDB(t)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(db, log, notification.NewNotifier(db), history.NewRecorder(db), stubUploader{}, nil)
	return svc, db
}

func createQuestion(t *testing.T, svc *Service, userID int, title string) *models.Question {
	t.Helper()
	q, err := svc.CreateQuestion(context.Background(), userID, QuestionInput{
		Title:   title,
		Content: "some body",
		NewTags: []string{"go"},
	})
	require.NoError(t, err)
	return q
}

func createAnswer(t *testing.T, svc *Service, userID, questionID int) *models.Answer {
	t.Helper()
	ans, err := svc.CreateAnswer(context.Background(), userID, questionID, AnswerInput{Content: "an answer"})
	require.NoError(t, err)
	return ans
}

func TestCreateQuestionRecordsHistory(t *testing.T) {
	svc, db := newTestService(t)
	asker := testutil.CreateUser(t, db, "asker")

	q := createQuestion(t, svc, asker.ID, "How do I test gorm?")

	var entries []models.HistoryEntry
	require.NoError(t, db.Where("user_id = ?", asker.ID).Find(&entries).Error)
	require.Len(t, entries, 1)
	require.Equal(t, models.HistoryQuestionCreate, entries[0].Type)
	require.Equal(t, q.Title, entries[0].ContentTitle)
	require.NotNil(t, entries[0].QuestionID)
	require.Equal(t, q.ID, *entries[0].QuestionID)

	// no notification for creating your own question
	var count int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestAnswerNotifiesAsker(t *testing.T) {
	svc, db := newTestService(t)
	asker := testutil.CreateUser(t, db, "asker")
	helper := testutil.CreateUser(t, db, "helper")

	q := createQuestion(t, svc, asker.ID, "Notify me")
	createAnswer(t, svc, helper.ID, q.ID)

	var notifs []models.Notification
	require.NoError(t, db.Where("user_id = ?", asker.ID).Find(&notifs).Error)
	require.Len(t, notifs, 1)
	require.Equal(t, models.NotifyAnswer, notifs[0].Type)
	require.Equal(t, helper.ID, notifs[0].ActorID)
	require.Equal(t, q.Title, notifs[0].ContentTitle)
}

func TestSelfAnswerDoesNotNotify(t *testing.T) {
	svc, db := newTestService(t)
	asker := testutil.CreateUser(t, db, "asker")

	q := createQuestion(t, svc, asker.ID, "Answering myself")
	createAnswer(t, svc, asker.ID, q.ID)

	var count int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestCommentNotifiesAnswerAuthorWithBody(t *testing.T) {
	svc, db := newTestService(t)
	asker := testutil.CreateUser(t, db, "asker")
	helper := testutil.CreateUser(t, db, "helper")
	reader := testutil.CreateUser(t, db, "reader")

	q := createQuestion(t, svc, asker.ID, "A question")
	ans := createAnswer(t, svc, helper.ID, q.ID)

	comment, err := svc.CreateComment(reader.ID, ans.ID, "great explanation")
	require.NoError(t, err)

	var notifs []models.Notification
	require.NoError(t, db.Where("user_id = ?", helper.ID).Find(&notifs).Error)
	require.Len(t, notifs, 1)
	require.Equal(t, models.NotifyComment, notifs[0].Type)
	require.Equal(t, comment.Content, notifs[0].ContentTitle)
	require.NotNil(t, notifs[0].QuestionID)
	require.Equal(t, q.ID, *notifs[0].QuestionID)
}

func TestDeleteQuestionCascades(t *testing.T) {
	svc, db := newTestService(t)
	asker := testutil.CreateUser(t, db, "asker")
	helper := testutil.CreateUser(t, db, "helper")

	q := createQuestion(t, svc, asker.ID, "Doomed question")
	ans := createAnswer(t, svc, helper.ID, q.ID)
	_, err := svc.CreateComment(asker.ID, ans.ID, "thanks")
	require.NoError(t, err)
	_, err = svc.Vote(helper.ID, models.ContentQuestion, q.ID, models.VoteUp)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteQuestion(q.ID, asker.ID))

	for _, model := range []interface{}{
		&models.Question{}, &models.Answer{}, &models.Comment{}, &models.Vote{},
	} {
		var count int64
		require.NoError(t, db.Model(model).Count(&count).Error)
		require.Zero(t, count)
	}

	// a delete entry against the question title, with no live reference
	var entry models.HistoryEntry
	require.NoError(t, db.Where("type = ?", models.HistoryQuestionDelete).First(&entry).Error)
	require.Equal(t, "Doomed question", entry.ContentTitle)
	require.Nil(t, entry.QuestionID)
}

func TestDeleteQuestionOwnershipEnforced(t *testing.T) {
	svc, db := newTestService(t)
	asker := testutil.CreateUser(t, db, "asker")
	other := testutil.CreateUser(t, db, "other")

	q := createQuestion(t, svc, asker.ID, "Not yours")

	err := svc.DeleteQuestion(q.ID, other.ID)
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Question{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestSetHidden(t *testing.T) {
	svc, db := newTestService(t)
	asker := testutil.CreateUser(t, db, "asker")

	q1 := createQuestion(t, svc, asker.ID, "First")
	q2 := createQuestion(t, svc, asker.ID, "Second")

	updated, err := svc.SetHidden(models.ContentQuestion, []int{q1.ID, q2.ID}, true)
	require.NoError(t, err)
	require.Equal(t, 2, updated)

	var hidden int64
	require.NoError(t, db.Model(&models.Question{}).Where("is_hidden = ?", true).Count(&hidden).Error)
	require.EqualValues(t, 2, hidden)
}
