package content

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mhndckngyn/askdev-api/internal/models"
	"github.com/mhndckngyn/askdev-api/internal/testutil"
)

func questionCounters(t *testing.T, db *gorm.DB, id int) (int, int) {
	t.Helper()
	var q models.Question
	require.NoError(t, db.First(&q, id).Error)
	return q.Upvotes, q.Downvotes
}

func TestVoteToggle(t *testing.T) {
	svc, db := newTestService(t)
	asker := testutil.CreateUser(t, db, "asker")
	voter := testutil.CreateUser(t, db, "voter")

	q := createQuestion(t, svc, asker.ID, "Toggle me")

	res, err := svc.Vote(voter.ID, models.ContentQuestion, q.ID, models.VoteUp)
	require.NoError(t, err)
	require.Equal(t, VoteCreated, res.Action)
	up, down := questionCounters(t, db, q.ID)
	require.Equal(t, 1, up)
	require.Equal(t, 0, down)

	// same direction again removes the vote
	res, err = svc.Vote(voter.ID, models.ContentQuestion, q.ID, models.VoteUp)
	require.NoError(t, err)
	require.Equal(t, VoteRemoved, res.Action)
	up, down = questionCounters(t, db, q.ID)
	require.Equal(t, 0, up)
	require.Equal(t, 0, down)

	var votes int64
	require.NoError(t, db.Model(&models.Vote{}).Count(&votes).Error)
	require.Zero(t, votes)
}

func TestVoteFlip(t *testing.T) {
	svc, db := newTestService(t)
	asker := testutil.CreateUser(t, db, "asker")
	voter := testutil.CreateUser(t, db, "voter")

	q := createQuestion(t, svc, asker.ID, "Flip me")

	_, err := svc.Vote(voter.ID, models.ContentQuestion, q.ID, models.VoteUp)
	require.NoError(t, err)

	res, err := svc.Vote(voter.ID, models.ContentQuestion, q.ID, models.VoteDown)
	require.NoError(t, err)
	require.Equal(t, VoteChanged, res.Action)

	up, down := questionCounters(t, db, q.ID)
	require.Equal(t, 0, up)
	require.Equal(t, 1, down)

	// still exactly one vote row for this user and item
	var votes []models.Vote
	require.NoError(t, db.Find(&votes).Error)
	require.Len(t, votes, 1)
	require.Equal(t, models.VoteDown, votes[0].Type)
}

func TestVoteCountersAgreeAcrossUsers(t *testing.T) {
	svc, db := newTestService(t)
	asker := testutil.CreateUser(t, db, "asker")
	q := createQuestion(t, svc, asker.ID, "Popular")

	voters := []*models.User{
		testutil.CreateUser(t, db, "v1"),
		testutil.CreateUser(t, db, "v2"),
		testutil.CreateUser(t, db, "v3"),
	}
	directions := []int{models.VoteUp, models.VoteUp, models.VoteDown}
	for i, v := range voters {
		_, err := svc.Vote(v.ID, models.ContentQuestion, q.ID, directions[i])
		require.NoError(t, err)
	}

	up, down := questionCounters(t, db, q.ID)
	require.Equal(t, 2, up)
	require.Equal(t, 1, down)

	var upRows, downRows int64
	require.NoError(t, db.Model(&models.Vote{}).Where("type = ?", models.VoteUp).Count(&upRows).Error)
	require.NoError(t, db.Model(&models.Vote{}).Where("type = ?", models.VoteDown).Count(&downRows).Error)
	require.EqualValues(t, up, upRows)
	require.EqualValues(t, down, downRows)
}

func TestVoteSideEffects(t *testing.T) {
	svc, db := newTestService(t)
	asker := testutil.CreateUser(t, db, "asker")
	voter := testutil.CreateUser(t, db, "voter")

	q := createQuestion(t, svc, asker.ID, "Side effects")

	_, err := svc.Vote(voter.ID, models.ContentQuestion, q.ID, models.VoteUp)
	require.NoError(t, err)

	var notifs []models.Notification
	require.NoError(t, db.Where("user_id = ?", voter.ID).Find(&notifs).Error)
	require.Empty(t, notifs, "the voter gets no notification")

	require.NoError(t, db.Where("user_id = ?", asker.ID).Find(&notifs).Error)
	require.Len(t, notifs, 1)
	require.Equal(t, models.NotifyQuestionVote, notifs[0].Type)

	var entry models.HistoryEntry
	require.NoError(t, db.Where("user_id = ? AND type = ?", voter.ID, models.HistoryQuestionVote).First(&entry).Error)
	require.Equal(t, q.Title, entry.ContentTitle)

	// removing the vote stays quiet
	_, err = svc.Vote(voter.ID, models.ContentQuestion, q.ID, models.VoteUp)
	require.NoError(t, err)

	var notifCount, historyCount int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&notifCount).Error)
	require.NoError(t, db.Model(&models.HistoryEntry{}).Where("user_id = ?", voter.ID).Count(&historyCount).Error)
	require.EqualValues(t, 1, notifCount)
	require.EqualValues(t, 1, historyCount)
}

func TestVoteOwnContentNoNotification(t *testing.T) {
	svc, db := newTestService(t)
	asker := testutil.CreateUser(t, db, "asker")

	q := createQuestion(t, svc, asker.ID, "Self vote")

	_, err := svc.Vote(asker.ID, models.ContentQuestion, q.ID, models.VoteUp)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&count).Error)
	require.Zero(t, count)

	up, _ := questionCounters(t, db, q.ID)
	require.Equal(t, 1, up)
}

func TestVoteValidation(t *testing.T) {
	svc, db := newTestService(t)
	asker := testutil.CreateUser(t, db, "asker")
	q := createQuestion(t, svc, asker.ID, "Validate")

	_, err := svc.Vote(asker.ID, models.ContentQuestion, q.ID, 0)
	require.Error(t, err)

	_, err = svc.Vote(asker.ID, models.ContentQuestion, 9999, models.VoteUp)
	require.Error(t, err)
}

func TestVoteStatus(t *testing.T) {
	svc, db := newTestService(t)
	asker := testutil.CreateUser(t, db, "asker")
	voter := testutil.CreateUser(t, db, "voter")
	q := createQuestion(t, svc, asker.ID, "Status")

	status, err := svc.VoteStatus(voter.ID, models.ContentQuestion, q.ID)
	require.NoError(t, err)
	require.Equal(t, "none", status)

	_, err = svc.Vote(voter.ID, models.ContentQuestion, q.ID, models.VoteUp)
	require.NoError(t, err)
	status, err = svc.VoteStatus(voter.ID, models.ContentQuestion, q.ID)
	require.NoError(t, err)
	require.Equal(t, "like", status)

	_, err = svc.Vote(voter.ID, models.ContentQuestion, q.ID, models.VoteDown)
	require.NoError(t, err)
	status, err = svc.VoteStatus(voter.ID, models.ContentQuestion, q.ID)
	require.NoError(t, err)
	require.Equal(t, "dislike", status)
}

func TestAnswerVoteHistoryTypes(t *testing.T) {
	svc, db := newTestService(t)
	asker := testutil.CreateUser(t, db, "asker")
	helper := testutil.CreateUser(t, db, "helper")
	voter := testutil.CreateUser(t, db, "voter")

	q := createQuestion(t, svc, asker.ID, "Types")
	ans := createAnswer(t, svc, helper.ID, q.ID)

	_, err := svc.Vote(voter.ID, models.ContentAnswer, ans.ID, models.VoteDown)
	require.NoError(t, err)

	var entry models.HistoryEntry
	require.NoError(t, db.Where("user_id = ?", voter.ID).First(&entry).Error)
	require.Equal(t, models.HistoryAnswerDownvote, entry.Type)

	var notif models.Notification
	require.NoError(t, db.Where("user_id = ?", helper.ID).First(&notif).Error)
	require.Equal(t, models.NotifyAnswerVote, notif.Type)
}
