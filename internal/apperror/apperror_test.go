package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	cases := []struct {
		err    *Error
		status int
		silent bool
	}{
		{NotFound("x.not-found"), http.StatusNotFound, true},
		{Forbidden("x.forbidden"), http.StatusForbidden, true},
		{BadRequest("x.bad"), http.StatusBadRequest, true},
		{Unauthorized("x.unauthorized"), http.StatusUnauthorized, true},
		{Internal("x.internal"), http.StatusInternalServerError, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.status, c.err.Status)
		assert.Equal(t, c.silent, c.err.Silent)
	}
}

func TestAsUnwraps(t *testing.T) {
	base := NotFound("question.not-found")
	wrapped := fmt.Errorf("loading question: %w", base)

	appErr, ok := As(wrapped)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
	assert.Equal(t, "question.not-found", appErr.Message)

	_, ok = As(errors.New("plain"))
	assert.False(t, ok)
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "vote.invalid-type", BadRequest("vote.invalid-type").Error())
}
