package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructorsMapStatuses(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, NotFound("missing").Status)
	assert.Equal(t, http.StatusBadRequest, BadRequest("bad").Status)
	assert.Equal(t, http.StatusUnauthorized, Unauthorized("denied").Status)
	assert.Equal(t, http.StatusInternalServerError, InternalError(stderrors.New("boom")).Status)

	// Duplicate email is validation-class in this design: 400, not 409.
	conflict := Conflict("email taken")
	assert.Equal(t, http.StatusBadRequest, conflict.Status)
	assert.Equal(t, CodeConflict, conflict.Code)
}

func TestAppErrorUnwrap(t *testing.T) {
	appErr := NotFound("user missing")
	assert.True(t, stderrors.Is(appErr, ErrNotFound))

	var target *AppError
	assert.True(t, stderrors.As(error(appErr), &target))
	assert.Equal(t, "user missing", target.Message)
}

func TestAppErrorMessage(t *testing.T) {
	assert.Equal(t, "wrapped", NewAppError(500, CodeInternal, "msg", stderrors.New("wrapped")).Error())
	assert.Equal(t, "msg", NewAppError(500, CodeInternal, "msg", nil).Error())
}

func TestInternalErrorHidesDetail(t *testing.T) {
	appErr := InternalError(stderrors.New("pq: connection refused"))
	assert.Equal(t, "An unexpected error occurred", appErr.Message)
	assert.Equal(t, CodeInternal, appErr.Code)
}
