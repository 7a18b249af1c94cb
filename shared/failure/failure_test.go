package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"sitterhub/shared/failure"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{name: "bad request from string", err: failure.BadRequestFromString("end_date must be after start_date"), code: http.StatusBadRequest, message: "end_date must be after start_date"},
		{name: "bad request from error", err: failure.BadRequest(errors.New("malformed body")), code: http.StatusBadRequest, message: "malformed body"},
		{name: "unauthorized", err: failure.Unauthorized("token expired"), code: http.StatusUnauthorized, message: "token expired"},
		{name: "forbidden", err: failure.Forbidden("sitters only"), code: http.StatusForbidden, message: "sitters only"},
		{name: "not found", err: failure.NotFound("booking not found"), code: http.StatusNotFound, message: "booking not found"},
		{name: "conflict", err: failure.Conflict("booking already taken"), code: http.StatusConflict, message: "booking already taken"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, failure.GetCode(tt.err))
			assert.Equal(t, tt.message, tt.err.Error())
		})
	}
}

func TestNilInputs(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
}

func TestGetCode_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("accept booking: %w", failure.Conflict("booking already taken"))

	assert.Equal(t, http.StatusConflict, failure.GetCode(wrapped))
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(errors.New("plain")))
}

func TestPredefinedFailures(t *testing.T) {
	assert.Equal(t, http.StatusForbidden, failure.ForbiddenError.Code)
	assert.Equal(t, http.StatusForbidden, failure.GetCode(fmt.Errorf("rbac: %w", failure.ForbiddenError)))
}

func TestPredicates(t *testing.T) {
	assert.True(t, failure.IsNotFound(fmt.Errorf("get: %w", failure.NotFound("booking not found"))))
	assert.False(t, failure.IsNotFound(failure.Conflict("taken")))
	assert.True(t, failure.IsConflict(failure.Conflict("taken")))
	assert.False(t, failure.IsConflict(errors.New("plain")))
}
