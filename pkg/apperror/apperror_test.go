package apperror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToHTTPStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", NewNotFound("Post", "abc"), http.StatusNotFound},
		{"invalid input", NewInvalidInput("bad body", nil), http.StatusBadRequest},
		{"validation", NewValidation(FieldViolation{Msg: "Status should not be empty", Param: "status"}), http.StatusBadRequest},
		{"conflict maps to 400", NewConflict("Post already liked"), http.StatusBadRequest},
		{"unauthorized", NewUnauthorized("bad token", nil), http.StatusUnauthorized},
		{"permission", NewPermissionDenied("not the owner"), http.StatusForbidden},
		{"internal", NewInternal("boom", errors.New("cause")), http.StatusInternalServerError},
		{"unknown", errors.New("anything"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ToHTTPStatus(tc.err))
		})
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	err := NewNotFound("Profile", "xyz")

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrConflict))
}

func TestNewValidationCarriesViolations(t *testing.T) {
	err := NewValidation(
		FieldViolation{Msg: "Title is required", Param: "title"},
		FieldViolation{Msg: "Company is required", Param: "company"},
	)

	assert.Len(t, err.Violations, 2)
	assert.Equal(t, "title", err.Violations[0].Param)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}
