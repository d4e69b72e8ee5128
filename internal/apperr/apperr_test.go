package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	err := Validation("price must be positive")
	kind, ok := KindOf(err)
	assert.True(t, ok)
	assert.Equal(t, KindValidation, kind)

	wrapped := fmt.Errorf("submit failed: %w", err)
	kind, ok = KindOf(wrapped)
	assert.True(t, ok)
	assert.Equal(t, KindValidation, kind)

	_, ok = KindOf(errors.New("plain"))
	assert.False(t, ok)
}

func TestIs(t *testing.T) {
	err := Conflict("update request already pending")
	assert.True(t, Is(err, KindConflict))
	assert.False(t, Is(err, KindValidation))
	assert.False(t, Is(errors.New("plain"), KindConflict))
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Validation("bad input"), fiber.StatusBadRequest},
		{Forbidden("not yours"), fiber.StatusForbidden},
		{NotFound("missing"), fiber.StatusNotFound},
		{InvalidTransition("already accepted"), fiber.StatusConflict},
		{Conflict("lost the race"), fiber.StatusConflict},
		{errors.New("unknown"), fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, HTTPStatus(tc.err), tc.err.Error())
	}
}

func TestErrorMessage(t *testing.T) {
	err := NotFound("property %s not found", "abc")
	assert.Equal(t, "not_found: property abc not found", err.Error())
}
