package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslateNotFound(t *testing.T) {
	err := translateNotFound(gorm.ErrRecordNotFound, "Placement not found")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "Placement not found", err.Error())

	other := errors.New("connection refused")
	assert.Same(t, other, translateNotFound(other, "ignored"))

	wrapped := fmt.Errorf("lookup: %w", notFound("Event not found"))
	var nf *NotFoundError
	assert.True(t, errors.As(wrapped, &nf))
	assert.Equal(t, "Event not found", nf.Message)
}
