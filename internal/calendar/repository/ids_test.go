package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestCheckID(t *testing.T) {
	assert.NoError(t, checkID(uuid.NewString()))
	assert.ErrorIs(t, checkID("missing"), gorm.ErrRecordNotFound)
	assert.ErrorIs(t, checkID(""), gorm.ErrRecordNotFound)
}
