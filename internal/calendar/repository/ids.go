package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// checkID rejects ids postgres would fail to cast to uuid, reporting them as
// missing rows.
func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return gorm.ErrRecordNotFound
	}
	return nil
}
