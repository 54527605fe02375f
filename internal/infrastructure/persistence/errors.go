package persistence

import (
	"errors"

	"github.com/pressworks/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// translateError maps GORM's translated driver errors onto domain errors.
// Other errors pass through unchanged.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.ErrConflict
	}
	return err
}
