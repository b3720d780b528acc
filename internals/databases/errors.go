package database

import (
	"errors"

	"gorm.io/gorm"

	"iescms_backend/internals/helpers/apperr"
)

// TranslateError maps a storage error onto the apperr taxonomy.
// Pass resource/id so NotFound and Conflict say what was missing.
func TranslateError(op, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return err
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFound(resource, id)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperr.Conflict(resource, id, "already exists")
	default:
		// termasuk context deadline/cancel & koneksi putus
		return apperr.Unavailable(op, err)
	}
}
