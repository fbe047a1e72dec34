package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicate         = errors.New("duplicate record")
	ErrForeignKeyMissing = errors.New("referenced record does not exist")
)

// translate maps gorm errors onto the repository sentinels. The database is
// opened with TranslateError so driver-specific constraint errors already
// arrive as gorm sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrForeignKeyMissing
	default:
		return err
	}
}
