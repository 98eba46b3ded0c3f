package repositories

import (
	"errors"
	"strings"

	"sick-fits/constants"

	"gorm.io/gorm"
)

var (
	ErrNotFound     = errors.New(constants.ErrRecordNotFound)
	ErrDuplicateKey = errors.New("duplicate key")
)

// translate maps gorm errors onto the package sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey),
		strings.Contains(err.Error(), "duplicate"),
		strings.Contains(err.Error(), "UNIQUE constraint"):
		return ErrDuplicateKey
	}
	return err
}
