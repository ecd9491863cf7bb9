package service

import (
	"errors"

	"github.com/bitfantasy/linedash/internal/line/repository"
)

// Errors
var (
	ErrNotFound        = repository.ErrNotFound
	ErrLocked          = errors.New("entry is locked")
	ErrDuplicate       = errors.New("entry already exists")
	ErrInvalidInput    = errors.New("invalid input")
	ErrProductLocked   = errors.New("product selection is locked")
	ErrHourLocked      = errors.New("hour is locked")
	ErrArchiveDisabled = errors.New("report archive is not configured")
)
