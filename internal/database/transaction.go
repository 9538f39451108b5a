package database

import (
	"errors"

	"gorm.io/gorm"

	apperrors "comptable/internal/errors"
	"comptable/internal/logger"
)

// RunInTransaction runs fn inside a transaction on db. The transaction is
// committed when fn returns nil and rolled back when it returns an error or
// panics. Errors that are already an *AppError are returned unchanged; any
// other failure is reported as ErrTransactionFailed carrying its message.
func RunInTransaction(db *gorm.DB, fn func(tx *gorm.DB) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Named("database").Errorw("transaction panicked, rolled back", "panic", r)
			err = apperrors.WithMessage(apperrors.ErrTransactionFailed, panicMessage(r))
		}
	}()

	err = db.Transaction(fn)
	if err == nil {
		return nil
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}

	logger.Named("database").Warnw("transaction rolled back", "error", err)
	failed := apperrors.Wrap(apperrors.ErrTransactionFailed, err)
	failed.Message = err.Error()
	return failed
}

func panicMessage(r any) string {
	switch v := r.(type) {
	case error:
		return v.Error()
	case string:
		return v
	default:
		return apperrors.ErrTransactionFailed.Message
	}
}
