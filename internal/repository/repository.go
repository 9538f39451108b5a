// Package repository provides the generic gorm persistence path shared by
// every ledger entity.
package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"comptable/internal/database"
	apperrors "comptable/internal/errors"
)

// Scope narrows a query.
type Scope func(db *gorm.DB) *gorm.DB

// Eq matches rows whose column equals value.
func Eq(column string, value any) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(clause.Eq{Column: clause.Column{Name: column}, Value: value})
	}
}

// In matches rows whose column is one of values.
func In[V any](column string, values []V) Scope {
	return func(db *gorm.DB) *gorm.DB {
		vals := make([]any, len(values))
		for i, v := range values {
			vals[i] = v
		}
		return db.Where(clause.IN{Column: clause.Column{Name: column}, Values: vals})
	}
}

// Between matches rows whose column lies in the half-open range [from, to).
func Between(column string, from, to any) Scope {
	return func(db *gorm.DB) *gorm.DB {
		col := clause.Column{Name: column}
		return db.Where(clause.Gte{Column: col, Value: from}).Where(clause.Lt{Column: col, Value: to})
	}
}

// OrderBy sorts by column.
func OrderBy(column string, desc bool) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: desc})
	}
}

// Preload eager-loads the named associations.
func Preload(associations ...string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		for _, a := range associations {
			db = db.Preload(a)
		}
		return db
	}
}

func apply(db *gorm.DB, scopes []Scope) *gorm.DB {
	for _, s := range scopes {
		db = s(db)
	}
	return db
}

// Store is a typed CRUD accessor for one model.
type Store[T any] struct {
	db       *gorm.DB
	notFound *apperrors.AppError
}

// NewStore creates a Store reporting missing rows as notFound.
func NewStore[T any](db *gorm.DB, notFound *apperrors.AppError) *Store[T] {
	return &Store[T]{db: db, notFound: notFound}
}

// WithTx returns a copy of the store bound to tx.
func (s *Store[T]) WithTx(tx *gorm.DB) *Store[T] {
	return &Store[T]{db: tx, notFound: s.notFound}
}

// Create inserts entity and fills in its generated primary key.
func (s *Store[T]) Create(entity *T) error {
	if err := s.db.Create(entity).Error; err != nil {
		return translate(err)
	}
	return nil
}

// Get loads the row with the given primary key.
func (s *Store[T]) Get(id uint, scopes ...Scope) (*T, error) {
	var entity T
	if err := apply(s.db, scopes).First(&entity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, s.notFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &entity, nil
}

// First loads the first row matching scopes.
func (s *Store[T]) First(scopes ...Scope) (*T, error) {
	var entity T
	if err := apply(s.db, scopes).Take(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, s.notFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &entity, nil
}

// Find loads every row matching scopes.
func (s *Store[T]) Find(scopes ...Scope) ([]T, error) {
	var entities []T
	if err := apply(s.db, scopes).Find(&entities).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return entities, nil
}

// Save updates every column of entity.
func (s *Store[T]) Save(entity *T) error {
	if err := s.db.Save(entity).Error; err != nil {
		return translate(err)
	}
	return nil
}

// Delete removes the rows matching scopes and returns how many were removed.
func (s *Store[T]) Delete(scopes ...Scope) (int64, error) {
	result := apply(s.db, scopes).Delete(new(T))
	if result.Error != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	return result.RowsAffected, nil
}

// DeleteByID removes the row with the given primary key.
func (s *Store[T]) DeleteByID(id uint) error {
	result := s.db.Delete(new(T), id)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return s.notFound
	}
	return nil
}

// Count returns the number of rows matching scopes.
func (s *Store[T]) Count(scopes ...Scope) (int64, error) {
	var n int64
	if err := apply(s.db.Model(new(T)), scopes).Count(&n).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return n, nil
}

// Reference names a table column pointing at the row being deleted.
type Reference struct {
	Model  any
	Column string
}

// DeleteUnlessReferenced deletes the T row with the given id inside one
// transaction, unless a row of any reference still points at it.
func DeleteUnlessReferenced[T any](db *gorm.DB, id uint, notFound, inUse *apperrors.AppError, refs ...Reference) error {
	return database.RunInTransaction(db, func(tx *gorm.DB) error {
		store := NewStore[T](tx, notFound)
		if _, err := store.Get(id); err != nil {
			return err
		}
		for _, ref := range refs {
			var n int64
			err := tx.Model(ref.Model).
				Where(clause.Eq{Column: clause.Column{Name: ref.Column}, Value: id}).
				Count(&n).Error
			if err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			if n > 0 {
				return inUse
			}
		}
		return store.DeleteByID(id)
	})
}

// translate maps write failures to AppErrors. users.Login carries the only
// unique key in the schema.
func translate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.Wrap(apperrors.ErrDuplicateLogin, err)
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}
