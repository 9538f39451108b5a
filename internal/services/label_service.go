package services

import (
	"cmp"
	"slices"
	"strings"

	"gorm.io/gorm"

	apperrors "comptable/internal/errors"
	"comptable/internal/logger"
	"comptable/internal/models"
	"comptable/internal/repository"
)

// labelPtr constrains PT to a pointer to a label model.
type labelPtr[T any] interface {
	*T
	models.Label
}

// labelService handles the name-only reference entities.
type labelService[T any, PT labelPtr[T]] struct {
	db       *gorm.DB
	store    *repository.Store[T]
	kind     string
	notFound *apperrors.AppError
	inUse    *apperrors.AppError
	refs     []repository.Reference
}

// NewEstablishmentService creates the LabelServicer for establishments.
// Establishments referenced by an account cannot be deleted.
func NewEstablishmentService(db *gorm.DB) LabelServicer[models.Establishment] {
	return newLabelService[models.Establishment](db, "establishment",
		apperrors.ErrEstablishmentNotFound, apperrors.ErrEstablishmentInUse,
		repository.Reference{Model: &models.Account{}, Column: models.ColAccountEstablishment})
}

// NewAccountTypeService creates the LabelServicer for account types.
// Types referenced by an account cannot be deleted.
func NewAccountTypeService(db *gorm.DB) LabelServicer[models.AccountType] {
	return newLabelService[models.AccountType](db, "account type",
		apperrors.ErrAccountTypeNotFound, apperrors.ErrAccountTypeInUse,
		repository.Reference{Model: &models.Account{}, Column: models.ColAccountType})
}

// NewCategoryService creates the LabelServicer for categories.
// Categories referenced by an operation cannot be deleted.
func NewCategoryService(db *gorm.DB) LabelServicer[models.Category] {
	return newLabelService[models.Category](db, "category",
		apperrors.ErrCategoryNotFound, apperrors.ErrCategoryInUse,
		repository.Reference{Model: &models.Operation{}, Column: models.ColOperationCategory})
}

func newLabelService[T any, PT labelPtr[T]](db *gorm.DB, kind string, notFound, inUse *apperrors.AppError, refs ...repository.Reference) *labelService[T, PT] {
	return &labelService[T, PT]{
		db:       db,
		store:    repository.NewStore[T](db, notFound),
		kind:     kind,
		notFound: notFound,
		inUse:    inUse,
		refs:     refs,
	}
}

// List returns every label ordered by name.
func (s *labelService[T, PT]) List() ([]T, error) {
	items, err := s.store.Find()
	if err != nil {
		return nil, err
	}
	sortLabels[T, PT](items)
	return items, nil
}

// Get returns the label with the given id.
func (s *labelService[T, PT]) Get(id uint) (*T, error) {
	return s.store.Get(id)
}

// Create adds a label.
func (s *labelService[T, PT]) Create(name string) (*T, error) {
	name, err := s.validName(name)
	if err != nil {
		return nil, err
	}

	item := new(T)
	PT(item).SetLabelName(name)
	if err := s.store.Create(item); err != nil {
		return nil, err
	}

	logger.Named("labels").Infow("label created", "kind", s.kind, "id", PT(item).LabelID(), "name", name)
	return item, nil
}

// Rename changes the name of a label.
func (s *labelService[T, PT]) Rename(id uint, name string) (*T, error) {
	name, err := s.validName(name)
	if err != nil {
		return nil, err
	}

	item, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	PT(item).SetLabelName(name)
	if err := s.store.Save(item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes a label that nothing references.
func (s *labelService[T, PT]) Delete(id uint) error {
	err := repository.DeleteUnlessReferenced[T](s.db, id, s.notFound, s.inUse, s.refs...)
	if err != nil {
		return err
	}
	logger.Named("labels").Infow("label deleted", "kind", s.kind, "id", id)
	return nil
}

func (s *labelService[T, PT]) validName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, s.kind+" name is required")
	}
	if len(name) > 255 {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, s.kind+" name is too long")
	}
	return name, nil
}

func sortLabels[T any, PT labelPtr[T]](items []T) {
	slices.SortStableFunc(items, func(a, b T) int {
		return cmp.Compare(strings.ToLower(PT(&a).LabelName()), strings.ToLower(PT(&b).LabelName()))
	})
}
