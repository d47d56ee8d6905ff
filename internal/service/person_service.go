package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"studereg/internal/models"
	"studereg/internal/postal"
	apperrors "studereg/pkg/errors"
)

type personRepository interface {
	Create(person *models.Person) *models.Person
	List() []*models.Person
	FindByID(id int64) (*models.Person, error)
	Update(person *models.Person) (bool, error)
	Remove(id int64) (bool, error)
}

type postalLookup interface {
	Lookup(ctx context.Context, code string) (*postal.Address, error)
}

// PersonService registers people, always resolving the postal code before
// any write. An unknown code aborts the operation.
type PersonService struct {
	repo   personRepository
	postal postalLookup
	logger *zap.Logger
}

// NewPersonService constructs the person service.
func NewPersonService(repo personRepository, lookup postalLookup, logger *zap.Logger) *PersonService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PersonService{repo: repo, postal: lookup, logger: logger}
}

// Create resolves the postal code and stores the person with the formatted
// address attached.
func (s *PersonService) Create(ctx context.Context, name, code string) (*models.Person, error) {
	person := &models.Person{Name: name, PostalCode: code}
	if err := person.Validate(); err != nil {
		return nil, apperrors.FromError(err)
	}
	addr, err := s.postal.Lookup(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Clone(apperrors.ErrNotFound, "postal code not found")
		}
		s.logger.Error("postal lookup failed", zap.String("code", code), zap.Error(err))
		return nil, apperrors.FromError(err)
	}
	person.Address = addr.Format()
	return s.repo.Create(person), nil
}

// List returns every person registered in this session.
func (s *PersonService) List() []*models.Person {
	return s.repo.List()
}

// Update replaces name and postal code, re-resolving the address first.
func (s *PersonService) Update(ctx context.Context, id int64, name, code string) (bool, error) {
	person, err := s.repo.FindByID(id)
	if err != nil {
		return false, apperrors.FromError(err)
	}
	person.Name = name
	person.PostalCode = code
	if err := person.Validate(); err != nil {
		return false, apperrors.FromError(err)
	}
	addr, err := s.postal.Lookup(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, apperrors.Clone(apperrors.ErrNotFound, "postal code not found")
		}
		s.logger.Error("postal lookup failed", zap.String("code", code), zap.Error(err))
		return false, apperrors.FromError(err)
	}
	person.Address = addr.Format()
	return s.repo.Update(person)
}

// Remove deletes a person by id.
func (s *PersonService) Remove(id int64) (bool, error) {
	ok, err := s.repo.Remove(id)
	if err != nil {
		return false, apperrors.FromError(err)
	}
	return ok, nil
}
