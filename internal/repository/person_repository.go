package repository

import (
	"fmt"
	"sync"

	"studereg/internal/models"
	apperrors "studereg/pkg/errors"
)

// PersonRepository keeps people for the lifetime of one interactive
// session. Nothing is written to disk.
type PersonRepository struct {
	mu     sync.Mutex
	people []*models.Person
	nextID int64
}

// NewPersonRepository constructs an empty session store.
func NewPersonRepository() *PersonRepository {
	return &PersonRepository{nextID: 1}
}

// Create assigns the next id and stores the person.
func (r *PersonRepository) Create(person *models.Person) *models.Person {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *person
	stored.ID = r.nextID
	r.nextID++
	r.people = append(r.people, &stored)

	copied := stored
	return &copied
}

// List returns every person in insertion order.
func (r *PersonRepository) List() []*models.Person {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*models.Person, 0, len(r.people))
	for _, p := range r.people {
		copied := *p
		out = append(out, &copied)
	}
	return out
}

// FindByID fetches one person, reporting ErrNotFound when absent.
func (r *PersonRepository) FindByID(id int64) (*models.Person, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.people {
		if p.ID == id {
			copied := *p
			return &copied, nil
		}
	}
	return nil, apperrors.Clone(apperrors.ErrNotFound, fmt.Sprintf("person %d not found", id))
}

// Update overwrites the stored person matching the given id.
func (r *PersonRepository) Update(person *models.Person) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.people {
		if p.ID == person.ID {
			copied := *person
			r.people[i] = &copied
			return true, nil
		}
	}
	return false, apperrors.Clone(apperrors.ErrNotFound, fmt.Sprintf("person %d not found", person.ID))
}

// Remove deletes the person matching the given id.
func (r *PersonRepository) Remove(id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.people {
		if p.ID == id {
			r.people = append(r.people[:i], r.people[i+1:]...)
			return true, nil
		}
	}
	return false, apperrors.Clone(apperrors.ErrNotFound, fmt.Sprintf("person %d not found", id))
}
