package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studereg/internal/postal"
	"studereg/internal/repository"
	apperrors "studereg/pkg/errors"
)

type mockLookup struct {
	known map[string]*postal.Address
}

func (m *mockLookup) Lookup(ctx context.Context, code string) (*postal.Address, error) {
	if addr, ok := m.known[code]; ok {
		return addr, nil
	}
	return nil, apperrors.Clone(apperrors.ErrNotFound, "postal code "+code+" not found")
}

func newPersonService() (*PersonService, *mockLookup) {
	lookup := &mockLookup{known: map[string]*postal.Address{
		"01001000": {Street: "Praça da Sé", District: "Sé", City: "São Paulo", State: "SP"},
	}}
	return NewPersonService(repository.NewPersonRepository(), lookup, nil), lookup
}

func TestPersonServiceCreateEnrichesAddress(t *testing.T) {
	svc, _ := newPersonService()

	person, err := svc.Create(context.Background(), "Ana", "01001000")
	require.NoError(t, err)
	assert.EqualValues(t, 1, person.ID)
	assert.Equal(t, "Praça da Sé - Sé - São Paulo/SP", person.Address)
}

func TestPersonServiceCreateUnknownCodeAborts(t *testing.T) {
	svc, _ := newPersonService()

	_, err := svc.Create(context.Background(), "Ana", "99999999")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.Empty(t, svc.List(), "nothing is stored when the lookup fails")
}

func TestPersonServiceCreateRejectsBlankName(t *testing.T) {
	svc, _ := newPersonService()

	_, err := svc.Create(context.Background(), "  ", "01001000")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}

func TestPersonServiceUpdateReResolvesAddress(t *testing.T) {
	svc, lookup := newPersonService()
	lookup.known["20040030"] = &postal.Address{Street: "Rua da Assembleia", District: "Centro", City: "Rio de Janeiro", State: "RJ"}

	person, err := svc.Create(context.Background(), "Ana", "01001000")
	require.NoError(t, err)

	ok, err := svc.Update(context.Background(), person.ID, "Ana Souza", "20040030")
	require.NoError(t, err)
	assert.True(t, ok)

	people := svc.List()
	require.Len(t, people, 1)
	assert.Equal(t, "Ana Souza", people[0].Name)
	assert.Equal(t, "Rua da Assembleia - Centro - Rio de Janeiro/RJ", people[0].Address)
}

func TestPersonServiceUpdateUnknownCodeKeepsRecord(t *testing.T) {
	svc, _ := newPersonService()

	person, err := svc.Create(context.Background(), "Ana", "01001000")
	require.NoError(t, err)

	ok, err := svc.Update(context.Background(), person.ID, "Ana Souza", "99999999")
	assert.False(t, ok)
	require.Error(t, err)

	people := svc.List()
	require.Len(t, people, 1)
	assert.Equal(t, "Ana", people[0].Name, "failed lookup must not touch the stored person")
}

func TestPersonServiceRemove(t *testing.T) {
	svc, _ := newPersonService()

	person, err := svc.Create(context.Background(), "Ana", "01001000")
	require.NoError(t, err)

	ok, err := svc.Remove(person.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Remove(person.ID)
	assert.False(t, ok)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}
