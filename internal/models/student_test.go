package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "studereg/pkg/errors"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func strPtr(v string) *string     { return &v }

func TestNewStudentRejectsBlankName(t *testing.T) {
	for _, name := range []string{"", " ", "\t", "   \n"} {
		_, err := NewStudent(name, nil, "", nil)
		require.Error(t, err, "name %q should be rejected", name)
		assert.True(t, errors.Is(err, apperrors.ErrValidation))
	}
}

func TestNewStudentScoreBounds(t *testing.T) {
	for _, score := range []float64{0, 10, 5.5} {
		s, err := NewStudent("Ana", nil, "", floatPtr(score))
		require.NoError(t, err, "score %v should be accepted", score)
		require.NotNil(t, s.Score())
		assert.Equal(t, score, *s.Score())
	}

	for _, score := range []float64{-0.1, 10.1, -5, 100} {
		_, err := NewStudent("Ana", nil, "", floatPtr(score))
		require.Error(t, err, "score %v should be rejected", score)
		assert.True(t, errors.Is(err, apperrors.ErrValidation))
	}
}

func TestNewStudentNilScoreMeansUngraded(t *testing.T) {
	s, err := NewStudent("Ana", nil, "", nil)
	require.NoError(t, err)
	assert.Nil(t, s.Score())
	assert.False(t, s.Persisted())
	assert.EqualValues(t, 0, s.ID())
}

func TestSetScoreRevalidatesOnMutation(t *testing.T) {
	s, err := NewStudent("Ana", nil, "CS", floatPtr(8))
	require.NoError(t, err)

	require.Error(t, s.SetScore(floatPtr(11)))
	require.NotNil(t, s.Score())
	assert.Equal(t, 8.0, *s.Score())

	require.NoError(t, s.SetScore(nil))
	assert.Nil(t, s.Score())
}

func TestApplyLeavesOmittedFieldsUntouched(t *testing.T) {
	s, err := NewStudent("Ana", intPtr(20), "CS", floatPtr(9))
	require.NoError(t, err)

	require.NoError(t, s.Apply(StudentUpdate{Name: strPtr("Ana Souza")}))
	assert.Equal(t, "Ana Souza", s.Name())
	require.NotNil(t, s.Age())
	assert.Equal(t, 20, *s.Age())
	assert.Equal(t, "CS", s.Course())
	require.NotNil(t, s.Score())
	assert.Equal(t, 9.0, *s.Score())
}

func TestApplyRejectsWithoutPartialWrites(t *testing.T) {
	s, err := NewStudent("Ana", nil, "CS", floatPtr(9))
	require.NoError(t, err)

	err = s.Apply(StudentUpdate{Name: strPtr("Bruno"), Score: floatPtr(42)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
	assert.Equal(t, "Ana", s.Name(), "rejected patch must not change any field")
	assert.Equal(t, 9.0, *s.Score())

	err = s.Apply(StudentUpdate{Name: strPtr("  ")})
	require.Error(t, err)
	assert.Equal(t, "Ana", s.Name())
}

func TestApplyClearScore(t *testing.T) {
	s, err := NewStudent("Ana", nil, "", floatPtr(7))
	require.NoError(t, err)

	require.NoError(t, s.Apply(StudentUpdate{ClearScore: true}))
	assert.Nil(t, s.Score())
}

func TestRehydrateStudentCarriesIdentity(t *testing.T) {
	registered := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	s, err := RehydrateStudent(7, "Carla", nil, "", nil, registered)
	require.NoError(t, err)
	assert.True(t, s.Persisted())
	assert.EqualValues(t, 7, s.ID())
	assert.Equal(t, registered, s.RegisteredAt())
}

func TestStringZeroScoreIsNotAbsent(t *testing.T) {
	graded, err := NewStudent("Ana", nil, "", floatPtr(0))
	require.NoError(t, err)
	assert.Contains(t, graded.String(), "score=0.0")

	ungraded, err := NewStudent("Ana", nil, "", nil)
	require.NoError(t, err)
	assert.Contains(t, ungraded.String(), "score=N/A")
}
