package models

import (
	"fmt"
	"strings"
	"time"

	apperrors "studereg/pkg/errors"
)

// Student represents a learner registered in the institution. Fields are
// unexported so every mutation goes through a validating setter; the
// repository rehydrates instances from rows via RehydrateStudent.
type Student struct {
	id           int64
	name         string
	age          *int
	course       string
	score        *float64
	registeredAt time.Time
}

// NewStudent builds an unpersisted student, validating name and score.
func NewStudent(name string, age *int, course string, score *float64) (*Student, error) {
	s := &Student{}
	if err := s.SetName(name); err != nil {
		return nil, err
	}
	if err := s.SetScore(score); err != nil {
		return nil, err
	}
	s.SetAge(age)
	s.SetCourse(course)
	return s, nil
}

// RehydrateStudent rebuilds a persisted student from stored values.
func RehydrateStudent(id int64, name string, age *int, course string, score *float64, registeredAt time.Time) (*Student, error) {
	s, err := NewStudent(name, age, course, score)
	if err != nil {
		return nil, err
	}
	s.id = id
	s.registeredAt = registeredAt
	return s, nil
}

// ID returns the store-assigned identifier, zero until persisted.
func (s *Student) ID() int64 { return s.id }

// Persisted reports whether the record has been stored at least once.
func (s *Student) Persisted() bool { return s.id > 0 }

// Name returns the student's full name.
func (s *Student) Name() string { return s.name }

// Age returns the student's age, nil when never informed.
func (s *Student) Age() *int { return s.age }

// Course returns the course name, empty when never informed.
func (s *Student) Course() string { return s.course }

// Score returns the grade, nil meaning ungraded.
func (s *Student) Score() *float64 { return s.score }

// RegisteredAt returns the registration date, zero until persisted.
func (s *Student) RegisteredAt() time.Time { return s.registeredAt }

// SetName replaces the name, rejecting blank values.
func (s *Student) SetName(name string) error {
	if strings.TrimSpace(name) == "" {
		return apperrors.Clone(apperrors.ErrValidation, "name is required and cannot be blank")
	}
	s.name = name
	return nil
}

// SetScore replaces the grade. Nil means ungraded and is always accepted;
// anything else must lie in [0, 10].
func (s *Student) SetScore(score *float64) error {
	if score != nil && (*score < 0 || *score > 10) {
		return apperrors.Clone(apperrors.ErrValidation, fmt.Sprintf("score must be between 0 and 10, got %v", *score))
	}
	s.score = score
	return nil
}

// SetAge replaces the age. The source system never range-checked it.
func (s *Student) SetAge(age *int) { s.age = age }

// SetCourse replaces the course name.
func (s *Student) SetCourse(course string) { s.course = course }

// StudentUpdate is a partial patch; nil fields mean "no change".
type StudentUpdate struct {
	Name   *string
	Age    *int
	Course *string
	Score  *float64
	// ClearScore removes the grade entirely. Score wins when both are set.
	ClearScore bool
}

// Apply validates every supplied field and only then writes any of them, so
// a rejected patch leaves the student untouched.
func (s *Student) Apply(upd StudentUpdate) error {
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		return apperrors.Clone(apperrors.ErrValidation, "name is required and cannot be blank")
	}
	if upd.Score != nil && (*upd.Score < 0 || *upd.Score > 10) {
		return apperrors.Clone(apperrors.ErrValidation, fmt.Sprintf("score must be between 0 and 10, got %v", *upd.Score))
	}

	if upd.Name != nil {
		s.name = *upd.Name
	}
	if upd.Age != nil {
		s.age = upd.Age
	}
	if upd.Course != nil {
		s.course = *upd.Course
	}
	if upd.Score != nil {
		s.score = upd.Score
	} else if upd.ClearScore {
		s.score = nil
	}
	return nil
}

// String renders the student for diagnostics. A zero score is a real grade
// and prints as 0.0; only a nil score is N/A.
func (s *Student) String() string {
	age := "N/A"
	if s.age != nil {
		age = fmt.Sprintf("%d", *s.age)
	}
	course := s.course
	if course == "" {
		course = "N/A"
	}
	score := "N/A"
	if s.score != nil {
		score = fmt.Sprintf("%.1f", *s.score)
	}
	return fmt.Sprintf("Student(id=%d, name=%q, age=%s, course=%q, score=%s)", s.id, s.name, age, course, score)
}
