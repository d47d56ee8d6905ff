package models

// CourseCount pairs a course name with how many students take it.
type CourseCount struct {
	Course string `db:"course"`
	Count  int    `db:"count"`
}

// TopScore identifies the highest-scoring student.
type TopScore struct {
	Name  string  `db:"name"`
	Score float64 `db:"score"`
}

// Statistics aggregates registry-wide numbers in one structured result.
type Statistics struct {
	Total           int
	ByCourse        []CourseCount
	AverageScore    *float64
	RegisteredToday int
	TopStudent      *TopScore
}
