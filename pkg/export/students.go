package export

import (
	"fmt"

	"studereg/internal/models"
)

// StudentDataset maps students into the tabular export shape. Unset
// optional fields render as N/A; a zero score is a grade, not an absence.
func StudentDataset(students []*models.Student) Dataset {
	data := Dataset{
		Headers: []string{"ID", "Name", "Age", "Course", "Score", "Registered"},
	}
	for _, s := range students {
		age := "N/A"
		if s.Age() != nil {
			age = fmt.Sprintf("%d", *s.Age())
		}
		course := s.Course()
		if course == "" {
			course = "N/A"
		}
		score := "N/A"
		if s.Score() != nil {
			score = fmt.Sprintf("%.1f", *s.Score())
		}
		registered := ""
		if !s.RegisteredAt().IsZero() {
			registered = s.RegisteredAt().Format("2006-01-02")
		}
		data.Rows = append(data.Rows, []string{
			fmt.Sprintf("%d", s.ID()), s.Name(), age, course, score, registered,
		})
	}
	return data
}

// StatisticsDataset flattens the registry aggregate into metric/value rows.
func StatisticsDataset(stats *models.Statistics) Dataset {
	data := Dataset{Headers: []string{"Metric", "Value"}}
	data.Rows = append(data.Rows, []string{"Total students", fmt.Sprintf("%d", stats.Total)})
	for _, cc := range stats.ByCourse {
		data.Rows = append(data.Rows, []string{"Course " + cc.Course, fmt.Sprintf("%d", cc.Count)})
	}
	avg := "N/A"
	if stats.AverageScore != nil {
		avg = fmt.Sprintf("%.2f", *stats.AverageScore)
	}
	data.Rows = append(data.Rows, []string{"Average score", avg})
	data.Rows = append(data.Rows, []string{"Registered today", fmt.Sprintf("%d", stats.RegisteredToday)})
	top := "N/A"
	if stats.TopStudent != nil {
		top = fmt.Sprintf("%s (%.1f)", stats.TopStudent.Name, stats.TopStudent.Score)
	}
	data.Rows = append(data.Rows, []string{"Top score", top})
	return data
}
