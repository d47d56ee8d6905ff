// Package console implements the interactive menu surface: prompts read one
// line at a time from standard input and results render as plain text.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"studereg/internal/models"
)

// Console pairs an input reader with an output writer.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

// New builds a console over the given streams.
func New(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out}
}

// Printf writes formatted output.
func (c *Console) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format, args...)
}

// ReadLine shows a prompt and returns one trimmed input line. io.EOF is
// returned when stdin closes, which callers treat as quit.
func (c *Console) ReadLine(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// ReadOptionalInt reads an integer, returning nil on empty input.
func (c *Console) ReadOptionalInt(prompt string) (*int, error) {
	raw, err := c.ReadLine(prompt)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%q is not a whole number", raw)
	}
	return &v, nil
}

// ReadOptionalFloat reads a number, returning nil on empty input.
func (c *Console) ReadOptionalFloat(prompt string) (*float64, error) {
	raw, err := c.ReadLine(prompt)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%q is not a number", raw)
	}
	return &v, nil
}

// ReadClearableFloat reads a number, returning nil on empty input. The "-"
// sentinel reports clear=true so callers can drop a stored value.
func (c *Console) ReadClearableFloat(prompt string) (*float64, bool, error) {
	raw, err := c.ReadLine(prompt)
	if err != nil {
		return nil, false, err
	}
	switch raw {
	case "":
		return nil, false, nil
	case "-":
		return nil, true, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, false, fmt.Errorf("%q is not a number", raw)
	}
	return &v, false, nil
}

// ReadID reads a required positive identifier.
func (c *Console) ReadID(prompt string) (int64, error) {
	raw, err := c.ReadLine(prompt)
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%q is not a valid id", raw)
	}
	return id, nil
}

// FormatStudent renders one student as a table row. Unset optional fields
// print N/A; a score of exactly 0 prints 0.0 because zero is a real grade.
func FormatStudent(s *models.Student) string {
	age := "N/A"
	if s.Age() != nil {
		age = strconv.Itoa(*s.Age())
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
	return fmt.Sprintf("%-4d %-25s %-5s %-15s %-5s %s", s.ID(), s.Name(), age, course, score, registered)
}

// RenderStudents prints a student table with a title.
func (c *Console) RenderStudents(students []*models.Student, title string) {
	if len(students) == 0 {
		c.Printf("No students found.\n")
		return
	}
	c.Printf("\n%s (%d found)\n", title, len(students))
	c.Printf("%s\n", strings.Repeat("-", 70))
	c.Printf("%-4s %-25s %-5s %-15s %-5s %s\n", "ID", "Name", "Age", "Course", "Score", "Registered")
	c.Printf("%s\n", strings.Repeat("-", 70))
	for _, s := range students {
		c.Printf("%s\n", FormatStudent(s))
	}
}

// RenderStatistics prints the registry aggregate.
func (c *Console) RenderStatistics(stats *models.Statistics) {
	c.Printf("\nREGISTRY STATISTICS\n")
	c.Printf("%s\n", strings.Repeat("-", 40))
	c.Printf("Total students:   %d\n", stats.Total)
	if len(stats.ByCourse) > 0 {
		c.Printf("By course:\n")
		for _, cc := range stats.ByCourse {
			c.Printf("  %-20s %d\n", cc.Course, cc.Count)
		}
	}
	if stats.AverageScore != nil {
		c.Printf("Average score:    %.2f\n", *stats.AverageScore)
	} else {
		c.Printf("Average score:    N/A\n")
	}
	c.Printf("Registered today: %d\n", stats.RegisteredToday)
	if stats.TopStudent != nil {
		c.Printf("Top score:        %s (%.1f)\n", stats.TopStudent.Name, stats.TopStudent.Score)
	} else {
		c.Printf("Top score:        N/A\n")
	}
}

// RenderPeople prints the person list.
func (c *Console) RenderPeople(people []*models.Person) {
	if len(people) == 0 {
		c.Printf("No people registered.\n")
		return
	}
	for _, p := range people {
		c.Printf("%s\n", p)
	}
}
