package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studereg/internal/models"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestFormatStudentZeroScoreIsAGrade(t *testing.T) {
	graded, err := models.NewStudent("Ana", intPtr(20), "CS", floatPtr(0))
	require.NoError(t, err)
	assert.Contains(t, FormatStudent(graded), "0.0")
	assert.NotContains(t, FormatStudent(graded), "N/A")

	ungraded, err := models.NewStudent("Ana", intPtr(20), "CS", nil)
	require.NoError(t, err)
	assert.Contains(t, FormatStudent(ungraded), "N/A")
}

func TestReadLineTrimsInput(t *testing.T) {
	out := &bytes.Buffer{}
	c := New(strings.NewReader("  Ana  \n"), out)

	line, err := c.ReadLine("Name: ")
	require.NoError(t, err)
	assert.Equal(t, "Ana", line)
	assert.Equal(t, "Name: ", out.String())
}

func TestReadOptionalFloat(t *testing.T) {
	c := New(strings.NewReader("\n7.5\nabc\n"), &bytes.Buffer{})

	v, err := c.ReadOptionalFloat("Score: ")
	require.NoError(t, err)
	assert.Nil(t, v, "blank input means unset")

	v, err = c.ReadOptionalFloat("Score: ")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, 7.5, *v)

	_, err = c.ReadOptionalFloat("Score: ")
	assert.Error(t, err)
}

func TestReadClearableFloat(t *testing.T) {
	c := New(strings.NewReader("\n-\n8.5\nabc\n"), &bytes.Buffer{})

	v, clear, err := c.ReadClearableFloat("Score: ")
	require.NoError(t, err)
	assert.Nil(t, v, "blank input means keep")
	assert.False(t, clear)

	v, clear, err = c.ReadClearableFloat("Score: ")
	require.NoError(t, err)
	assert.Nil(t, v)
	assert.True(t, clear, "the dash sentinel drops the stored value")

	v, clear, err = c.ReadClearableFloat("Score: ")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, 8.5, *v)
	assert.False(t, clear)

	_, _, err = c.ReadClearableFloat("Score: ")
	assert.Error(t, err)
}

func TestReadIDRejectsNonPositive(t *testing.T) {
	c := New(strings.NewReader("0\n-3\nx\n12\n"), &bytes.Buffer{})

	for i := 0; i < 3; i++ {
		_, err := c.ReadID("Id: ")
		assert.Error(t, err)
	}

	id, err := c.ReadID("Id: ")
	require.NoError(t, err)
	assert.EqualValues(t, 12, id)
}

func TestRenderStatisticsHandlesEmptyRegistry(t *testing.T) {
	out := &bytes.Buffer{}
	c := New(strings.NewReader(""), out)

	c.RenderStatistics(&models.Statistics{})

	rendered := out.String()
	assert.Contains(t, rendered, "Total students:   0")
	assert.Contains(t, rendered, "Average score:    N/A")
	assert.Contains(t, rendered, "Top score:        N/A")
}
