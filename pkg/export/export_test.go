package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporterRender(t *testing.T) {
	data := Dataset{
		Headers: []string{"ID", "Name", "Amount"},
		Rows: [][]string{
			{"1", "Asha Verma", "500.00"},
			{"2", "Rahul Nair", "1500.00"},
		},
	}

	out, err := NewCSVExporter().Render(data)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "ID,Name,Amount", lines[0])
	assert.Equal(t, "2,Rahul Nair,1500.00", lines[2])
}

func TestCSVExporterRejectsHeaderlessDataset(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestCSVExporterRejectsRaggedRows(t *testing.T) {
	data := Dataset{
		Headers: []string{"ID", "Name"},
		Rows:    [][]string{{"1"}},
	}
	_, err := NewCSVExporter().Render(data)
	assert.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	data := Dataset{
		Title:   "Enrollments",
		Headers: []string{"ID", "Name"},
		Rows:    [][]string{{"1", "Asha Verma"}},
	}

	out, err := NewPDFExporter().Render(data)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "%PDF"))
}

func TestPDFExporterRejectsHeaderlessDataset(t *testing.T) {
	_, err := NewPDFExporter().Render(Dataset{})
	assert.Error(t, err)
}
