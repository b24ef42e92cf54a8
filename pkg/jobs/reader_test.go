package jobs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	input := "Company,Role,Job_Description\n" +
		"Acme, Engineer ,\"Build things.\nShip them.\"\n" +
		",,\n" +
		"Initech,,Write TPS reports\n"

	rows, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	expected := []Row{
		{Index: 1, Company: "Acme", Role: "Engineer", JobDescription: "Build things.\nShip them."},
		{Index: 2},
		{Index: 3, Company: "Initech", JobDescription: "Write TPS reports"},
	}

	if diff := cmp.Diff(expected, rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestParseByteOrderMark(t *testing.T) {
	input := "\xEF\xBB\xBFJob_Description,Company\nQuant role,Jane Street\n"

	rows, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Quant role", rows[0].JobDescription)
	assert.Equal(t, "Jane Street", rows[0].Company)
	assert.Empty(t, rows[0].Role)
}

func TestParseOnlyDescriptionColumn(t *testing.T) {
	rows, err := Parse(strings.NewReader("Job_Description\nSomething\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Empty(t, rows[0].Company)
	assert.Empty(t, rows[0].Role)
}

func TestParseMissingColumn(t *testing.T) {
	_, err := Parse(strings.NewReader("Company,Role,Description\nAcme,Eng,x\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingColumn))
	assert.Contains(t, err.Error(), "Company, Role, Description")
}

func TestParseEmpty(t *testing.T) {
	_, err := Parse(strings.NewReader(""))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingColumn))
}

func TestParseHeaderOnly(t *testing.T) {
	rows, err := Parse(strings.NewReader("Company,Role,Job_Description\n"))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestReadNotFound(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "jobs.csv"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFileNotFound))
}

func TestRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.csv")
	err := os.WriteFile(path, []byte("Company,Role,Job_Description\nAcme,Engineer,Go\n"), 0600)
	require.NoError(t, err)

	rows, err := Read(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Acme", rows[0].Company)
}
