package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBatchInputs_FromArgs(t *testing.T) {
	batchFile = ""

	inputs, err := loadBatchInputs([]string{"Acme Corp", "Beta LLC"})
	require.NoError(t, err)
	require.Len(t, inputs, 2)
	assert.Equal(t, "Acme Corp", inputs[0].Name)
	assert.Equal(t, "Beta LLC", inputs[1].Name)
}

func TestLoadBatchInputs_FromCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "companies.csv")
	require.NoError(t, os.WriteFile(path, []byte("name,website\nAcme,https://acme.com\n"), 0o644))

	batchFile = path
	t.Cleanup(func() { batchFile = "" })

	inputs, err := loadBatchInputs(nil)
	require.NoError(t, err)
	require.Len(t, inputs, 1)
	assert.Equal(t, "Acme", inputs[0].Name)
	assert.Equal(t, "https://acme.com", inputs[0].Website)
}

func TestLoadBatchInputs_MissingFile(t *testing.T) {
	batchFile = filepath.Join(t.TempDir(), "nope.csv")
	t.Cleanup(func() { batchFile = "" })

	_, err := loadBatchInputs(nil)
	assert.Error(t, err)
}
