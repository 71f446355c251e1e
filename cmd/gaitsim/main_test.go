package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/gaitsim/internal/config"
	"github.com/san-kum/gaitsim/internal/storage"
)

func setup(t *testing.T) {
	t.Helper()
	prefs = config.Preferences{LogLevel: "error", RunsDir: t.TempDir(), Workers: 2}
	log = zerolog.Nop()
	noSave = false
	channels = nil
	outFile = ""
	format = "json"
}

func runCommand() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Flags().Float64Var(&dt, "dt", 0, "")
	cmd.Flags().Float64Var(&duration, "time", 0, "")
	cmd.Flags().StringVar(&integrator, "integrator", "", "")
	return cmd
}

func TestLoadDocumentPresetAndFile(t *testing.T) {
	setup(t)
	doc, name, err := loadDocument("knee")
	require.NoError(t, err)
	assert.Equal(t, "knee", name)
	assert.NotEmpty(t, doc.Bodies)

	path := filepath.Join(t.TempDir(), "my_knee.yaml")
	require.NoError(t, config.Save(path, doc))
	fromFile, name, err := loadDocument(path)
	require.NoError(t, err)
	assert.Equal(t, "my_knee", name)
	assert.Equal(t, doc.Global.Dt, fromFile.Global.Dt)

	_, _, err = loadDocument("hip")
	assert.ErrorContains(t, err, "no such file or preset")
}

func TestApplyOverrides(t *testing.T) {
	setup(t)
	cmd := runCommand()
	require.NoError(t, cmd.Flags().Set("time", "0.05"))
	require.NoError(t, cmd.Flags().Set("integrator", "euler"))

	doc := config.GetPreset("knee")
	before := doc.Global.Dt
	applyOverrides(cmd, doc)
	assert.Equal(t, 0.05, doc.Global.Duration)
	assert.Equal(t, "euler", doc.Global.Integrator)
	assert.Equal(t, before, doc.Global.Dt)
}

func TestRunStoresAndExports(t *testing.T) {
	setup(t)
	cmd := runCommand()
	require.NoError(t, cmd.Flags().Set("time", "0.02"))
	require.NoError(t, runModels(cmd, []string{"knee"}))

	runs, err := store().List()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "knee", runs[0].Model)
	assert.Equal(t, 20, runs[0].Steps)
	_, err = os.Stat(filepath.Join(prefs.RunsDir, runs[0].ID, "run.log"))
	assert.NoError(t, err)

	outFile = filepath.Join(t.TempDir(), "run.json")
	require.NoError(t, exportRun(nil, []string{runs[0].ID[:8]}))

	raw, err := os.ReadFile(outFile)
	require.NoError(t, err)
	var data storage.ExportData
	require.NoError(t, json.Unmarshal(raw, &data))
	assert.Len(t, data.Times, 21)
	assert.Contains(t, data.Series, "Knee.angle")
}

func TestRunBatch(t *testing.T) {
	setup(t)
	cmd := runCommand()
	require.NoError(t, cmd.Flags().Set("time", "0.01"))
	require.NoError(t, runModels(cmd, []string{"knee", "ankle"}))

	runs, err := store().List()
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestValidateReportsFailures(t *testing.T) {
	setup(t)
	assert.NoError(t, validateModels(nil, []string{"knee", "leg"}))
	assert.ErrorContains(t, validateModels(nil, []string{"knee", "hip"}), "1 of 2 models failed")
}
