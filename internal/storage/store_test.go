package storage

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/gaitsim/internal/sim"
)

func testResult() *sim.Result {
	return &sim.Result{
		Times:      []float64{0, 0.001, 0.002},
		Channels:   []string{"Calf.length", "Knee.stop_torque"},
		Samples:    [][]float64{{0.6, 0}, {0.61, 12.5}, {0.6234567891234, -3}},
		Metrics:    map[string]float64{"Knee.stop_torque.peak": 12.5},
		StepsTaken: 2,
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	id, dir, err := st.Create()
	require.NoError(t, err)
	assert.Len(t, id, 36)
	assert.DirExists(t, dir)

	meta := RunMetadata{ID: id, Model: "knee", Dt: 0.001, Duration: 0.002, Integrator: "rk4"}
	require.NoError(t, st.Save(meta, testResult(), []byte("global: {}\n")))

	loaded, err := st.Load(id)
	require.NoError(t, err)
	assert.Equal(t, "knee", loaded.Model)
	assert.Equal(t, 2, loaded.Steps)
	assert.Equal(t, []string{"Calf.length", "Knee.stop_torque"}, loaded.Channels)
	assert.Equal(t, 12.5, loaded.Metrics["Knee.stop_torque.peak"])
	assert.False(t, loaded.Timestamp.IsZero())

	result, err := st.LoadChannels(id)
	require.NoError(t, err)
	assert.Equal(t, testResult().Times, result.Times)
	assert.Equal(t, testResult().Samples, result.Samples)
	col, ok := result.Column("Knee.stop_torque")
	require.True(t, ok)
	assert.Equal(t, []float64{0, 12.5, -3}, col)

	doc, err := st.Document(id)
	require.NoError(t, err)
	assert.Equal(t, "global: {}\n", string(doc))
}

func TestStoreSaveRequiresID(t *testing.T) {
	st := New(t.TempDir())
	assert.Error(t, st.Save(RunMetadata{}, testResult(), nil))
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var ids []string
	for i, name := range []string{"leg", "knee"} {
		id, _, err := st.Create()
		require.NoError(t, err)
		meta := RunMetadata{ID: id, Model: name, Timestamp: base.Add(time.Duration(i) * time.Minute)}
		require.NoError(t, st.Save(meta, testResult(), nil))
		ids = append(ids, id)
	}
	require.NoError(t, os.WriteFile(filepath.Join(st.baseDir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(st.baseDir, "broken"), 0755))

	runs, err := st.List()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "leg", runs[0].Model)
	assert.Equal(t, ids[1], runs[1].ID)
}

func TestStoreListMissingDir(t *testing.T) {
	runs, err := New(filepath.Join(t.TempDir(), "none")).List()
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestStoreResolve(t *testing.T) {
	st := New(t.TempDir())
	for _, id := range []string{"abc123", "abd456"} {
		require.NoError(t, st.Save(RunMetadata{ID: id}, testResult(), nil))
	}

	id, err := st.Resolve("abc")
	require.NoError(t, err)
	assert.Equal(t, "abc123", id)

	id, err = st.Resolve("abd456")
	require.NoError(t, err)
	assert.Equal(t, "abd456", id)

	_, err = st.Resolve("ab")
	assert.ErrorIs(t, err, ErrAmbiguous)

	_, err = st.Resolve("zz")
	assert.ErrorIs(t, err, ErrRunNotFound)

	_, err = st.Load("zz")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestExportJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportJSON(&buf, RunMetadata{ID: "r1", Model: "knee"}, testResult()))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "knee", got["model"])
	assert.Equal(t, float64(2), got["steps"])
	series := got["series"].(map[string]any)
	assert.Equal(t, []any{0.6, 0.61, 0.6234567891234}, series["Calf.length"])
}
