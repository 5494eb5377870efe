package pipeline

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khaledhikmat/fire-go/model"
)

func TestRecorderWritesOneLabelPerLine(t *testing.T) {
	dir := t.TempDir()
	resultPath := filepath.Join(dir, "framebyframe.txt")
	detectionsPath := filepath.Join(dir, "detections.log")

	// Left over from a previous run
	require.NoError(t, os.WriteFile(resultPath, []byte("stale\nstale\n"), 0644))

	recorder, err := NewRecorder(resultPath, detectionsPath)
	require.NoError(t, err)

	labels := []model.Label{model.Fire, model.NoFire, model.NoFire, model.Fire}
	for i, label := range labels {
		require.NoError(t, recorder.Record(model.Classification{Frame: i * 30, Label: label, Scores: []float32{0.5, 0.5}}))
	}
	assert.Equal(t, len(labels), recorder.Lines())
	require.NoError(t, recorder.Close())

	content, err := os.ReadFile(resultPath)
	require.NoError(t, err)
	assert.Equal(t, "fire\nno fire\nno fire\nfire\n", string(content))

	detections, err := os.ReadFile(detectionsPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(detections)), "\n")
	require.Len(t, lines, len(labels))
	assert.Contains(t, lines[1], `"label":"no fire"`)
	assert.Contains(t, lines[3], `"frame":90`)
}

func TestRecorderWithoutDetectionsLog(t *testing.T) {
	resultPath := filepath.Join(t.TempDir(), "out.txt")
	recorder, err := NewRecorder(resultPath, "")
	require.NoError(t, err)
	require.NoError(t, recorder.Record(model.Classification{Label: model.NoFire}))
	require.NoError(t, recorder.Close())

	content, err := os.ReadFile(resultPath)
	require.NoError(t, err)
	assert.Equal(t, "no fire\n", string(content))
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }
func (brokenWriter) Close() error              { return nil }

func TestRecorderDetectionsFailureKeepsResultLine(t *testing.T) {
	resultPath := filepath.Join(t.TempDir(), "out.txt")
	recorder, err := NewRecorder(resultPath, "")
	require.NoError(t, err)
	recorder.detections = brokenWriter{}

	require.NoError(t, recorder.Record(model.Classification{Label: model.Fire}))
	require.NoError(t, recorder.Record(model.Classification{Label: model.NoFire}))
	assert.Equal(t, 2, recorder.Lines())
	require.NoError(t, recorder.Close())

	content, err := os.ReadFile(resultPath)
	require.NoError(t, err)
	assert.Equal(t, "fire\nno fire\n", string(content))
}

func TestRecorderBadPath(t *testing.T) {
	_, err := NewRecorder(filepath.Join(t.TempDir(), "missing", "out.txt"), "")
	assert.Error(t, err)
}

func TestConsolePrintsLabels(t *testing.T) {
	color.NoColor = true
	var out bytes.Buffer
	c := NewConsole(&out)

	c.Print(model.Fire)
	c.Print(model.NoFire)

	assert.Equal(t, "fire\nno fire\n", out.String())
}
