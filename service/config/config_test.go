package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHardCodedDefaults(t *testing.T) {
	svc := NewHardCoded()

	assert.Equal(t, "./aerial_video.mp4", svc.GetSourcePath())
	assert.Equal(t, "framebyframe.txt", svc.GetResultLogFile())
	assert.Equal(t, 1000, svc.GetLivePeriodMillis())
	assert.Equal(t, PreviewDisabled, svc.GetPreview())
	assert.Equal(t, DataStoreFiles, svc.GetDataStore())
	assert.Equal(t, ClassifierDNN, svc.GetClassifier())
	assert.Empty(t, svc.GetTracingEndpoint())
	assert.NoError(t, validate(svc))
}

func TestEnvDefaultsMatchHardCoded(t *testing.T) {
	svc, err := NewEnv()
	require.NoError(t, err)

	defaults := NewHardCoded()
	assert.Equal(t, defaults.GetSourcePath(), svc.GetSourcePath())
	assert.Equal(t, defaults.GetModelPath(), svc.GetModelPath())
	assert.Equal(t, defaults.GetResultLogFile(), svc.GetResultLogFile())
	assert.Equal(t, defaults.GetLivePeriodMillis(), svc.GetLivePeriodMillis())
	assert.Equal(t, defaults.GetSourceRateHint(), svc.GetSourceRateHint())
	assert.Equal(t, defaults.GetClassifier(), svc.GetClassifier())
	assert.Equal(t, defaults.GetTracingEndpoint(), svc.GetTracingEndpoint())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SOURCE_PATH", "/videos/forest.mp4")
	t.Setenv("LIVE_DEVICE_ID", "2")
	t.Setenv("PREVIEW", "enabled")
	t.Setenv("DATA_STORE", "sqlite")
	t.Setenv("METRICS_PORT", "9102")
	t.Setenv("CLASSIFIER", "fake")
	t.Setenv("TRACING_ENDPOINT", "http://collector:4318/v1/traces")

	svc, err := NewEnv()
	require.NoError(t, err)

	assert.Equal(t, "/videos/forest.mp4", svc.GetSourcePath())
	assert.Equal(t, 2, svc.GetLiveDeviceID())
	assert.Equal(t, PreviewEnabled, svc.GetPreview())
	assert.Equal(t, DataStoreSqlite, svc.GetDataStore())
	assert.Equal(t, 9102, svc.GetMetricsPort())
	assert.Equal(t, ClassifierFake, svc.GetClassifier())
	assert.Equal(t, "http://collector:4318/v1/traces", svc.GetTracingEndpoint())
}

func TestEnvRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "preview", key: "PREVIEW", value: "maybe"},
		{name: "data store", key: "DATA_STORE", value: "redis"},
		{name: "classifier", key: "CLASSIFIER", value: "yolo"},
		{name: "negative period", key: "LIVE_PERIOD_MILLIS", value: "-5"},
		{name: "non numeric device", key: "LIVE_DEVICE_ID", value: "first"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := NewEnv()
			assert.Error(t, err)
		})
	}
}

func TestFileConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
source:
  path: ./clips/wildfire.mp4
  rate_hint: 24
live:
  period_millis: 500
preview: enabled
output:
  result_log: out.txt
model:
  classifier: fake
tracing:
  endpoint: http://collector:4318/v1/traces
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	svc, err := NewFile(path)
	require.NoError(t, err)

	assert.Equal(t, "./clips/wildfire.mp4", svc.GetSourcePath())
	assert.Equal(t, 24.0, svc.GetSourceRateHint())
	assert.Equal(t, 500, svc.GetLivePeriodMillis())
	assert.Equal(t, PreviewEnabled, svc.GetPreview())
	assert.Equal(t, "out.txt", svc.GetResultLogFile())
	assert.Equal(t, ClassifierFake, svc.GetClassifier())
	assert.Equal(t, "http://collector:4318/v1/traces", svc.GetTracingEndpoint())

	// Defaults fill in what the file leaves out
	assert.Equal(t, "./saved-model", svc.GetModelPath())
	assert.Equal(t, DataStoreFiles, svc.GetDataStore())
}

func TestFileConfigErrors(t *testing.T) {
	_, err := NewFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("preview: sometimes\n"), 0644))
	_, err = NewFile(path)
	assert.Error(t, err)
}
