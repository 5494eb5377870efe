package config

import (
	"github.com/spf13/viper"
	"golang.org/x/xerrors"
)

type fileService struct {
	v *viper.Viper
}

// NewFile reads the configuration from a YAML file. Missing keys fall back to
// the hard-coded defaults.
func NewFile(path string) (IService, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	defaults := NewHardCoded()
	v.SetDefault("mode.max_shutdown_time", defaults.GetModeMaxShutdownTime())
	v.SetDefault("source.path", defaults.GetSourcePath())
	v.SetDefault("source.rate_hint", defaults.GetSourceRateHint())
	v.SetDefault("live.device_id", defaults.GetLiveDeviceID())
	v.SetDefault("live.period_millis", defaults.GetLivePeriodMillis())
	v.SetDefault("model.path", defaults.GetModelPath())
	v.SetDefault("model.classifier", defaults.GetClassifier())
	v.SetDefault("output.result_log", defaults.GetResultLogFile())
	v.SetDefault("output.detections_log", defaults.GetDetectionsLogFile())
	v.SetDefault("preview", defaults.GetPreview())
	v.SetDefault("stats.folder", defaults.GetStatsFolder())
	v.SetDefault("stats.store", defaults.GetDataStore())
	v.SetDefault("stats.sqlite_path", defaults.GetSqlitePath())
	v.SetDefault("metrics.port", defaults.GetMetricsPort())
	v.SetDefault("tracing.endpoint", defaults.GetTracingEndpoint())
	v.SetDefault("log.level", defaults.GetLogLevel())
	v.SetDefault("log.file", defaults.GetLogFile())

	if err := v.ReadInConfig(); err != nil {
		return nil, xerrors.Errorf("reading config file %s: %w", path, err)
	}

	svc := &fileService{v: v}
	if err := validate(svc); err != nil {
		return nil, err
	}

	return svc, nil
}

func (svc *fileService) GetModeMaxShutdownTime() int  { return svc.v.GetInt("mode.max_shutdown_time") }
func (svc *fileService) GetSourcePath() string        { return svc.v.GetString("source.path") }
func (svc *fileService) GetSourceRateHint() float64   { return svc.v.GetFloat64("source.rate_hint") }
func (svc *fileService) GetLiveDeviceID() int         { return svc.v.GetInt("live.device_id") }
func (svc *fileService) GetLivePeriodMillis() int     { return svc.v.GetInt("live.period_millis") }
func (svc *fileService) GetModelPath() string         { return svc.v.GetString("model.path") }
func (svc *fileService) GetClassifier() string        { return svc.v.GetString("model.classifier") }
func (svc *fileService) GetResultLogFile() string     { return svc.v.GetString("output.result_log") }
func (svc *fileService) GetDetectionsLogFile() string { return svc.v.GetString("output.detections_log") }
func (svc *fileService) GetPreview() string           { return svc.v.GetString("preview") }
func (svc *fileService) GetStatsFolder() string       { return svc.v.GetString("stats.folder") }
func (svc *fileService) GetDataStore() string         { return svc.v.GetString("stats.store") }
func (svc *fileService) GetSqlitePath() string        { return svc.v.GetString("stats.sqlite_path") }
func (svc *fileService) GetMetricsPort() int          { return svc.v.GetInt("metrics.port") }
func (svc *fileService) GetTracingEndpoint() string   { return svc.v.GetString("tracing.endpoint") }
func (svc *fileService) GetLogLevel() string          { return svc.v.GetString("log.level") }
func (svc *fileService) GetLogFile() string           { return svc.v.GetString("log.file") }
