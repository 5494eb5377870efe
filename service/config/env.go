package config

import (
	"github.com/caarlos0/env/v11"
	"golang.org/x/xerrors"
)

type envService struct {
	ModeMaxShutdownTime int     `env:"MODE_MAX_SHUTDOWN_TIME" envDefault:"5"`
	SourcePath          string  `env:"SOURCE_PATH"            envDefault:"./aerial_video.mp4"`
	SourceRateHint      float64 `env:"SOURCE_RATE_HINT"       envDefault:"30"`
	LiveDeviceID        int     `env:"LIVE_DEVICE_ID"         envDefault:"0"`
	LivePeriodMillis    int     `env:"LIVE_PERIOD_MILLIS"     envDefault:"1000"`
	ModelPath           string  `env:"MODEL_PATH"             envDefault:"./saved-model"`
	Classifier          string  `env:"CLASSIFIER"             envDefault:"dnn"`
	ResultLogFile       string  `env:"RESULT_LOG_FILE"        envDefault:"framebyframe.txt"`
	DetectionsLogFile   string  `env:"DETECTIONS_LOG_FILE"    envDefault:"detections.log"`
	Preview             string  `env:"PREVIEW"                envDefault:"disabled"`
	StatsFolder         string  `env:"STATS_FOLDER"           envDefault:"./stats"`
	DataStore           string  `env:"DATA_STORE"             envDefault:"files"`
	SqlitePath          string  `env:"SQLITE_PATH"            envDefault:"./stats/fire.db"`
	MetricsPort         int     `env:"METRICS_PORT"           envDefault:"0"`
	TracingEndpoint     string  `env:"TRACING_ENDPOINT"`
	LogLevel            string  `env:"LOG_LEVEL"              envDefault:"info"`
	LogFile             string  `env:"LOG_FILE"               envDefault:"fire-go.log"`
}

// NewEnv reads the configuration from environment variables
func NewEnv() (IService, error) {
	svc := &envService{}
	if err := env.Parse(svc); err != nil {
		return nil, xerrors.Errorf("parsing environment: %w", err)
	}

	if err := validate(svc); err != nil {
		return nil, err
	}

	return svc, nil
}

func (svc *envService) GetModeMaxShutdownTime() int  { return svc.ModeMaxShutdownTime }
func (svc *envService) GetSourcePath() string        { return svc.SourcePath }
func (svc *envService) GetSourceRateHint() float64   { return svc.SourceRateHint }
func (svc *envService) GetLiveDeviceID() int         { return svc.LiveDeviceID }
func (svc *envService) GetLivePeriodMillis() int     { return svc.LivePeriodMillis }
func (svc *envService) GetModelPath() string         { return svc.ModelPath }
func (svc *envService) GetClassifier() string        { return svc.Classifier }
func (svc *envService) GetResultLogFile() string     { return svc.ResultLogFile }
func (svc *envService) GetDetectionsLogFile() string { return svc.DetectionsLogFile }
func (svc *envService) GetPreview() string           { return svc.Preview }
func (svc *envService) GetStatsFolder() string       { return svc.StatsFolder }
func (svc *envService) GetDataStore() string         { return svc.DataStore }
func (svc *envService) GetSqlitePath() string        { return svc.SqlitePath }
func (svc *envService) GetMetricsPort() int          { return svc.MetricsPort }
func (svc *envService) GetTracingEndpoint() string   { return svc.TracingEndpoint }
func (svc *envService) GetLogLevel() string          { return svc.LogLevel }
func (svc *envService) GetLogFile() string           { return svc.LogFile }

func validate(svc IService) error {
	switch svc.GetPreview() {
	case PreviewEnabled, PreviewDisabled:
	default:
		return xerrors.Errorf("invalid preview %q: must be %s or %s", svc.GetPreview(), PreviewEnabled, PreviewDisabled)
	}

	switch svc.GetDataStore() {
	case DataStoreFiles, DataStoreSqlite:
	default:
		return xerrors.Errorf("invalid data store %q: must be %s or %s", svc.GetDataStore(), DataStoreFiles, DataStoreSqlite)
	}

	switch svc.GetClassifier() {
	case ClassifierDNN, ClassifierFake:
	default:
		return xerrors.Errorf("invalid classifier %q: must be %s or %s", svc.GetClassifier(), ClassifierDNN, ClassifierFake)
	}

	if svc.GetLivePeriodMillis() < 0 {
		return xerrors.Errorf("invalid live period %dms", svc.GetLivePeriodMillis())
	}

	return nil
}
