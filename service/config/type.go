package config

const (
	PreviewEnabled  = "enabled"
	PreviewDisabled = "disabled"

	DataStoreFiles  = "files"
	DataStoreSqlite = "sqlite"

	ClassifierDNN  = "dnn"
	ClassifierFake = "fake"
)

type IService interface {
	GetModeMaxShutdownTime() int
	GetSourcePath() string
	GetSourceRateHint() float64
	GetLiveDeviceID() int
	GetLivePeriodMillis() int
	GetModelPath() string
	GetClassifier() string
	GetResultLogFile() string
	GetDetectionsLogFile() string
	GetPreview() string
	GetStatsFolder() string
	GetDataStore() string
	GetSqlitePath() string
	GetMetricsPort() int
	GetTracingEndpoint() string
	GetLogLevel() string
	GetLogFile() string
}
