package config

type hardcodedService struct {
}

func NewHardCoded() IService {
	return &hardcodedService{}
}

func (svc *hardcodedService) GetModeMaxShutdownTime() int {
	return 5
}

func (svc *hardcodedService) GetSourcePath() string {
	return "./aerial_video.mp4"
}

func (svc *hardcodedService) GetSourceRateHint() float64 {
	// Only used when the decoder cannot report a frame rate
	return 30
}

func (svc *hardcodedService) GetLiveDeviceID() int {
	return 0
}

func (svc *hardcodedService) GetLivePeriodMillis() int {
	return 1000
}

func (svc *hardcodedService) GetModelPath() string {
	return "./saved-model"
}

func (svc *hardcodedService) GetClassifier() string {
	return ClassifierDNN
}

func (svc *hardcodedService) GetResultLogFile() string {
	return "framebyframe.txt"
}

func (svc *hardcodedService) GetDetectionsLogFile() string {
	return "detections.log"
}

func (svc *hardcodedService) GetPreview() string {
	return PreviewDisabled
}

func (svc *hardcodedService) GetStatsFolder() string {
	return "./stats"
}

func (svc *hardcodedService) GetDataStore() string {
	return DataStoreFiles
}

func (svc *hardcodedService) GetSqlitePath() string {
	return "./stats/fire.db"
}

func (svc *hardcodedService) GetMetricsPort() int {
	// Disabled
	return 0
}

func (svc *hardcodedService) GetTracingEndpoint() string {
	// Disabled
	return ""
}

func (svc *hardcodedService) GetLogLevel() string {
	return "info"
}

func (svc *hardcodedService) GetLogFile() string {
	return "fire-go.log"
}
