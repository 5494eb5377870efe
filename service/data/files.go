package data

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/xerrors"

	"github.com/khaledhikmat/fire-go/model"
	"github.com/khaledhikmat/fire-go/service/config"
)

type filesDBService struct {
	CfgSvc config.IService
}

func NewFilesDB(cfgsvc config.IService) (IService, error) {
	if err := os.MkdirAll(cfgsvc.GetStatsFolder(), 0755); err != nil {
		return nil, xerrors.Errorf("creating stats folder: %w", err)
	}

	return &filesDBService{
		CfgSvc: cfgsvc,
	}, nil
}

func (svc *filesDBService) NewError(err interface{}) error {
	return newEntity(toErrorRecord(err), "errors", svc.CfgSvc)
}

func (svc *filesDBService) NewSamplerStats(stats model.SamplerStats) error {
	stats.Timestamp = time.Now().Unix()
	return newEntity(stats, "sampler-stats", svc.CfgSvc)
}

func (svc *filesDBService) NewClassifierStats(stats model.ClassifierStats) error {
	stats.Timestamp = time.Now().Unix()
	return newEntity(stats, "classifier-stats", svc.CfgSvc)
}

func (svc *filesDBService) NewRunStats(stats model.RunStats) error {
	stats.Timestamp = time.Now().Unix()
	return newEntity(stats, "run-stats", svc.CfgSvc)
}

// Classifications arrive once per sampled frame so they are appended as JSON
// lines instead of rewriting an array.
func (svc *filesDBService) NewClassification(classification model.Classification) error {
	line, err := json.Marshal(classification)
	if err != nil {
		return err
	}

	file, err := os.OpenFile(filepath.Join(svc.CfgSvc.GetStatsFolder(), "classifications.jsonl"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = file.Write(append(line, '\n'))
	return err
}

func (svc *filesDBService) RetrieveRunStats() ([]model.RunStats, error) {
	return retrieveEntities[model.RunStats]("run-stats", svc.CfgSvc)
}

func (svc *filesDBService) Close() error {
	return nil
}

type errorRecord struct {
	Timestamp  int64                  `json:"timestamp"`
	Processor  string                 `json:"processor"`
	Inner      string                 `json:"innerError"`
	Message    string                 `json:"message"`
	StackTrace string                 `json:"stackTrace"`
	Misc       map[string]interface{} `json:"misc"`
}

func toErrorRecord(err interface{}) errorRecord {
	record := errorRecord{
		Timestamp:  time.Now().Unix(),
		Processor:  "N/A",
		StackTrace: "N/A",
	}

	switch e := err.(type) {
	case model.CustomError:
		record.Processor = e.Processor
		record.Message = e.Message
		record.StackTrace = e.StackTrace
		record.Misc = e.Misc
		if e.Inner != nil {
			record.Inner = e.Inner.Error()
		}
	case error:
		record.Inner = e.Error()
		record.Message = e.Error()
	default:
		record.Message = fmt.Sprintf("%v", e)
	}

	return record
}

func entityPath(filename string, cfgsvc config.IService) string {
	return filepath.Join(cfgsvc.GetStatsFolder(), fmt.Sprintf("%s.json", filename))
}

func newEntity[T any](entity T, filename string, cfgsvc config.IService) error {
	entities, err := retrieveEntities[T](filename, cfgsvc)
	if err != nil {
		return err
	}

	entities = append(entities, entity)

	data, err := json.MarshalIndent(entities, "", "  ")
	if err != nil {
		return err
	}

	// Write the JSON data to the file (with truncation)
	return os.WriteFile(entityPath(filename, cfgsvc), data, 0644)
}

func retrieveEntities[T any](filename string, cfgsvc config.IService) ([]T, error) {
	entities := []T{}

	data, err := os.ReadFile(entityPath(filename, cfgsvc))
	if os.IsNotExist(err) {
		return entities, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, &entities); err != nil {
		return nil, xerrors.Errorf("decoding %s: %w", filename, err)
	}

	return entities, nil
}
