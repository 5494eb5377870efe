package data

import "github.com/khaledhikmat/fire-go/model"

type IService interface {
	NewError(err interface{}) error
	NewSamplerStats(stats model.SamplerStats) error
	NewClassifierStats(stats model.ClassifierStats) error
	NewRunStats(stats model.RunStats) error
	NewClassification(classification model.Classification) error

	RetrieveRunStats() ([]model.RunStats, error)
	Close() error
}
