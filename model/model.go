package model

import (
	"fmt"
	"runtime/debug"
	"time"
)

type CustomError struct {
	Processor  string                 `json:"processor"`
	Inner      error                  `json:"innerError"`
	Message    string                 `json:"message"`
	StackTrace string                 `json:"stackTrace"`
	Misc       map[string]interface{} `json:"misc"`
}

func (e CustomError) Error() string {
	if e.Inner == nil {
		return fmt.Sprintf("%s: %s", e.Processor, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Processor, e.Message, e.Inner)
}

func (e CustomError) Unwrap() error {
	return e.Inner
}

func GenError(proc string, err error, misc map[string]interface{}, messagef string, args ...interface{}) CustomError {
	return CustomError{
		Processor:  proc,
		Inner:      err,
		Message:    fmt.Sprintf(messagef, args...),
		StackTrace: string(debug.Stack()),
		Misc:       misc,
	}
}

// Classification is the outcome of running the classifier on one sampled frame
type Classification struct {
	RunID     string        `json:"runId"`
	Frame     int           `json:"frame"`
	Label     Label         `json:"label"`
	Scores    []float32     `json:"scores"`
	ProcTime  time.Duration `json:"procTime"`
	Timestamp int64         `json:"timestamp"`
}

type SamplerStats struct {
	Name      string  `json:"name"`
	RunID     string  `json:"runId"`
	Source    string  `json:"source"`
	Kind      string  `json:"kind"`
	SourceFPS float64 `json:"sourceFps"`
	Step      int     `json:"step"`
	Frames    int     `json:"frames"`
	Forwarded int     `json:"forwarded"`
	Errors    int     `json:"errors"`
	Overruns  int     `json:"overruns"`
	Uptime    int64   `json:"uptime"`
	Timestamp int64   `json:"timestamp"`
}

type ClassifierStats struct {
	Name        string  `json:"name"`
	RunID       string  `json:"runId"`
	Frames      int     `json:"frames"`
	Fire        int     `json:"fire"`
	NoFire      int     `json:"noFire"`
	Errors      int     `json:"errors"`
	AvgProcTime float64 `json:"avgProcTime"`
	Timestamp   int64   `json:"timestamp"`
}

type RunStats struct {
	ID        string `json:"id"`
	Source    string `json:"source"`
	Kind      string `json:"kind"`
	ResultLog string `json:"resultLog"`
	Labels    int    `json:"labels"`
	Uptime    int64  `json:"uptime"`
	Timestamp int64  `json:"timestamp"`
}

// ClassifierInputSize is the square frame size the classifier expects
const ClassifierInputSize = 224
