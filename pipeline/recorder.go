package pipeline

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"

	"github.com/natefinch/lumberjack"
	"golang.org/x/xerrors"

	"github.com/khaledhikmat/fire-go/model"
	"github.com/khaledhikmat/fire-go/service/lgr"
)

// Recorder writes one label per line to the result log, in processing
// order, and every classification as a JSON line to the rotated detections
// log.
type Recorder struct {
	results    *os.File
	detections io.WriteCloser
	lines      int
}

// NewRecorder creates or truncates the result log. An empty detections path
// disables the detections log.
func NewRecorder(resultPath, detectionsPath string) (*Recorder, error) {
	results, err := os.Create(resultPath)
	if err != nil {
		return nil, xerrors.Errorf("error creating result log: %w", err)
	}

	r := &Recorder{results: results}
	if detectionsPath != "" {
		r.detections = &lumberjack.Logger{
			Filename:   detectionsPath,
			MaxSize:    10, // MB
			MaxBackups: 5,
			MaxAge:     7,    // days
			Compress:   true, // compress old logs
		}
	}

	return r, nil
}

// Record appends the label of a classification. Each line hits the file
// before Record returns so a crash keeps what was already written. Only the
// result log can fail a record; detections log failures are logged.
func (r *Recorder) Record(classification model.Classification) error {
	if _, err := r.results.WriteString(classification.Label.String() + "\n"); err != nil {
		return xerrors.Errorf("error writing result log: %w", err)
	}
	r.lines++

	if r.detections == nil {
		return nil
	}

	line, err := json.Marshal(classification)
	if err == nil {
		_, err = r.detections.Write(append(line, '\n'))
	}
	if err != nil {
		lgr.Logger.Warn(
			"error writing detections log",
			slog.Int("frame", classification.Frame),
			slog.Any("error", err),
		)
	}

	return nil
}

func (r *Recorder) Lines() int {
	return r.lines
}

func (r *Recorder) Close() error {
	var detectionsErr error
	if r.detections != nil {
		detectionsErr = r.detections.Close()
	}

	if err := r.results.Close(); err != nil {
		return err
	}
	return detectionsErr
}
