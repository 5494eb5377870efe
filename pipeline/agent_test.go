package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"github.com/khaledhikmat/fire-go/model"
	"github.com/khaledhikmat/fire-go/service/inference"
)

func readResultLines(t *testing.T, svcs ServicesFactory) []string {
	t.Helper()
	content, err := os.ReadFile(svcs.CfgSvc.GetResultLogFile())
	require.NoError(t, err)
	if len(content) == 0 {
		return nil
	}
	require.True(t, strings.HasSuffix(string(content), "\n"))
	return strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")
}

func drain(stream chan interface{}) []interface{} {
	var items []interface{}
	for {
		select {
		case v := <-stream:
			items = append(items, v)
		default:
			return items
		}
	}
}

func withConsole(t *testing.T) *bytes.Buffer {
	var out bytes.Buffer
	previous := console
	console = NewConsole(&out)
	t.Cleanup(func() { console = previous })
	return &out
}

func TestAgentLogsOneLabelPerForwardedFrame(t *testing.T) {
	tests := []struct {
		name     string
		scores   []float32
		expected string
	}{
		{name: "always fire", scores: []float32{1, 0}, expected: "fire"},
		{name: "always no fire", scores: []float32{0, 1}, expected: "no fire"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := withConsole(t)
			capture := &fakeCapture{frames: 100, fps: 24}
			svcs := newTestServices(t, capture, tt.scores)
			errorStream := make(chan interface{}, 10)
			statsStream := make(chan interface{}, 10)

			err := Agent(context.Background(), svcs, errorStream, statsStream, model.NewFileSource("clip.mp4", 0))
			require.NoError(t, err)

			// Frames 0, 24, 48, 72 and 96
			lines := readResultLines(t, svcs)
			assert.Equal(t, []string{tt.expected, tt.expected, tt.expected, tt.expected, tt.expected}, lines)
			assert.Equal(t, 5, strings.Count(out.String(), tt.expected+"\n"))
			assert.True(t, capture.closed)
			assert.Empty(t, drain(errorStream))

			stats := drain(statsStream)
			require.Len(t, stats, 3)

			samplerStats := stats[0].(model.SamplerStats)
			assert.Equal(t, 100, samplerStats.Frames)
			assert.Equal(t, 5, samplerStats.Forwarded)
			assert.Equal(t, 24, samplerStats.Step)

			classifierStats := stats[1].(model.ClassifierStats)
			assert.Equal(t, 5, classifierStats.Frames)
			assert.Equal(t, "fake", classifierStats.Name)

			runStats := stats[2].(model.RunStats)
			assert.Equal(t, 5, runStats.Labels)
			assert.Equal(t, samplerStats.RunID, runStats.ID)
			assert.Equal(t, classifierStats.RunID, runStats.ID)
		})
	}
}

func TestAgentLiveSource(t *testing.T) {
	withConsole(t)
	capture := &fakeCapture{frames: 3, fps: 30}
	svcs := newTestServices(t, capture, []float32{0.2, 0.8})

	err := Agent(context.Background(), svcs, nil, nil, model.NewLiveSource(0))
	require.NoError(t, err)

	// Live sources forward every captured frame
	assert.Equal(t, []string{"no fire", "no fire", "no fire"}, readResultLines(t, svcs))
	assert.True(t, capture.closed)
}

func TestAgentEmptyStream(t *testing.T) {
	withConsole(t)
	capture := &fakeCapture{frames: 0, fps: 30}
	svcs := newTestServices(t, capture, []float32{1, 0})

	err := Agent(context.Background(), svcs, nil, nil, model.NewFileSource("empty.mp4", 0))
	require.NoError(t, err)

	assert.FileExists(t, svcs.CfgSvc.GetResultLogFile())
	assert.Empty(t, readResultLines(t, svcs))
	assert.True(t, capture.closed)
}

func TestAgentSourceOpenFailure(t *testing.T) {
	withConsole(t)
	svcs := newTestServices(t, nil, []float32{1, 0})
	svcs.Opener = func(model.Source) (Capturer, error) {
		return nil, errors.New("no such file")
	}
	errorStream := make(chan interface{}, 10)

	err := Agent(context.Background(), svcs, errorStream, nil, model.NewFileSource("missing.mp4", 0))
	assert.Error(t, err)

	assert.FileExists(t, svcs.CfgSvc.GetResultLogFile())
	assert.Empty(t, readResultLines(t, svcs))

	reported := drain(errorStream)
	require.Len(t, reported, 1)
	assert.Equal(t, "agent_sampler", reported[0].(model.CustomError).Processor)
}

func TestAgentClassifierFailureKeepsWrittenResults(t *testing.T) {
	withConsole(t)
	capture := &fakeCapture{frames: 50, fps: 10}
	svcs := newTestServices(t, capture, nil)
	svcs.InferenceSvc = &failingClassifier{IService: inference.NewFake([]float32{1, 0}), failAt: 3}
	errorStream := make(chan interface{}, 10)

	err := Agent(context.Background(), svcs, errorStream, nil, model.NewFileSource("clip.mp4", 0))
	assert.Error(t, err)

	assert.Equal(t, []string{"fire", "fire"}, readResultLines(t, svcs))
	assert.True(t, capture.closed)

	reported := drain(errorStream)
	require.Len(t, reported, 1)
	assert.Equal(t, "agent_classifier", reported[0].(model.CustomError).Processor)
}

func TestAgentStopsOnCancelledContext(t *testing.T) {
	withConsole(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	capture := &fakeCapture{frames: 100, fps: 1}
	svcs := newTestServices(t, capture, []float32{1, 0})

	require.NoError(t, Agent(ctx, svcs, nil, nil, model.NewFileSource("clip.mp4", 0)))

	// The quit signal is observed at the end of the first pass
	assert.Equal(t, []string{"fire"}, readResultLines(t, svcs))
	assert.True(t, capture.closed)
}

type failingClassifier struct {
	inference.IService
	calls  int
	failAt int
}

func (c *failingClassifier) Classify(ctx context.Context, frame gocv.Mat) (model.Classification, error) {
	c.calls++
	if c.calls == c.failAt {
		return model.Classification{}, errors.New("inference failed")
	}
	return c.IService.Classify(ctx, frame)
}
