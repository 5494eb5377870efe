package pipeline

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/khaledhikmat/fire-go/model"
	"github.com/khaledhikmat/fire-go/service/config"
)

const quitKey = 'q'

// Previewer is a best-effort live display of the classified frames
type Previewer interface {
	Show(frame gocv.Mat, label model.Label)
	// QuitRequested pumps the display events and reports the quit key
	QuitRequested() bool
	Close() error
}

// NewPreviewer opens a window when preview is enabled and returns a no-op
// previewer otherwise.
func NewPreviewer(preview string) Previewer {
	if preview != config.PreviewEnabled {
		return noopPreviewer{}
	}

	return &windowPreviewer{
		window: gocv.NewWindow("fire-go"),
	}
}

type windowPreviewer struct {
	window *gocv.Window
}

func (p *windowPreviewer) Show(frame gocv.Mat, label model.Label) {
	if frame.Empty() {
		return
	}

	annotated := frame.Clone()
	defer annotated.Close()

	textColor := color.RGBA{0, 255, 0, 0}
	if label == model.Fire {
		textColor = color.RGBA{255, 0, 0, 0}
	}
	gocv.PutText(&annotated, label.String(), image.Pt(10, 30), gocv.FontHersheySimplex, 1.0, textColor, 2)

	p.window.IMShow(annotated)
}

func (p *windowPreviewer) QuitRequested() bool {
	return p.window.WaitKey(1)&0xFF == quitKey
}

func (p *windowPreviewer) Close() error {
	return p.window.Close()
}

type noopPreviewer struct{}

func (noopPreviewer) Show(gocv.Mat, model.Label) {}
func (noopPreviewer) QuitRequested() bool        { return false }
func (noopPreviewer) Close() error               { return nil }
