package pipeline

import (
	"io"

	"github.com/fatih/color"

	"github.com/khaledhikmat/fire-go/model"
)

// Console prints labels as they are produced
type Console struct {
	out    io.Writer
	fire   *color.Color
	noFire *color.Color
}

func NewConsole(out io.Writer) *Console {
	return &Console{
		out:    out,
		fire:   color.New(color.FgRed, color.Bold),
		noFire: color.New(color.FgGreen),
	}
}

func (c *Console) Print(label model.Label) {
	if label == model.Fire {
		c.fire.Fprintln(c.out, label)
		return
	}
	c.noFire.Fprintln(c.out, label)
}
