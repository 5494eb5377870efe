package model

import (
	"encoding/json"
	"fmt"

	"golang.org/x/xerrors"
)

// Label is the classifier verdict for a single frame.
type Label int

const (
	Fire Label = iota
	NoFire
)

// labels maps the classifier's output index to its verdict. The order must
// match the class order the model was trained with.
var labels = [...]Label{Fire, NoFire}

func (l Label) String() string {
	switch l {
	case Fire:
		return "fire"
	case NoFire:
		return "no fire"
	default:
		return fmt.Sprintf("label(%d)", int(l))
	}
}

func (l Label) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

func (l *Label) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	parsed, err := ParseLabel(s)
	if err != nil {
		return err
	}

	*l = parsed
	return nil
}

func ParseLabel(s string) (Label, error) {
	switch s {
	case "fire":
		return Fire, nil
	case "no fire":
		return NoFire, nil
	}
	return 0, xerrors.Errorf("unknown label %q", s)
}

// LabelFromScores maps the argmax of a class-probability vector to a label.
// Ties resolve to the lowest index.
func LabelFromScores(scores []float32) (Label, error) {
	if len(scores) != len(labels) {
		return 0, xerrors.Errorf("expected %d scores, got %d", len(labels), len(scores))
	}

	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}

	return labels[best], nil
}
