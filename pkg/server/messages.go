package server

import (
	"encoding/json"

	"github.com/taigrr/glyphcube/pkg/render"
)

// Message types on the websocket.
const (
	TypeFrame  = "frame"
	TypeConfig = "config"
	TypeError  = "error"
)

// FrameMessage carries one rendered frame. Colors is omitted for frames
// without any colored cell; otherwise it holds one "#rrggbb" string per
// cell, empty for cells that inherit.
type FrameMessage struct {
	Type   string     `json:"type"`
	Width  int        `json:"width"`
	Height int        `json:"height"`
	Rows   []string   `json:"rows"`
	Colors [][]string `json:"colors,omitempty"`
}

// ConfigMessage carries a renderer configuration in either direction.
// Inbound configs are applied on top of the current one, so a client may
// send only the fields it changes.
type ConfigMessage struct {
	Type   string        `json:"type"`
	Config render.Config `json:"config"`
}

// ErrorMessage reports a rejected request to the client that sent it.
type ErrorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

type inbound struct {
	Type   string          `json:"type"`
	Config json.RawMessage `json:"config"`
}

// NewFrameMessage converts a frame to its wire form.
func NewFrameMessage(f *render.Frame) FrameMessage {
	msg := FrameMessage{
		Type:   TypeFrame,
		Width:  f.Width(),
		Height: f.Height(),
		Rows:   f.Rows(),
	}

	colored := false
	colors := make([][]string, f.Height())
	for y := range colors {
		row := make([]string, f.Width())
		for x := range row {
			if hex := render.Hex(f.At(x, y).Color); hex != "" {
				row[x] = hex
				colored = true
			}
		}
		colors[y] = row
	}
	if colored {
		msg.Colors = colors
	}
	return msg
}
