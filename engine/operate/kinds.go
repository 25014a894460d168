package operate

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/Carmen-Shannon/oxy-globe/common"
	"github.com/Carmen-Shannon/oxy-globe/config"
	"github.com/Carmen-Shannon/oxy-globe/engine/figure"
	"github.com/Carmen-Shannon/oxy-globe/engine/node"
)

// Built-in data types.
const (
	TypeFlyLine = "flyLine"
	TypePoint   = "point"
)

// Coord is a longitude/latitude pair in degrees.
type Coord struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// FlyLineData is one fly line entry.
type FlyLineData struct {
	ID    string                    `json:"id,omitempty"`
	From  Coord                     `json:"from"`
	To    Coord                     `json:"to"`
	Style *config.LineStyleOverride `json:"style,omitempty"`
}

// PointData is one scatter point entry. Empty style fields use the configured point style.
type PointData struct {
	ID    string  `json:"id,omitempty"`
	Lon   float64 `json:"lon"`
	Lat   float64 `json:"lat"`
	Color string  `json:"color,omitempty"`
	Size  float64 `json:"size,omitempty"`
}

// FlyLineKind decodes FlyLineData entries and builds them with figure.FlyLine. Endpoints are
// mapped through the environment, onto the globe in 3D and onto the flat map in 2D.
func FlyLineKind() Kind {
	return Kind{
		Decode: func(data []byte) ([]Entry, error) {
			items, err := decodeList[FlyLineData](data)
			if err != nil {
				return nil, err
			}
			entries := make([]Entry, len(items))
			for i, it := range items {
				entries[i] = Entry{ID: it.ID, Value: it}
			}
			return entries, nil
		},
		Build: func(env figure.Env, entry Entry) (node.Node, error) {
			d, ok := entry.Value.(FlyLineData)
			if !ok {
				return nil, fmt.Errorf("%w: %T is not a fly line", ErrBadPayload, entry.Value)
			}
			style := config.ResolveLineStyle(env.Config.LineStyle(), d.Style)
			opts := []figure.FlyLineBuilderOption{figure.WithEnv(env)}
			if env.Config.Mode != config.Mode2D {
				opts = append(opts, figure.WithRadius(env.Config.R))
			}
			return figure.FlyLine(env.Position(d.From.Lon, d.From.Lat), env.Position(d.To.Lon, d.To.Lat), style, opts...)
		},
	}
}

// PointKind decodes PointData entries and builds them with figure.Point.
func PointKind() Kind {
	return Kind{
		Decode: func(data []byte) ([]Entry, error) {
			items, err := decodeList[PointData](data)
			if err != nil {
				return nil, err
			}
			entries := make([]Entry, len(items))
			for i, it := range items {
				entries[i] = Entry{ID: it.ID, Value: it}
			}
			return entries, nil
		},
		Build: func(env figure.Env, entry Entry) (node.Node, error) {
			d, ok := entry.Value.(PointData)
			if !ok {
				return nil, fmt.Errorf("%w: %T is not a point", ErrBadPayload, entry.Value)
			}
			style := env.Config.PointStyle
			style.Color = common.Coalesce(d.Color, style.Color)
			style.Size = common.Coalesce(d.Size, style.Size)
			return figure.Point(env, d.Lon, d.Lat, style, node.UserData{Type: TypePoint, ID: entry.ID}), nil
		},
	}
}

// decodeList accepts either a JSON array of items or a single item object.
func decodeList[T any](data []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	if trimmed[0] == '{' {
		var one T
		if err := json.Unmarshal(trimmed, &one); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
		}
		return []T{one}, nil
	}
	var items []T
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	return items, nil
}
