package figure

import (
	"github.com/Carmen-Shannon/oxy-globe/common"
	"github.com/Carmen-Shannon/oxy-globe/engine/node"
)

// NameCountryNames is the name of the label group.
const NameCountryNames = "countryNames"

// labelLift keeps labels just outside the globe so the sphere does not hide them.
const labelLift = 1.01

// Label is the payload of a label node.
type Label struct {
	Value    string
	Color    common.Color
	FontSize float64
}

// Text returns the label text.
func (l Label) Text() string {
	return l.Value
}

// CountryNames builds the country label group from the configured text marks.
//
// Parameters:
//   - env: the build environment
//
// Returns:
//   - node.Node: a group named "countryNames", or nil when no label data is configured
func CountryNames(env Env) node.Node {
	mark := env.Config.TextMark
	if len(mark.Data) == 0 {
		return nil
	}

	color := common.MustColor(mark.Color)
	group := node.NewGroup(NameCountryNames)
	for _, d := range mark.Data {
		group.Add(node.NewNode(node.KindLabel,
			node.WithName(d.Text),
			node.WithPosition(env.PositionAt(env.Config.R*labelLift, d.Lon, d.Lat)),
			node.WithPayload(Label{Value: d.Text, Color: color, FontSize: mark.FontSize}),
		))
	}
	return group
}
