package figure

import (
	"errors"
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-globe/common"
	"github.com/Carmen-Shannon/oxy-globe/config"
	"github.com/Carmen-Shannon/oxy-globe/engine/node"
	"github.com/Carmen-Shannon/oxy-globe/engine/tween"
)

// Node names inside a fly line fragment.
const (
	NameFlyLine     = "flyLine"
	NamePathLine    = "pathLine"
	NamePointTrail  = "tadpolePointsMesh"
	NameSpriteGroup = "flyLineSpriteGroup"
	NameSpriteHead  = "flyLineSprite"
)

// Fly line defaults.
const (
	DefaultCurvature     = 0.2
	DefaultHeadFraction  = 1.0 / 7
	DefaultSamples       = 200
	DefaultMinSeparation = 1e-3
)

// ErrDegenerateArc is returned when the endpoints are too close for a circle to pass through them.
var ErrDegenerateArc = errors.New("figure: fly line endpoints coincide")

// Arc is the circle a fly line travels on, expressed in the XY construction plane.
type Arc struct {
	Center     common.Vec3
	Radius     float64
	StartAngle float64
	EndAngle   float64
	// Projection maps the construction plane back onto the source/target plane.
	Projection common.Projection
}

// Sweep returns the angular length of the arc.
func (a Arc) Sweep() float64 {
	return a.EndAngle - a.StartAngle
}

type flyLineBuild struct {
	env           Env
	radius        float64
	curvature     float64
	headFraction  float64
	samples       int
	minSeparation float64
	userData      node.UserData
}

func newFlyLineBuild(source common.Vec3, options []FlyLineBuilderOption) *flyLineBuild {
	b := &flyLineBuild{
		radius:        source.Length(),
		curvature:     DefaultCurvature,
		headFraction:  DefaultHeadFraction,
		samples:       DefaultSamples,
		minSeparation: DefaultMinSeparation,
	}
	for _, opt := range options {
		opt(b)
	}
	return b
}

// FlyArc computes the arc between two points on a sphere. Points off the sphere are first moved
// onto it along their direction from the origin. The midpoint of the chord is lifted away from
// the sphere in proportion to the angular separation, and the arc is the circle through both
// endpoints and the lifted midpoint.
//
// Parameters:
//   - source: the start point
//   - target: the end point
//   - options: WithRadius, WithCurvature and WithMinSeparation are honoured
//
// Returns:
//   - Arc: the arc in the construction plane
//   - error: ErrDegenerateArc if the endpoints are closer than the minimum separation
func FlyArc(source, target common.Vec3, options ...FlyLineBuilderOption) (Arc, error) {
	return newFlyLineBuild(source, options).arc(source, target)
}

func (b *flyLineBuild) arc(source, target common.Vec3) (Arc, error) {
	sep := common.RadianAOB(source, target, common.Vec3{})
	if sep < b.minSeparation || source.LengthSq() == 0 || target.LengthSq() == 0 {
		return Arc{}, fmt.Errorf("%w: separation %.6f rad", ErrDegenerateArc, sep)
	}

	// Endpoints near the sphere are moved onto it so they mirror about +Y once projected.
	source = source.Normalize().Scale(b.radius)
	target = target.Normalize().Scale(b.radius)

	proj := common.Project3DTo2D(source, target)
	start, end := proj.Start, proj.End

	dir := start.Add(end).Scale(0.5).Normalize()
	if dir.LengthSq() == 0 {
		dir = common.Vec3{Y: 1}
	}
	lifted := dir.Scale(b.radius + sep*b.radius*b.curvature)

	center, ok := common.ThreePointCenter(start, end, lifted)
	if !ok {
		return Arc{}, fmt.Errorf("%w: endpoints and lifted midpoint are collinear", ErrDegenerateArc)
	}
	startAngle := -math.Pi/2 + common.RadianAOB(start.Sub(center), common.Vec3{Y: -1}, common.Vec3{})

	return Arc{
		Center:     center,
		Radius:     lifted.DistanceTo(center),
		StartAngle: startAngle,
		EndAngle:   math.Pi - startAngle,
		Projection: proj,
	}, nil
}

// FlyLine builds an animated arc between two points on the globe. The fragment is a group named
// "flyLine" holding an optional static path and exactly one moving head: a gradient point trail,
// or an image sprite when the style names an image. The head sweeps the arc through a tween on the
// environment's driver; disposing the group stops it.
//
// Parameters:
//   - source: the start point
//   - target: the end point
//   - style: the resolved line style
//   - options: functional options to configure the build
//
// Returns:
//   - node.Node: the fly line group
//   - error: ErrDegenerateArc if no arc passes through the endpoints
func FlyLine(source, target common.Vec3, style config.LineStyle, options ...FlyLineBuilderOption) (node.Node, error) {
	b := newFlyLineBuild(source, options)
	arc, err := b.arc(source, target)
	if err != nil {
		return nil, err
	}

	group := node.NewGroup(NameFlyLine,
		node.WithUserData(b.userData),
		node.WithQuaternion(arc.Projection.Quaternion),
	)

	if style.Path.Show {
		group.Add(b.pathLine(arc, style.Path))
	}

	var head node.Node
	if style.FlyLine.Img != "" {
		head = b.spriteHead(arc, style.FlyLine)
	} else {
		head = b.pointTrail(arc, style)
	}
	group.Add(head)

	b.animate(group, head, arc, style.FlyLine)
	return group, nil
}

func (b *flyLineBuild) pathLine(arc Arc, style config.PathStyle) node.Node {
	points := common.ArcPoints(arc.Center, arc.Radius, arc.StartAngle, arc.EndAngle, b.samples)

	mat := node.NewMaterial(common.MustColor(style.Color))
	mat.Size = style.Size

	return node.NewNode(node.KindLine,
		node.WithName(NamePathLine),
		node.WithUserData(b.userData),
		node.WithGeometry(&node.Geometry{Positions: flatten(points)}),
		node.WithMaterial(mat),
	)
}

// pointTrail samples the first fraction of the arc around the origin. The node sits at the arc
// center height so a rotation about Z carries it along the arc.
func (b *flyLineBuild) pointTrail(arc Arc, style config.LineStyle) node.Node {
	flyAngle := arc.Sweep() * b.headFraction
	points := common.ArcPoints(common.Vec3{}, arc.Radius, arc.StartAngle, arc.StartAngle+flyAngle, b.samples)

	tail := common.MustColor(style.Path.Color)
	head := common.MustColor(style.FlyLine.Color)

	g := &node.Geometry{
		Positions: flatten(points),
		Percents:  make([]float32, len(points)),
		Colors:    make([]float32, 0, len(points)*3),
	}
	for i := range points {
		k := float64(i) / float64(len(points))
		g.Percents[i] = float32(k)
		c := tail.Lerp(head, k)
		g.Colors = append(g.Colors, float32(c.R), float32(c.G), float32(c.B))
	}

	mat := node.NewMaterial(head)
	mat.Size = style.FlyLine.Size
	mat.VertexColors = true
	mat.Transparent = true
	mat.DepthWrite = false

	return node.NewNode(node.KindPoints,
		node.WithName(NamePointTrail),
		node.WithUserData(b.userData),
		node.WithPosition(common.V3(0, arc.Center.Y, 0)),
		node.WithGeometry(g),
		node.WithMaterial(mat),
	)
}

// spriteHead places a billboard at the start of the arc inside a pivot group. The texture
// arrives asynchronously; the renderer skips the sprite until it does.
func (b *flyLineBuild) spriteHead(arc Arc, style config.FlyLineStyle) node.Node {
	mat := node.NewMaterial(common.MustColor(style.Color))
	mat.Size = style.Size
	mat.Transparent = true
	mat.DepthWrite = false
	bindImage(b.env.Loader, b.env.logger(), mat, style.Img)

	sprite := node.NewNode(node.KindSprite,
		node.WithName(NameSpriteHead),
		node.WithUserData(b.userData),
		node.WithPosition(common.V3(arc.Radius*math.Cos(arc.StartAngle), arc.Radius*math.Sin(arc.StartAngle), 0)),
		node.WithGeometry(&node.Geometry{Positions: []float32{0, 0, 0}}),
		node.WithMaterial(mat),
	)
	return node.NewGroup(NameSpriteGroup,
		node.WithUserData(b.userData),
		node.WithPosition(common.V3(0, arc.Center.Y, 0)),
		node.WithChildren(sprite),
	)
}

func (b *flyLineBuild) animate(group, head node.Node, arc Arc, style config.FlyLineStyle) {
	if b.env.Tweens == nil {
		return
	}
	easing, ok := tween.EasingByName(style.Easing)
	if !ok {
		b.env.logger().Debug("unknown easing, using linear", "easing", style.Easing)
	}

	t := tween.NewTween(
		tween.Params{"z": 0},
		tween.Params{"z": arc.Sweep()},
		func(p tween.Params) { head.SetRotationZ(p["z"]) },
		tween.WithDuration(style.Duration),
		tween.WithDelay(style.Delay),
		tween.WithRepeat(style.Repeat),
		tween.WithYoyo(style.Yoyo),
		tween.WithEasing(easing),
	)
	b.env.Tweens.Add(t)
	group.OnDispose(t.Stop)
}

func flatten(points []common.Vec3) []float32 {
	out := make([]float32, 0, len(points)*3)
	for _, p := range points {
		out = append(out, float32(p.X), float32(p.Y), float32(p.Z))
	}
	return out
}
