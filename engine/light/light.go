package light

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-globe/common"
	"github.com/Carmen-Shannon/oxy-globe/config"
	"github.com/Carmen-Shannon/oxy-globe/engine/node"
)

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeDirectional has no falloff; its position only defines the direction towards the origin.
	LightTypeDirectional LightType = iota

	// LightTypeAmbient lights every fragment uniformly.
	LightTypeAmbient

	// LightTypePoint emits from a position and fades to zero at its range.
	LightTypePoint
)

func (t LightType) String() string {
	switch t {
	case LightTypeAmbient:
		return "ambient"
	case LightTypePoint:
		return "point"
	default:
		return "directional"
	}
}

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	mu *sync.Mutex

	lightType    LightType
	position     common.Vec3
	color        common.Color
	intensity    float64
	lightRange   float64
	castsShadows bool

	node node.Node
}

// Light is a scene light. Lights live in the scene graph as KindLight nodes whose payload
// is the Light; the renderer collects them each frame.
type Light interface {
	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: the light type
	Type() LightType

	// Position returns the world-space position of the light. For directional lights the
	// direction is from this position towards the origin. Meaningless for ambient lights.
	//
	// Returns:
	//   - common.Vec3: the position
	Position() common.Vec3

	// SetPosition moves the light and its scene node.
	//
	// Parameters:
	//   - p: the new world-space position
	SetPosition(p common.Vec3)

	// Direction returns the normalized direction the light travels in.
	// Zero for ambient and point lights.
	Direction() common.Vec3

	// Color returns the light colour.
	Color() common.Color

	// Intensity returns the scalar intensity multiplier.
	Intensity() float64

	// Range returns the distance at which a point light's contribution reaches zero.
	// Zero means unlimited.
	Range() float64

	// CastsShadows reports whether the light is flagged as a shadow caster.
	CastsShadows() bool

	// Node returns the scene graph node carrying the light. The same node is returned on
	// every call.
	//
	// Returns:
	//   - node.Node: a KindLight node positioned at the light with the light as payload
	Node() node.Node
}

var _ Light = &lightImpl{}

// NewLight creates a white light of intensity 1.
//
// Parameters:
//   - lightType: the kind of light
//   - options: functional options to configure the light
//
// Returns:
//   - Light: the new light
func NewLight(lightType LightType, options ...LightBuilderOption) Light {
	l := &lightImpl{
		mu:        &sync.Mutex{},
		lightType: lightType,
		color:     common.Color{R: 1, G: 1, B: 1, A: 1},
		intensity: 1,
	}
	for _, opt := range options {
		opt(l)
	}
	l.node = node.NewNode(node.KindLight,
		node.WithName(l.lightType.String()+"Light"),
		node.WithPosition(l.position),
		node.WithPayload(Light(l)),
	)
	return l
}

// FromKind creates the scene light for a configured kind. Unknown kinds produce the
// directional light.
//
// Parameters:
//   - kind: the configured light kind
//
// Returns:
//   - Light: the light
func FromKind(kind config.LightKind) Light {
	switch kind {
	case config.LightAmbient:
		return NewLight(LightTypeAmbient)
	case config.LightPoint:
		return NewLight(LightTypePoint,
			WithPosition(common.V3(200, 200, 40)),
			WithRange(100),
		)
	default:
		return NewLight(LightTypeDirectional,
			WithPosition(common.V3(2000, 2000, 3000)),
			WithShadows(true),
		)
	}
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() common.Vec3 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.position
}

func (l *lightImpl) SetPosition(p common.Vec3) {
	l.mu.Lock()
	l.position = p
	l.mu.Unlock()
	l.node.SetPosition(p)
}

func (l *lightImpl) Direction() common.Vec3 {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.lightType != LightTypeDirectional {
		return common.Vec3{}
	}
	return l.position.Scale(-1).Normalize()
}

func (l *lightImpl) Color() common.Color {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.color
}

func (l *lightImpl) Intensity() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.intensity
}

func (l *lightImpl) Range() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lightRange
}

func (l *lightImpl) CastsShadows() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.castsShadows
}

func (l *lightImpl) Node() node.Node {
	return l.node
}
