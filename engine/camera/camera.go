package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-globe/common"
)

// Kind selects the projection of a Camera.
type Kind int

const (
	// KindOrthographic projects with a fixed half-height, scaled by the controller's zoom.
	KindOrthographic Kind = iota
	// KindPerspective projects with a vertical field of view.
	KindPerspective
)

func (k Kind) String() string {
	if k == KindPerspective {
		return "perspective"
	}
	return "orthographic"
}

type cameraImpl struct {
	mu *sync.Mutex

	kind Kind
	up   common.Vec3

	fov        float32
	halfHeight float32
	aspect     float32
	near       float32
	far        float32

	viewMatrix            [16]float32
	projectionMatrix      [16]float32
	viewProjectionMatrix  [16]float32
	inverseViewProjection [16]float32

	controller *OrbitControls
}

// Camera holds projection settings and computes view/projection matrices from an attached
// OrbitControls each frame via Update().
type Camera interface {
	// Kind returns the projection kind.
	Kind() Kind

	// Fov returns the vertical field of view in radians. Only meaningful for perspective cameras.
	Fov() float32

	// HalfHeight returns the half-height of the orthographic view volume before zoom.
	HalfHeight() float32

	// Aspect returns the aspect ratio (width / height).
	Aspect() float32

	// Near returns the near clipping plane distance.
	Near() float32

	// Far returns the far clipping plane distance.
	Far() float32

	// Position returns the world-space camera position read from the controller.
	//
	// Returns:
	//   - common.Vec3: the eye position, or the zero vector without a controller
	Position() common.Vec3

	// ViewMatrix returns the current 4x4 view matrix (column-major).
	ViewMatrix() [16]float32

	// ProjectionMatrix returns the current 4x4 projection matrix (column-major).
	ProjectionMatrix() [16]float32

	// ViewProjectionMatrix returns the combined view-projection matrix (column-major).
	ViewProjectionMatrix() [16]float32

	// Ray returns a world-space ray through a point in normalized device coordinates.
	//
	// Parameters:
	//   - ndcX, ndcY: the point in [-1, 1], +Y up
	//
	// Returns:
	//   - origin: the ray origin on the near plane
	//   - dir: the normalized ray direction
	Ray(ndcX, ndcY float64) (origin, dir common.Vec3)

	// Controller returns the attached orbit controls or nil.
	Controller() *OrbitControls

	// Update reads the eye and target from the controller and recomputes matrices.
	// Does nothing without a controller.
	Update()

	// SetAspect sets the aspect ratio (width / height) and recomputes matrices.
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)

	// SetController attaches orbit controls to the camera.
	//
	// Parameters:
	//   - ctrl: the controls to attach
	SetController(ctrl *OrbitControls)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a camera of the given kind. Orthographic cameras default to a
// half-height of 200, perspective cameras to a 95 degree field of view, both with
// near/far planes of 1 and 1500.
//
// Parameters:
//   - kind: the projection kind
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(kind Kind, options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:         &sync.Mutex{},
		kind:       kind,
		up:         common.V3(0, 1, 0),
		fov:        float32(95 * math.Pi / 180),
		halfHeight: 200,
		aspect:     1,
		near:       1,
		far:        1500,
	}
	common.Identity(c.viewMatrix[:])
	common.Identity(c.projectionMatrix[:])
	common.Identity(c.viewProjectionMatrix[:])
	common.Identity(c.inverseViewProjection[:])
	for _, option := range options {
		option(c)
	}
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Kind() Kind {
	return c.kind
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) HalfHeight() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.halfHeight
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) Position() common.Vec3 {
	c.mu.Lock()
	ctrl := c.controller
	c.mu.Unlock()
	if ctrl == nil {
		return common.Vec3{}
	}
	return ctrl.Position()
}

func (c *cameraImpl) ViewMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) Ray(ndcX, ndcY float64) (origin, dir common.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// WebGPU clip depth runs 0..1.
	near := common.ProjectPoint(c.inverseViewProjection[:], common.V3(ndcX, ndcY, 0))
	far := common.ProjectPoint(c.inverseViewProjection[:], common.V3(ndcX, ndcY, 1))
	return near, far.Sub(near).Normalize()
}

func (c *cameraImpl) Controller() *OrbitControls {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controller
}

func (c *cameraImpl) Update() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.controller == nil {
		return
	}
	c.updateMatrices()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	if aspect <= 0 || math.IsNaN(float64(aspect)) || math.IsInf(float64(aspect), 0) {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.updateMatrices()
}

func (c *cameraImpl) SetController(ctrl *OrbitControls) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.controller = ctrl
	c.updateMatrices()
}

// updateMatrices recalculates the view, projection and derived matrices.
// Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	zoom := float32(1)
	if c.controller != nil {
		eye, target := c.controller.Position(), c.controller.Target()
		common.LookAt(c.viewMatrix[:], eye, target, c.up)
		zoom = float32(c.controller.Zoom())
	}

	switch c.kind {
	case KindPerspective:
		common.Perspective(c.projectionMatrix[:], c.fov, c.aspect, c.near, c.far)
	default:
		h := c.halfHeight / zoom
		w := h * c.aspect
		common.Orthographic(c.projectionMatrix[:], -w, w, h, -h, c.near, c.far)
	}

	common.Mul4(c.viewProjectionMatrix[:], c.projectionMatrix[:], c.viewMatrix[:])
	common.Invert4(c.inverseViewProjection[:], c.viewProjectionMatrix[:])
}
