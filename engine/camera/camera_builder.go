package camera

// CameraBuilderOption is a functional option for configuring a Camera.
type CameraBuilderOption func(*cameraImpl)

// WithFov sets the vertical field of view in radians.
//
// Parameters:
//   - fov: field of view in radians
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's field of view
func WithFov(fov float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fov = fov
	}
}

// WithHalfHeight sets the orthographic half-height.
//
// Parameters:
//   - h: half the visible height in world units
//
// Returns:
//   - CameraBuilderOption: a function that sets the half-height
func WithHalfHeight(h float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		if h > 0 {
			c.halfHeight = h
		}
	}
}

// WithAspect sets the aspect ratio (width / height).
//
// Parameters:
//   - aspect: the aspect ratio to set
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's aspect ratio
func WithAspect(aspect float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		if aspect > 0 {
			c.aspect = aspect
		}
	}
}

// WithClipPlanes sets the near and far clipping distances.
//
// Parameters:
//   - near: near plane distance
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: a function that sets both planes
func WithClipPlanes(near, far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		if near > 0 && far > near {
			c.near, c.far = near, far
		}
	}
}

// WithController attaches orbit controls.
//
// Parameters:
//   - ctrl: the controls providing eye and target
//
// Returns:
//   - CameraBuilderOption: a function that attaches the controls
func WithController(ctrl *OrbitControls) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.controller = ctrl
	}
}
