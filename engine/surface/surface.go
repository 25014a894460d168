// Package surface models the host element a scene draws into: its size, display density,
// style properties and the child elements attached to it.
package surface

import (
	"sync"
)

// Style property names read and written by the scene controller.
const (
	StyleBackground      = "background"
	StyleBackgroundColor = "background-color"
	StyleBackgroundImage = "background-image"
	StyleDisplay         = "display"
	StyleWidth           = "width"
	StyleHeight          = "height"
	StyleOpacity         = "opacity"
)

// Style is a concurrency-safe set of style properties. An unset property reads as "".
type Style struct {
	mu    *sync.Mutex
	props map[string]string
}

// NewStyle creates an empty Style.
func NewStyle() *Style {
	return &Style{mu: &sync.Mutex{}, props: make(map[string]string)}
}

// Get returns the value of a property or "" when unset.
func (s *Style) Get(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.props[key]
}

// Set assigns a property. An empty value unsets it.
func (s *Style) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if value == "" {
		delete(s.props, key)
		return
	}
	s.props[key] = value
}

// HasBackground reports whether an explicit background or background colour is set.
func (s *Style) HasBackground() bool {
	return s.Get(StyleBackground) != "" || s.Get(StyleBackgroundColor) != ""
}

// Element is anything that carries style properties and can be attached to a Surface.
type Element interface {
	Style() *Style
}

// Surface is the host a scene renders into.
type Surface interface {
	Element

	// Bounds returns the drawable size in CSS pixels.
	//
	// Returns:
	//   - int: width
	//   - int: height
	Bounds() (width, height int)

	// PixelRatio returns the display density (device pixels per CSS pixel).
	PixelRatio() float64

	// Parent returns the enclosing element, or nil at the top of the hierarchy.
	Parent() Element

	// Append attaches a child element.
	Append(child Element)

	// Children returns a copy of the attached children.
	Children() []Element

	// Clear detaches every child element.
	Clear()
}

// Resizable is a Surface whose bounds can be changed by its owner, such as an in-memory host
// driven by tests or an embedding application.
type Resizable interface {
	Surface

	// SetBounds changes the drawable size. Listeners are not notified; callers follow up with
	// the scene controller's Resize.
	SetBounds(width, height int)
}
