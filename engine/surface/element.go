package surface

import "sync"

// element is an in-memory Surface used for headless hosts and tests.
type element struct {
	mu       *sync.Mutex
	style    *Style
	parent   Element
	width    int
	height   int
	ratio    float64
	children []Element
}

var _ Resizable = &element{}

// ElementBuilderOption is a functional option for configuring an in-memory element.
type ElementBuilderOption func(*element)

// WithSize sets the element bounds.
func WithSize(width, height int) ElementBuilderOption {
	return func(e *element) {
		e.width = width
		e.height = height
	}
}

// WithPixelRatio sets the display density (defaults to 1).
func WithPixelRatio(ratio float64) ElementBuilderOption {
	return func(e *element) {
		e.ratio = ratio
	}
}

// WithParent sets the enclosing element.
func WithParent(parent Element) ElementBuilderOption {
	return func(e *element) {
		e.parent = parent
	}
}

// NewElement creates an in-memory Surface.
//
// Parameters:
//   - options: functional options for size, density and parent
//
// Returns:
//   - Resizable: the element
func NewElement(options ...ElementBuilderOption) Resizable {
	e := &element{
		mu:     &sync.Mutex{},
		style:  NewStyle(),
		width:  800,
		height: 600,
		ratio:  1,
	}
	for _, opt := range options {
		opt(e)
	}
	return e
}

// NewStyledElement creates a bare Element, typically the parent of a Surface.
func NewStyledElement() Element {
	return &element{mu: &sync.Mutex{}, style: NewStyle()}
}

func (e *element) Style() *Style {
	return e.style
}

func (e *element) Bounds() (int, int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.width, e.height
}

func (e *element) SetBounds(width, height int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.width, e.height = width, height
}

func (e *element) PixelRatio() float64 {
	return e.ratio
}

func (e *element) Parent() Element {
	return e.parent
}

func (e *element) Append(child Element) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.children = append(e.children, child)
}

func (e *element) Children() []Element {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Element, len(e.children))
	copy(out, e.children)
	return out
}

func (e *element) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.children = nil
}
