package lantern

import (
	"github.com/phanxgames/lantern/geom"
)

// Scene owns the root object of a scene graph. Objects created with the root
// (or one of its descendants) as parent belong to the scene.
type Scene struct {
	root  *Object
	debug bool
}

// NewScene creates a new scene with a pre-created root object.
func NewScene() *Scene {
	return &Scene{root: NewObject("root", nil)}
}

// Root returns the scene's root object.
func (s *Scene) Root() *Object {
	return s.root
}

// Update refreshes the absolute transformations of every object in the
// scene. Cameras compute transformations lazily, so calling Update is only
// needed to front-load the work before several cameras draw.
func (s *Scene) Update() {
	updateAbsoluteTransformations(s.root, geom.Identity4(), false)
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-object
// access panics, tree depth warnings are printed, and per-draw camera stats
// are logged to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// DebugMode reports whether debug mode is enabled.
func (s *Scene) DebugMode() bool {
	return s.debug
}

// globalDebug mirrors the most recently set debug flag so that object
// operations (which lack a Scene pointer) can check it cheaply.
var globalDebug bool
