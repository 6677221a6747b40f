package lantern

import (
	"github.com/phanxgames/lantern/geom"
)

// objectIDCounter is a plain counter. lantern is single-threaded.
var objectIDCounter uint32

func nextObjectID() uint32 {
	objectIDCounter++
	return objectIDCounter
}

// Object is a scene graph node carrying a local 4x4 transformation. Children
// inherit their parent's absolute transformation. Drawables and cameras are
// attached to objects rather than embedded in them.
type Object struct {
	// Identity
	ID   uint32
	Name string

	// UserData is an arbitrary payload for the application.
	UserData any

	// Hierarchy
	parent   *Object
	children []*Object

	transformation geom.Mat4

	// Computed (unexported, refreshed lazily by AbsoluteTransformation)
	absolute      geom.Mat4
	absoluteDirty bool

	disposed bool
}

// NewObject creates an object with an identity transformation. If parent is
// non-nil the object is appended to its children.
func NewObject(name string, parent *Object) *Object {
	o := &Object{
		ID:             nextObjectID(),
		Name:           name,
		transformation: geom.Identity4(),
		absolute:       geom.Identity4(),
		absoluteDirty:  true,
	}
	if parent != nil {
		parent.AddChild(o)
	}
	return o
}

// --- Tree manipulation ---

// AddChild appends child to this object's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this object (cycle).
func (o *Object) AddChild(child *Object) {
	if child == nil {
		panic("lantern: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(o, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, o) {
		panic("lantern: adding child would create a cycle")
	}
	if child.parent != nil {
		child.parent.removeChildByPtr(child)
	}
	child.parent = o
	o.children = append(o.children, child)
	markSubtreeDirty(child)
	if globalDebug {
		debugCheckTreeDepth(child)
	}
}

// RemoveChild detaches child from this object.
// Panics if child's parent is not o.
func (o *Object) RemoveChild(child *Object) {
	if child.parent != o {
		panic("lantern: child's parent is not this object")
	}
	o.removeChildByPtr(child)
	child.parent = nil
	markSubtreeDirty(child)
}

// SetParent moves the object under parent. A nil parent detaches it.
func (o *Object) SetParent(parent *Object) *Object {
	if parent == nil {
		o.RemoveFromParent()
		return o
	}
	parent.AddChild(o)
	return o
}

// RemoveFromParent detaches this object from its parent.
// No-op if this object has no parent.
func (o *Object) RemoveFromParent() {
	if o.parent == nil {
		return
	}
	o.parent.RemoveChild(o)
}

// Parent returns the parent object, or nil for a root.
func (o *Object) Parent() *Object { return o.parent }

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (o *Object) Children() []*Object { return o.children }

// Dispose removes this object from its parent, marks it as disposed,
// and recursively disposes all descendants. Drawables attached to a
// disposed object are skipped by cameras.
func (o *Object) Dispose() {
	if o.disposed {
		return
	}
	o.RemoveFromParent()
	o.dispose()
}

func (o *Object) dispose() {
	o.disposed = true
	o.ID = 0
	for _, child := range o.children {
		child.parent = nil
		child.dispose()
	}
	o.children = nil
	o.UserData = nil
}

// IsDisposed returns true if this object has been disposed.
func (o *Object) IsDisposed() bool { return o.disposed }

// --- Transformation ---

// Transformation returns the local transformation relative to the parent.
func (o *Object) Transformation() geom.Mat4 { return o.transformation }

// SetTransformation replaces the local transformation.
func (o *Object) SetTransformation(m geom.Mat4) *Object {
	o.transformation = m
	markSubtreeDirty(o)
	return o
}

// ResetTransformation sets the local transformation to identity.
func (o *Object) ResetTransformation() *Object {
	return o.SetTransformation(geom.Identity4())
}

// Transform applies m in the parent's coordinate frame: T' = m · T.
func (o *Object) Transform(m geom.Mat4) *Object {
	return o.SetTransformation(m.Mul(o.transformation))
}

// TransformLocal applies m in the object's own frame: T' = T · m.
func (o *Object) TransformLocal(m geom.Mat4) *Object {
	return o.SetTransformation(o.transformation.Mul(m))
}

// Translate moves the object by v in the parent's frame.
func (o *Object) Translate(v geom.Vec3) *Object { return o.Transform(geom.Translation4(v)) }

// TranslateLocal moves the object by v along its own axes.
func (o *Object) TranslateLocal(v geom.Vec3) *Object {
	return o.TransformLocal(geom.Translation4(v))
}

// Scale scales the object by v in the parent's frame.
func (o *Object) Scale(v geom.Vec3) *Object { return o.Transform(geom.Scaling4(v)) }

// ScaleLocal scales the object by v along its own axes.
func (o *Object) ScaleLocal(v geom.Vec3) *Object { return o.TransformLocal(geom.Scaling4(v)) }

// Rotate rotates the object around a normalized axis in the parent's frame.
func (o *Object) Rotate(angle geom.Rad, axis geom.Vec3) *Object {
	return o.Transform(geom.Rotation4(angle, axis))
}

// RotateLocal rotates the object around a normalized axis in its own frame.
func (o *Object) RotateLocal(angle geom.Rad, axis geom.Vec3) *Object {
	return o.TransformLocal(geom.Rotation4(angle, axis))
}

// RotateX rotates the object around the parent's X axis.
func (o *Object) RotateX(angle geom.Rad) *Object { return o.Transform(geom.RotationX(angle)) }

// RotateY rotates the object around the parent's Y axis.
func (o *Object) RotateY(angle geom.Rad) *Object { return o.Transform(geom.RotationY(angle)) }

// RotateZ rotates the object around the parent's Z axis.
func (o *Object) RotateZ(angle geom.Rad) *Object { return o.Transform(geom.RotationZ(angle)) }

// RotateXLocal rotates the object around its own X axis.
func (o *Object) RotateXLocal(angle geom.Rad) *Object {
	return o.TransformLocal(geom.RotationX(angle))
}

// RotateYLocal rotates the object around its own Y axis.
func (o *Object) RotateYLocal(angle geom.Rad) *Object {
	return o.TransformLocal(geom.RotationY(angle))
}

// AbsoluteTransformation returns the object's transformation relative to the
// root of its tree. The result is cached until the object or one of its
// ancestors changes.
func (o *Object) AbsoluteTransformation() geom.Mat4 {
	if !o.absoluteDirty {
		return o.absolute
	}
	if o.parent == nil {
		o.absolute = o.transformation
	} else {
		o.absolute = o.parent.AbsoluteTransformation().Mul(o.transformation)
	}
	o.absoluteDirty = false
	return o.absolute
}

// updateAbsoluteTransformations refreshes the cached absolute transformation
// for every dirty object in the subtree. parentRecomputed forces a refresh
// even when the child itself is clean.
func updateAbsoluteTransformations(o *Object, parent geom.Mat4, parentRecomputed bool) {
	recompute := o.absoluteDirty || parentRecomputed
	if recompute {
		o.absolute = parent.Mul(o.transformation)
		o.absoluteDirty = false
	}
	for _, child := range o.children {
		updateAbsoluteTransformations(child, o.absolute, recompute)
	}
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of (or equal to) obj.
func isAncestor(candidate, obj *Object) bool {
	for p := obj; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from o.children without clearing child.parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (o *Object) removeChildByPtr(child *Object) {
	for i, c := range o.children {
		if c == child {
			copy(o.children[i:], o.children[i+1:])
			o.children[len(o.children)-1] = nil
			o.children = o.children[:len(o.children)-1]
			return
		}
	}
}

// markSubtreeDirty flags object and all its descendants for recomputation.
func markSubtreeDirty(obj *Object) {
	obj.absoluteDirty = true
	for _, child := range obj.children {
		markSubtreeDirty(child)
	}
}
