package lantern

import (
	"github.com/chewxy/math32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/lantern/geom"
)

const (
	// viewRotationStep is the rotation applied per scroll step.
	viewRotationStep geom.Deg = 1
	// viewScaleStep is the scale factor applied per scroll step.
	viewScaleStep float32 = 1.1
	// defaultViewDuration is the default tween length in seconds.
	defaultViewDuration float32 = 0.15
)

// ViewTransform2D is a rotation and uniform scale driven by scroll steps.
// Each step moves the target; the current values follow it through gween
// tweens. Call Update every tick.
//
// There is no global animation manager; users call Update themselves.
type ViewTransform2D struct {
	// Duration of the tween started by each ScrollBy. Zero jumps immediately.
	Duration float32
	// Ease is the easing function of the tweens.
	Ease ease.TweenFunc

	rotation, scale             float32
	targetRotation, targetScale float32

	rotationTween, scaleTween *gween.Tween
}

// NewViewTransform2D returns an identity view transform animating over
// 0.15 seconds with ease.OutQuad.
func NewViewTransform2D() *ViewTransform2D {
	return &ViewTransform2D{
		Duration:    defaultViewDuration,
		Ease:        ease.OutQuad,
		scale:       1,
		targetScale: 1,
	}
}

// ScrollBy moves the targets by steps: each positive step rotates by +1° and
// scales by 1.1, each negative step does the opposite. Fractional steps
// (precise trackpads) scale proportionally.
func (v *ViewTransform2D) ScrollBy(steps float32) {
	if steps == 0 {
		return
	}
	v.targetRotation += float32(viewRotationStep) * steps
	v.targetScale *= math32.Pow(viewScaleStep, steps)
	if v.Duration <= 0 {
		v.rotation, v.scale = v.targetRotation, v.targetScale
		v.rotationTween, v.scaleTween = nil, nil
		return
	}
	fn := v.Ease
	if fn == nil {
		fn = ease.OutQuad
	}
	v.rotationTween = gween.New(v.rotation, v.targetRotation, v.Duration, fn)
	v.scaleTween = gween.New(v.scale, v.targetScale, v.Duration, fn)
}

// Update advances the tweens by dt seconds and reports whether the current
// values changed.
func (v *ViewTransform2D) Update(dt float32) bool {
	if v.rotationTween == nil && v.scaleTween == nil {
		return false
	}
	prevRotation, prevScale := v.rotation, v.scale
	if v.rotationTween != nil {
		val, done := v.rotationTween.Update(dt)
		v.rotation = val
		if done {
			v.rotation = v.targetRotation
			v.rotationTween = nil
		}
	}
	if v.scaleTween != nil {
		val, done := v.scaleTween.Update(dt)
		v.scale = val
		if done {
			v.scale = v.targetScale
			v.scaleTween = nil
		}
	}
	return v.rotation != prevRotation || v.scale != prevScale
}

// Animating reports whether a tween is in progress.
func (v *ViewTransform2D) Animating() bool {
	return v.rotationTween != nil || v.scaleTween != nil
}

// Rotation returns the current rotation.
func (v *ViewTransform2D) Rotation() geom.Deg { return geom.Deg(v.rotation) }

// Scale returns the current scale.
func (v *ViewTransform2D) Scale() float32 { return v.scale }

// Matrix returns rotation · scaling.
func (v *ViewTransform2D) Matrix() geom.Mat3 {
	return geom.Rotation3(v.Rotation().Rad()).Mul(geom.Scaling3(geom.Vec2{X: v.scale, Y: v.scale}))
}

// Reset returns to identity and stops any tween.
func (v *ViewTransform2D) Reset() {
	v.rotation, v.targetRotation = 0, 0
	v.scale, v.targetScale = 1, 1
	v.rotationTween, v.scaleTween = nil, nil
}
