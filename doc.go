// Package lantern renders distance-field text and simple meshes in a 3D
// scene graph on top of [Ebitengine].
//
// # Quick start
//
// An application implements [EventHandler] and any of the optional event
// interfaces, then hands itself to [NewApplication]:
//
//	type demo struct{ app *lantern.Application }
//
//	func (d *demo) DrawEvent(fb *lantern.Framebuffer) {
//		fb.Clear(lantern.ColorBlack)
//		// ... draw meshes ...
//	}
//
//	app := lantern.NewApplication(lantern.DefaultConfiguration(), &demo{})
//	if err := app.Run(); err != nil {
//		log.Fatal(err)
//	}
//
// The framebuffer persists between frames. DrawEvent runs only after
// [Application.Redraw] (or a viewport change), so handlers request a redraw
// whenever their state changes.
//
// # Scene graph
//
// Every node is an [Object] with a local 4x4 transformation. Transform and
// its shorthands (Translate, Rotate, Scale) apply in the parent frame, the
// Local variants in the object's own frame:
//
//	scene := lantern.NewScene()
//	rig := lantern.NewObject("rig", scene.Root())
//	rig.Translate(geom.YAxis(3)).RotateY(geom.Deg(40).Rad())
//
// A [Camera] is attached to an object and draws a [DrawableGroup], farthest
// drawable first.
//
// # Text
//
// A [Font] (normally [OpenTypeFont], obtained through a [FontManager]) fills
// a [GlyphCache]. A distance-field cache rasterizes glyphs large and stores
// a downsampled signed distance field, which the
// [DistanceFieldVectorShader] turns into smooth, outlined text at any scale.
// [RenderText] builds a static mesh; [TextRenderer] rebuilds one in place
// for text that changes.
//
// [Ebitengine]: https://ebitengine.org
package lantern
