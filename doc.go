// Package dreamtable is a 2D canvas editor built on a small entity-component
// world.
//
// Everything on screen is an entity: canvases, sprites, toolbar buttons,
// selection boxes and the cameras themselves. Entities are plain ids; their
// data lives in typed component stores reached through [World.C]:
//
//	w := dreamtable.NewWorld()
//	e := w.CreateEntity(
//		dreamtable.Position{Vec2: dreamtable.V(10, 20)},
//		dreamtable.Extent{Vec2: dreamtable.V(16, 16)},
//		dreamtable.Hoverable{},
//	)
//	pos := w.C.Position.MustGet(e)
//
// # Pipeline
//
// Behavior lives in systems, registered once with [World.AddSystem] and run
// in registration order by [World.Process], once per frame. Systems are
// grouped in phases (context, control, render, cleanup) and a system always
// sees what earlier systems wrote during the same frame. [NewEditor]
// registers the full editor pipeline.
//
// # Spaces and cameras
//
// A [Position] is expressed either in world space or in screen space. Each
// space is mapped to the screen by its active [Camera]; the pointer is
// converted into an entity's own space before any hit test.
//
// # Pointer gestures
//
// Drags, pencil strokes and box selections are exclusive: the system that
// starts one claims [Context.MouseReserved] on the press and the same
// system clears it on release. Other systems ignore new presses while the
// pointer is claimed.
//
// # Resources
//
// Images and textures are owned by the backend behind the [HAL] interface.
// Deleting an entity is two-phase: a system marks it [Deletable], resource
// cleanup systems release its handles, and a final sweep removes it.
//
// The ebitenhal package provides the Ebitengine backend; haltest provides
// an in-memory backend with scripted input for tests.
package dreamtable
