package dreamtable_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dt "github.com/phanxgames/dreamtable"
)

func TestDeleteReleasesHandlesBeforeEntity(t *testing.T) {
	opt, logs := observed()
	w, hal := newEditor(t, opt)
	canvas := addCanvas(t, w, hal, 0, 0, 16, 16, dt.ColorBlack)
	hal.Step(w)
	require.Equal(t, 1, hal.LiveImages())
	require.Equal(t, 1, hal.LiveTextures())

	w.C.Selectable.MustGet(canvas).Selected = true
	hal.InjectKeyTap(dt.KeyDelete)
	require.NoError(t, hal.Run(w))

	assert.False(t, w.Alive(canvas))
	assert.Equal(t, 0, hal.LiveImages())
	assert.Equal(t, 0, hal.LiveTextures())
	assert.Zero(t, hal.DoubleFrees)
	assert.Zero(t, logs.FilterMessage("deleting entity with live image handles").Len())
}

func TestDeleteIgnoresUnselectedAndUndeletable(t *testing.T) {
	w, hal := newEditor(t)
	keep := addCanvas(t, w, hal, 0, 0, 16, 16, dt.ColorBlack)
	pinned := w.CreateEntity(dt.Selectable{Selected: true}) // no Deletable

	hal.InjectKeyTap(dt.KeyDelete)
	require.NoError(t, hal.Run(w))
	assert.True(t, w.Alive(keep))
	assert.True(t, w.Alive(pinned))
}

func TestImageLoadRetriesAndLogsOnce(t *testing.T) {
	opt, logs := observed()
	w, hal := newEditor(t, opt)
	const src = "res://late.png"
	e := w.CreateEntity(dt.Position{}, dt.Extent{}, dt.Image{Source: src})

	hal.StepN(w, 3)
	img := w.C.Image.MustGet(e)
	assert.Nil(t, img.Raster)
	assert.Equal(t, 3, img.Attempts)
	warned := 0
	for _, entry := range logs.FilterMessage("load image").All() {
		if entry.ContextMap()["source"] == src {
			warned++
		}
	}
	assert.Equal(t, 1, warned, "one warning per source")

	pic := image.NewNRGBA(image.Rect(0, 0, 5, 7))
	pic.Set(1, 1, color.NRGBA{R: 255, A: 255})
	hal.AddImage(src, pic)
	hal.Step(w)

	assert.NotNil(t, img.Raster)
	assert.NotNil(t, img.Texture)
	assert.Zero(t, img.Attempts)
	assert.Equal(t, dt.V(5, 7), w.C.Extent.MustGet(e).Vec2, "zero extent sized from image")
}

func TestImageLoadKeepsExplicitExtent(t *testing.T) {
	w, hal := newEditor(t)
	const src = "res://sprite.png"
	hal.AddImage(src, image.NewNRGBA(image.Rect(0, 0, 64, 64)))
	e := w.CreateEntity(dt.Position{}, dt.Extent{Vec2: dt.V(16, 16)}, dt.Image{Source: src})
	hal.Step(w)
	assert.Equal(t, dt.V(16, 16), w.C.Extent.MustGet(e).Vec2)
}

func TestDeletingSpriteReleasesImage(t *testing.T) {
	w, hal := newEditor(t)
	hal.AddImage("res://sprites/16x16babies.png", image.NewNRGBA(image.Rect(0, 0, 256, 128)))
	egg := dt.SpawnEgg(w, dt.V(0, 0))
	hal.Step(w)
	require.Equal(t, 1, hal.LiveTextures())

	w.C.Deletable.MustGet(egg).Deleted = true
	hal.Step(w)
	assert.False(t, w.Alive(egg))
	assert.Equal(t, 0, hal.LiveImages())
	assert.Equal(t, 0, hal.LiveTextures())
}
