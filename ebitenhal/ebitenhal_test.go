package ebitenhal

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dt "github.com/phanxgames/dreamtable"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"res://icons/hand.png", "icons/hand.png", false},
		{"res:///icons/hand.png", "icons/hand.png", false},
		{"icons/hand.png", "", true},
		{"res://../secret.png", "", true},
		{"res://", "", true},
	}
	for _, tt := range tests {
		got, err := resolve(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestKeyMapCoversEveryKey(t *testing.T) {
	for _, k := range dt.Keys {
		_, ok := keyMap[k]
		assert.True(t, ok, "key %d has no ebiten mapping", k)
	}
	assert.Len(t, buttonMap, len(dt.MouseButtons))
}

func TestPremultiply(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 128, B: 0, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{R: 200, G: 100, B: 50, A: 0})

	got := premultiply(img)
	assert.Equal(t, []byte{255, 128, 0, 255, 0, 0, 0, 0}, got)
}

func TestPremultiplySubImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 3))
	img.SetNRGBA(1, 1, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	sub := img.SubImage(image.Rect(1, 1, 2, 2)).(*image.NRGBA)

	assert.Equal(t, []byte{255, 255, 255, 255}, premultiply(sub))
}

func TestRasterOps(t *testing.T) {
	h := New(Config{})
	img, err := h.GenImageColor(dt.V(4, 3), dt.ColorBlack)
	require.NoError(t, err)
	assert.Equal(t, dt.V(4, 3), h.ImageSize(img))

	h.ImageDrawLine(img, dt.V(0, 0), dt.V(3, 0), dt.ColorWhite)
	for x := range 4 {
		assert.Equal(t, dt.ColorWhite, h.ImageColor(img, dt.V(float64(x), 0)))
	}
	assert.Equal(t, dt.ColorBlack, h.ImageColor(img, dt.V(0, 1)))
	assert.Equal(t, dt.ColorTransparent, h.ImageColor(img, dt.V(9, 9)))

	_, err = h.GenImageColor(dt.V(0, 3), dt.ColorBlack)
	assert.Error(t, err)
}

func TestLoadImageFromAssets(t *testing.T) {
	h := New(Config{Assets: fstest.MapFS{
		"bad.png": &fstest.MapFile{Data: []byte("not a png")},
	}})

	_, err := h.LoadImage("res://missing.png")
	assert.Error(t, err)
	_, err = h.LoadImage("res://bad.png")
	assert.Error(t, err)
}

func TestExportImageCreatesDirectories(t *testing.T) {
	h := New(Config{})
	img, err := h.GenImageColor(dt.V(2, 2), dt.ColorWhite)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "save", "canvas_2x2.png")
	require.NoError(t, h.ExportImage(img, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	decoded, _, err := image.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 2, 2), decoded.Bounds())
}

func TestPopCameraOnEmptyStack(t *testing.T) {
	h := New(Config{})
	h.PopCamera()
	h.PushCamera(dt.Camera2D{Zoom: 2})
	assert.Equal(t, 2.0, h.scale())
	h.PopCamera()
	assert.Equal(t, 1.0, h.scale())
}
