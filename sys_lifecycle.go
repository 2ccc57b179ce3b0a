package dreamtable

import "go.uber.org/zap"

// ImageLoadSystem loads image sources, uploads rasters as textures and
// re-uploads dirty rasters. A failed load is retried every frame; only the
// first failure is logged.
type ImageLoadSystem struct{}

func (ImageLoadSystem) Process(w *World, _ *Context, hal HAL) {
	w.C.Image.Each(func(e Entity, img *Image) {
		if img.Raster == nil {
			if img.Source == "" {
				return
			}
			raster, err := hal.LoadImage(img.Source)
			if err != nil {
				img.Attempts++
				if img.Attempts == 1 {
					w.Log().Warn("load image", zap.Uint64("entity", uint64(e)),
						zap.String("source", img.Source), zap.Error(err))
				}
				return
			}
			if img.Attempts > 0 {
				w.Log().Info("image loaded after retries", zap.String("source", img.Source),
					zap.Int("attempts", img.Attempts))
			}
			img.Raster = raster
			img.Attempts = 0
			if ext, ok := w.C.Extent.Get(e); ok && ext.IsZero() {
				ext.Vec2 = hal.ImageSize(raster)
			}
		}

		if img.Texture == nil {
			tex, err := hal.LoadTextureFromImage(img.Raster)
			if err != nil {
				w.Log().Warn("upload texture", zap.Uint64("entity", uint64(e)), zap.Error(err))
				return
			}
			img.Texture = tex
			img.Dirty = false
			return
		}

		if img.Dirty {
			if err := hal.UpdateTexture(img.Texture, img.Raster); err != nil {
				w.Log().Warn("update texture", zap.Uint64("entity", uint64(e)), zap.Error(err))
				return
			}
			img.Dirty = false
		}
	})
}

// SelectableDeleteSystem marks selected deletable entities on Delete.
type SelectableDeleteSystem struct{}

func (SelectableDeleteSystem) Process(w *World, _ *Context, hal HAL) {
	if !hal.IsKeyPressed(KeyDelete) {
		return
	}
	Each2(w.C.Selectable, w.C.Deletable, func(_ Entity, sel *Selectable, del *Deletable) {
		if sel.Selected {
			del.Deleted = true
		}
	})
}

// CanvasDeleteSystem releases the images of deleted canvases and drops every
// cell reference that points at them.
type CanvasDeleteSystem struct{}

func (CanvasDeleteSystem) Process(w *World, ctx *Context, hal HAL) {
	Each3(w.C.Canvas, w.C.Deletable, w.C.Image, func(e Entity, _ *Canvas, del *Deletable, img *Image) {
		if !del.Deleted {
			return
		}
		releaseImage(hal, img)
		w.C.CellRefs.Each(func(_ Entity, refs *CellRefs) {
			for cell, ref := range refs.Refs {
				if ref.Source == e {
					delete(refs.Refs, cell)
				}
			}
		})
		if ctx.CellRefPrimary != nil && ctx.CellRefPrimary.Source == e {
			ctx.CellRefPrimary = nil
		}
		if ctx.CellRefSecondary != nil && ctx.CellRefSecondary.Source == e {
			ctx.CellRefSecondary = nil
		}
	})
}

// ImageDeleteSystem releases the images of any other deleted entity.
type ImageDeleteSystem struct{}

func (ImageDeleteSystem) Process(w *World, _ *Context, hal HAL) {
	Each2(w.C.Image, w.C.Deletable, func(_ Entity, img *Image, del *Deletable) {
		if del.Deleted {
			releaseImage(hal, img)
		}
	})
}

func releaseImage(hal Resources, img *Image) {
	if img.Texture != nil {
		hal.UnloadTexture(img.Texture)
		img.Texture = nil
	}
	if img.Raster != nil {
		hal.UnloadImage(img.Raster)
		img.Raster = nil
	}
}

// FinalDeleteSystem removes deleted entities. It must run after every
// resource cleanup system.
type FinalDeleteSystem struct{}

func (FinalDeleteSystem) Process(w *World, _ *Context, _ HAL) {
	w.C.Deletable.Each(func(e Entity, del *Deletable) {
		if del.Deleted {
			w.DeleteEntity(e)
		}
	})
}
