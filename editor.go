package dreamtable

import (
	"fmt"

	"go.uber.org/zap"
)

// NewEditor builds the editor world: it applies cfg to the context, spawns
// the cameras, grids and toolbar, and registers the frame pipeline.
func NewEditor(cfg *Config, hal HAL, opts ...Option) (*World, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.Editor.Seed != 0 {
		opts = append([]Option{WithSeed(cfg.Editor.Seed)}, opts...)
	}
	w := NewWorld(opts...)
	if cfg.Window.TPS > 0 {
		w.FrameTime = 1 / float32(cfg.Window.TPS)
	}
	w.SetDebugMode(cfg.Debug.Enabled)

	ctx := w.Ctx
	ctx.Snap = Vec2{cfg.Editor.SnapX, cfg.Editor.SnapY}
	ctx.Theme = cfg.Theme
	if cfg.Editor.Font != "" {
		font, err := hal.LoadFont(cfg.Editor.Font)
		if err != nil {
			w.Log().Warn("load font, using built-in face", zap.String("path", cfg.Editor.Font), zap.Error(err))
		} else {
			ctx.Theme.Font = font
		}
	}
	hal.SetClearColor(ctx.Theme.Background)

	spawnScene(w, cfg)
	if err := registerPipeline(w, cfg); err != nil {
		return nil, err
	}
	w.Log().Info("editor ready",
		zap.Int("entities", w.EntityCount()),
		zap.Int("systems", len(w.systems)))
	return w, nil
}

func spawnScene(w *World, cfg *Config) {
	cam := cfg.Camera
	theme := w.Ctx.Theme

	w.CreateEntity(
		Name{Label: "Camera"},
		Camera{
			Camera2D:     Camera2D{Zoom: cam.WorldZoom},
			Space:        SpaceWorld,
			Active:       true,
			ZoomSpeed:    cam.ZoomSpeed,
			ZoomFriction: cam.ZoomFriction,
		},
	)
	w.CreateEntity(
		Name{Label: "UI camera"},
		Camera{
			Camera2D:     Camera2D{Zoom: cam.UIZoom},
			Space:        SpaceScreen,
			Active:       true,
			ZoomFriction: cam.ZoomFriction,
		},
	)
	w.CreateEntity(Name{Label: "Origin"}, Position{}, PositionMarker{Size: 8})
	w.CreateEntity(
		Name{Label: "Minor grid"},
		BackgroundGrid{Color: theme.GridMinor, LineWidth: 2, MinStep: 4},
		Extent{Vec2: Vec2{8, 8}},
	)
	w.CreateEntity(
		Name{Label: "Major grid"},
		BackgroundGrid{Color: theme.GridMajor, LineWidth: 2, MinStep: 4},
		Extent{Vec2: Vec2{32, 32}},
	)

	w.CreateEntity(
		Name{Label: "Draggable"},
		Position{Vec2: Vec2{214, 2}, Space: SpaceScreen},
		Extent{Vec2: Vec2{50, 12}},
		DebugOutline{},
		Hoverable{},
		Draggable{},
		Selectable{},
	)

	if cfg.Editor.SampleCanvas != "" {
		w.CreateEntity(
			Name{Label: "Sweetie 16"},
			Canvas{},
			Position{},
			Extent{},
			Image{Source: cfg.Editor.SampleCanvas},
			Draggable{},
			Hoverable{},
			Selectable{},
			Deletable{},
		)
	}

	for i, t := range Tools {
		w.CreateEntity(
			Name{Label: t.String()},
			Button{},
			ToolSwitcher{Tool: t},
			Pressable{},
			Position{Vec2: Vec2{2 + 8*float64(i), 2}, Space: SpaceScreen},
			Extent{Vec2: Vec2{8, 8}},
			Image{Source: t.Icon()},
			Hoverable{},
		)
	}
}

// registerPipeline adds every system in frame order.
func registerPipeline(w *World, cfg *Config) error {
	steps := []struct {
		phase  Phase
		name   string
		system System
	}{
		{PhaseContext, "camera context", CameraContextSystem{}},
		{PhaseContext, "mouse", MouseSystem{}},

		{PhaseControl, "hover", HoverSystem{}},
		{PhaseControl, "press", PressSystem{}},
		{PhaseControl, "tool switcher", ToolSwitcherSystem{}},
		{PhaseControl, "pencil tool", &PencilToolSystem{}},
		{PhaseControl, "dropper tool", DropperToolSystem{}},
		{PhaseControl, "fill tool", FillToolSystem{}},
		{PhaseControl, "grid tool", GridToolSystem{}},
		{PhaseControl, "cellref dropper tool", CellRefDropperSystem{}},
		{PhaseControl, "cellref tool", CellRefToolSystem{}},
		{PhaseControl, "egg tool", EggToolSystem{}},
		{PhaseControl, "box selection", &BoxSelectionSystem{}},
		{PhaseControl, "drag", &DragSystem{}},
		{PhaseControl, "canvas export", CanvasExportSystem{Dir: cfg.Editor.ExportDir}},
		{PhaseControl, "camera", CameraSystem{RecenterSeconds: cfg.Editor.RecenterSeconds}},
		{PhaseControl, "glide", GlideSystem{}},
		{PhaseControl, "motion", MotionSystem{}},
		{PhaseControl, "wandering", WanderingSystem{}},
		{PhaseControl, "egg timer", EggTimerSystem{}},
		{PhaseControl, "tiny friend", TinyFriendSystem{}},
		{PhaseControl, "image load", ImageLoadSystem{}},

		{PhaseRender, "background grid", BackgroundGridRenderer{}},
		{PhaseRender, "position marker", PositionMarkerRenderer{}},
		{PhaseRender, "canvas", CanvasRenderer{}},
		{PhaseRender, "sprite region", SpriteRegionRenderer{}},
		{PhaseRender, "debug outline", DebugOutlineRenderer{}},
		{PhaseRender, "box selection render", BoxSelectionRenderer{}},
		{PhaseRender, "button", ButtonRenderer{}},
		{PhaseRender, "dropper cursor", DropperCursorRenderer{}},
		{PhaseRender, "pencil cursor", PencilCursorRenderer{}},
		{PhaseRender, "grid tool render", GridToolRenderer{}},
		{PhaseRender, "cellref cursor", CellRefCursorRenderer{}},

		{PhaseCleanup, "selectable delete", SelectableDeleteSystem{}},
		{PhaseCleanup, "canvas delete", CanvasDeleteSystem{}},
		{PhaseCleanup, "image delete", ImageDeleteSystem{}},
		{PhaseCleanup, "final delete", FinalDeleteSystem{}},
	}
	for _, s := range steps {
		if err := w.AddSystem(s.phase, s.name, s.system); err != nil {
			return fmt.Errorf("register pipeline: %w", err)
		}
	}
	return nil
}
