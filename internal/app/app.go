// Package app runs the configurator window: it loads the model, renders
// the 3D view and wires the panel to the part controller.
package app

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"go.uber.org/zap"

	"github.com/Faultbox/padforge/internal/assets"
	"github.com/Faultbox/padforge/internal/config"
	"github.com/Faultbox/padforge/internal/configurator"
	"github.com/Faultbox/padforge/internal/engine/camera"
	"github.com/Faultbox/padforge/internal/engine/debug"
	"github.com/Faultbox/padforge/internal/engine/lighting"
	"github.com/Faultbox/padforge/internal/engine/renderer"
	"github.com/Faultbox/padforge/internal/engine/scene"
	"github.com/Faultbox/padforge/internal/engine/ui"
	"github.com/Faultbox/padforge/internal/logger"
)

// messageDuration is how long transient notifications stay on screen.
const messageDuration = 2 * time.Second

// App is the configurator application.
type App struct {
	cfg *config.Config
	log *zap.Logger

	backend  *ui.Backend
	renderer *renderer.Renderer
	camera   *camera.OrbitCamera
	rig      *lighting.Rig

	assets *assets.Manager
	loader *assets.Loader

	sched      *configurator.FrameScheduler
	panel      *ui.Panel
	options    configurator.Options
	overrides  map[string]*scene.Material
	controller *configurator.Controller
	world      *scene.Node

	screenshots *debug.ScreenshotCapture
	pointer     ui.Pointer
	viewActive  bool
	hovered     string

	message   string
	messageAt time.Time
}

// New creates the window and GL resources and starts loading the model.
// Must be called on the main OS thread.
func New(cfg *config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		log = logger.Log
	}
	a := &App{
		cfg:   cfg,
		log:   log,
		sched: configurator.NewFrameScheduler(time.Now()),
	}

	// Everything derived from config is checked before the window opens.
	var err error
	if a.rig, err = LightRig(cfg.Lighting); err != nil {
		return nil, err
	}
	if a.overrides, err = cfg.Model.BuildMaterialOverrides(); err != nil {
		return nil, err
	}
	if a.options, err = ControllerOptions(cfg.Configurator); err != nil {
		return nil, err
	}
	rcfg, err := RendererConfig(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.Window.Fullscreen {
		log.Warn("fullscreen is not supported by the window backend, using a window")
	}
	a.backend, err = ui.NewBackend(cfg.Window.Title, int32(cfg.Window.Width), int32(cfg.Window.Height), rcfg.Background)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The renderer needs the context created by the backend.
	a.renderer, err = renderer.New(rcfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.camera = NewCamera(cfg.Camera)
	a.panel = ui.NewPanel(a.options.Palette.Swatches(), log)
	a.screenshots = debug.NewScreenshotCapture(cfg.Screenshot.Dir, cfg.Screenshot.Prefix, cfg.Screenshot.Format)

	a.assets = assets.NewManager(cfg.Model.SearchDirs...)
	a.loader = assets.NewLoader(a.assets, log)
	a.log.Info("loading model", zap.String("path", cfg.Model.Path))
	a.loader.LoadAsync(cfg.Model.Path)

	return a, nil
}

// Run runs the render loop until the window is closed.
func (a *App) Run() {
	a.backend.Run(a.frame)
}

// Close releases GPU resources and caches.
func (a *App) Close() {
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.assets != nil {
		a.assets.Close()
	}
}

// Controller returns the part controller, nil until the model is loaded.
func (a *App) Controller() *configurator.Controller {
	return a.controller
}

func (a *App) frame() {
	now := time.Now()
	a.loader.Poll(a.onModelLoaded, a.onModelFailed)
	a.sched.Tick(now)

	x, y, w, h := ui.Viewport()
	panelWidth := min(a.cfg.Render.PanelWidth, w/2)
	viewWidth := w - panelWidth

	a.renderView(x, y, viewWidth, h)
	a.panel.Render(x+viewWidth, y, panelWidth, h)
	a.panel.PollKeys()

	if ui.IsKeyPressed(imgui.KeyF12) {
		a.captureScreenshot()
	}
	a.renderMessage(x, y, now)
}

// onModelLoaded places the model and builds the controller. It runs on
// the render goroutine via Loader.Poll.
func (a *App) onModelLoaded(m *assets.Model) {
	world := scene.NewGroup("model")
	world.Local = Placement(a.cfg.Model)
	world.Add(m.Root)
	a.world = world

	reg, mats := configurator.Build(world, a.overrides)
	opts := a.options
	opts.Scheduler = a.sched
	opts.Panel = a.panel
	opts.Logger = a.log.Named("configurator")
	a.controller = configurator.New(reg, mats, world, opts)

	if a.cfg.Camera.AutoFit {
		a.camera.FitToBounds(scene.TreeBounds(world))
	}

	a.log.Info("parts registered",
		zap.Int("meshes", reg.Len()),
		zap.Strings("selectable", a.controller.Parts()),
	)
	a.backend.SetWindowTitle(fmt.Sprintf("%s - %s", a.cfg.Window.Title, filepath.Base(m.Path)))
}

// onModelFailed leaves the app running without a controller. The loader
// has already logged the failure with a file preview.
func (a *App) onModelFailed(path string, err error) {
	a.panel.SetUnavailable(err.Error())
	a.showMessage(fmt.Sprintf("Could not load %s", filepath.Base(path)))
}

func (a *App) captureScreenshot() {
	pixels, w, h := a.renderer.ReadPixels()
	path, err := a.screenshots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		a.log.Error("screenshot failed", zap.Error(err))
		a.showMessage("Screenshot failed")
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
	a.showMessage("Saved " + path)
}

func (a *App) showMessage(msg string) {
	a.message = msg
	a.messageAt = time.Now()
}

func (a *App) renderMessage(x, y float32, now time.Time) {
	if a.message == "" {
		return
	}
	if now.Sub(a.messageAt) > messageDuration {
		a.message = ""
		return
	}
	flags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsNoMove | imgui.WindowFlagsNoScrollbar |
		imgui.WindowFlagsAlwaysAutoResize | imgui.WindowFlagsNoFocusOnAppearing |
		imgui.WindowFlagsNoInputs
	imgui.SetNextWindowPos(imgui.NewVec2(x+10, y+10))
	imgui.SetNextWindowBgAlpha(0.85)
	if imgui.BeginV("##Notify", nil, flags) {
		imgui.Text(a.message)
	}
	imgui.End()
}

// selectedMesh returns the mesh of the selected part, if any.
func (a *App) selectedMesh() *scene.Mesh {
	if a.controller == nil {
		return nil
	}
	mesh, _ := a.controller.SelectedMesh()
	return mesh
}

// isPart reports whether name is a selectable part.
func (a *App) isPart(name string) bool {
	if a.controller == nil || name == "" {
		return false
	}
	for _, p := range a.controller.Parts() {
		if p == name {
			return true
		}
	}
	return false
}
