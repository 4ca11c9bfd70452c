package gui

import (
	"fmt"
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/pendulums/internal/config"
	"github.com/san-kum/pendulums/internal/dynamo"
	"github.com/san-kum/pendulums/internal/ensemble"
)

// HUD colors. The simulation itself draws on black.
var (
	ColBg      = rl.NewColor(0, 0, 0, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
)

const (
	windowW    = 1280
	windowH    = 720
	maxSamples = 200
)

type App struct {
	Name      string
	Cfg       *config.Config
	Ens       *ensemble.Ensemble
	Running   bool
	InMenu    bool
	Presets   []string
	Selected  int
	Timer     *ResetTimer
	Telemetry []float64 // live particle count per frame
	Font      rl.Font
}

func initWindow(fps int) {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(windowW, windowH, "pendulums")
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(0)
}

// loadFont loads Liberation Mono when installed and falls back to the
// raylib default font.
func loadFont() rl.Font {
	font := rl.LoadFontEx("/usr/share/fonts/liberation/LiberationMono-Regular.ttf", 32, nil, 0)
	if font.Texture.ID == 0 {
		return rl.GetFontDefault()
	}
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

// NewApp creates the window state. With interactive set the app opens on
// the preset menu; otherwise cfg starts running at once.
func NewApp(name string, cfg *config.Config, interactive bool) (*App, error) {
	app := &App{
		Name:      name,
		Cfg:       cfg,
		InMenu:    interactive,
		Presets:   config.ListPresets(),
		Telemetry: make([]float64, 0, maxSamples),
		Font:      loadFont(),
	}
	if !interactive {
		if err := app.load(name, cfg); err != nil {
			return nil, err
		}
	}
	return app, nil
}

func screenBounds() dynamo.Bounds {
	return dynamo.Bounds{Width: float64(rl.GetScreenWidth()), Height: float64(rl.GetScreenHeight())}
}

// load builds a fresh ensemble for cfg centred in the window.
func (a *App) load(name string, cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	ens, err := ensemble.New(cfg.EnsembleConfig(), screenBounds())
	if err != nil {
		return err
	}
	ens.SetVariant(int(cfg.Variant()))

	a.Name, a.Cfg, a.Ens = name, cfg, ens
	a.Timer = NewResetTimer(cfg.ResetInterval())
	a.Telemetry = a.Telemetry[:0]
	a.Running = true
	return nil
}

// RunInteractive opens the window on the preset menu and blocks until it
// is closed.
func RunInteractive(base *config.Config) error {
	initWindow(base.View.FPS)
	defer rl.CloseWindow()
	app, err := NewApp("", base, true)
	if err != nil {
		return err
	}
	app.RunLoop()
	return nil
}

// Run opens the window on cfg and blocks until it is closed.
func Run(name string, cfg *config.Config) error {
	initWindow(cfg.View.FPS)
	defer rl.CloseWindow()
	app, err := NewApp(name, cfg, false)
	if err != nil {
		return err
	}
	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if a.Update() {
			return
		}
		a.Draw()
	}
}

// Update handles input and advances one frame. It reports whether the user
// asked to quit.
func (a *App) Update() bool {
	if rl.IsKeyPressed(rl.KeyQ) {
		return true
	}
	if a.InMenu {
		a.updateMenu()
		return false
	}

	if rl.IsWindowResized() {
		// particles die against the new window now; pivots move on reset
		a.Ens.SetViewport(screenBounds())
	}

	for _, k := range []int32{rl.KeyOne, rl.KeyTwo, rl.KeyThree} {
		if v, ok := VariantForKey(k); ok && rl.IsKeyPressed(k) {
			a.Ens.SetVariant(v)
		}
	}
	if rl.IsKeyPressed(rl.KeyV) {
		a.Ens.ToggleVisible()
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Running = !a.Running
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.reset("key")
	}
	if rl.IsKeyPressed(rl.KeyEscape) {
		a.InMenu = true
		return false
	}

	if !a.Running {
		return false
	}
	if a.Timer.Advance(rl.GetFrameTime()) {
		a.reset("timer")
	}
	a.Ens.AdvanceAll()

	a.Telemetry = append(a.Telemetry, float64(a.Ens.ParticleCount()))
	if len(a.Telemetry) > maxSamples {
		a.Telemetry = a.Telemetry[1:]
	}
	return false
}

func (a *App) reset(reason string) {
	a.Ens.SetViewport(screenBounds())
	a.Timer.Restart()
	if err := a.Ens.Reset(); err != nil {
		log.Printf("reset (%s): %v", reason, err)
		return
	}
	log.Printf("reset (%s): generation %d", reason, a.Ens.Generation())
}

func (a *App) updateMenu() {
	if rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyJ) {
		a.Selected = (a.Selected + 1) % len(a.Presets)
	}
	if rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyK) {
		a.Selected = (a.Selected - 1 + len(a.Presets)) % len(a.Presets)
	}
	if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeySpace) {
		name := a.Presets[a.Selected]
		cfg, err := config.MustPreset(name)
		if err != nil {
			log.Printf("preset %s: %v", name, err)
			return
		}
		if a.Cfg != nil {
			cfg.View = a.Cfg.View
		}
		if err := a.load(name, cfg); err != nil {
			log.Printf("preset %s: %v", name, err)
			return
		}
		a.InMenu = false
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	if a.InMenu {
		a.drawMenu()
	} else {
		DrawEnsemble(a.Ens)
		a.DrawHUD()
	}

	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	h := int(rl.GetScreenHeight())
	w := int(rl.GetScreenWidth())

	a.drawText("pendulums", 30, 30, 24, ColSelect)
	a.drawText(fmt.Sprintf(":: %s", a.Name), 180, 34, 16, ColText)
	a.drawText(fmt.Sprintf("gen %d  tick %d  particles %d  %s",
		a.Ens.Generation(), a.Ens.Ticks(), a.Ens.ParticleCount(), a.Ens.Variant()), 30, 60, 14, ColText)

	a.DrawTelemetry(30, h-120)

	status := "RUNNING"
	col := ColSelect
	if !a.Running {
		status = "PAUSED"
		col = ColTextDim
	}
	a.drawText(status, w-130, 30, 16, col)
	if a.Timer.Interval > 0 {
		a.drawText(fmt.Sprintf("reset in %.0fs", a.Timer.Remaining().Seconds()), w-130, 52, 14, ColTextDim)
	}

	a.drawText("[1/2/3] SHAPE  [V] ARMS  [SPACE] PAUSE  [R] RESET  [ESC] MENU  [Q] QUIT", w-620, h-40, 14, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), 30, h-40, 14, ColTextDim)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}

// DrawTelemetry plots the live particle count as a line strip.
func (a *App) DrawTelemetry(rectX, rectY int) {
	if len(a.Telemetry) < 2 {
		return
	}
	width, height := 400, 60

	minVal, maxVal := a.Telemetry[0], a.Telemetry[0]
	for _, v := range a.Telemetry {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(a.Telemetry))
	for i, val := range a.Telemetry {
		px := float32(rectX) + (float32(i)/float32(len(a.Telemetry)))*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(rectY+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColAccent)
	a.drawText(fmt.Sprintf("particles %.0f", a.Telemetry[len(a.Telemetry)-1]), rectX+width+10, rectY+height-10, 14, ColText)
}

func (a *App) drawMenu() {
	a.drawText("pendulums", 50, 50, 40, ColSelect)
	a.drawText("Select Preset", 50, 100, 16, ColTextDim)

	y := 160
	for i, name := range a.Presets {
		if i == a.Selected {
			a.drawText(fmt.Sprintf("> %s", name), 50, y, 20, ColSelect)
		} else {
			a.drawText(fmt.Sprintf("  %s", name), 50, y, 20, ColText)
		}
		y += 28
	}

	a.drawText("ARROWS: NAVIGATE  ENTER: SELECT  Q: QUIT", int(rl.GetScreenWidth())-430, int(rl.GetScreenHeight())-40, 14, ColTextDim)
}
