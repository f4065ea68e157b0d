package main

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/tetryon/physbed/config"
	"github.com/tetryon/physbed/render"
	"github.com/tetryon/physbed/scenario"
	"github.com/tetryon/physbed/scene"
	"github.com/tetryon/physbed/sim"
)

const defaultScenePath = "scene.json"

type Game struct {
	cfg      config.Config
	renderer *render.Renderer
	world    *sim.World
	watcher  *scene.Watcher
	capture  render.FrameWriter
	panel    *ebitenui.UI

	paused   bool
	stepOnce bool
	frames   int
}

func NewGame(cfg config.Config) (*Game, error) {
	cam := render.NewCamera(cfg.Window.Width, cfg.Window.Height)
	if cfg.Zoom > 0 {
		cam.Zoom = cfg.Zoom
	}

	var textures *render.MaterialTextures
	if cfg.Textured {
		textures = render.NewMaterialTextures()
	}
	renderer := render.NewRenderer(cam, textures)
	renderer.SetDebug(cfg.DebugDraw)

	g := &Game{
		cfg:      cfg,
		renderer: renderer,
		world:    sim.NewWorld(),
		paused:   cfg.StartPaused,
	}

	if err := g.loadInitial(); err != nil {
		return nil, err
	}

	if watchPaths := nonEmpty(cfg.Scenario, cfg.Scene); len(watchPaths) > 0 {
		w, err := scene.NewWatcher(watchPaths...)
		if err != nil {
			log.Printf("hot reload disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	if cfg.Capture.Path != "" {
		fw, err := render.NewFrameWriter(cfg.Capture.Path, cfg.Capture.Width, cfg.Capture.Height, cfg.Capture.FPS)
		if err != nil {
			return nil, fmt.Errorf("capture: %w", err)
		}
		g.capture = fw
		renderer.SetCapture(fw)
	}

	g.panel = NewControlPanel(g)
	return g, nil
}

func (g *Game) loadInitial() error {
	switch {
	case g.cfg.Scenario != "":
		return g.loadScenario(g.cfg.Scenario)
	case g.cfg.Scene != "":
		return g.loadScene(g.cfg.Scene)
	}
	return nil
}

func (g *Game) loadScenario(path string) error {
	st, err := scenario.Load(path)
	if err != nil {
		return err
	}
	if err := g.world.Populate(st); err != nil {
		return err
	}
	log.Printf("scenario %s: %d objects", path, st.Len())
	return nil
}

func (g *Game) loadScene(path string) error {
	var st scene.SceneState
	if err := st.Load(path); err != nil {
		return err
	}
	if err := g.world.Populate(&st); err != nil {
		return err
	}
	log.Printf("scene %s: %d objects", path, st.Len())
	return nil
}

func (g *Game) saveScene() {
	path := g.cfg.Scene
	if path == "" {
		path = defaultScenePath
	}
	if err := g.world.Capture().Save(path); err != nil {
		log.Printf("save scene: %v", err)
		return
	}
	log.Printf("saved %d objects to %s", g.world.Len(), path)
}

func (g *Game) reload() {
	if err := g.loadInitial(); err != nil {
		log.Printf("reload: %v", err)
	}
}

// toggleCapture pauses or resumes frame export. The writer stays open either
// way; Close finalizes it.
func (g *Game) toggleCapture() {
	if g.capture == nil {
		log.Print("no capture output configured")
		return
	}
	if g.renderer.Capturing() {
		g.renderer.SetCapture(nil)
		log.Print("capture paused")
	} else {
		g.renderer.SetCapture(g.capture)
		log.Print("capture resumed")
	}
}

func (g *Game) Update() error {
	g.frames++
	g.drainWatcher()
	g.handleKeys()
	g.panel.Update()

	if !g.paused || g.stepOnce {
		g.world.Step(g.cfg.TimeStep)
		g.stepOnce = false
	}
	return nil
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("%s changed, reloading", path)
			if strings.ToLower(filepath.Ext(path)) == ".tengo" {
				if err := g.loadScenario(path); err != nil {
					log.Printf("reload scenario: %v", err)
				}
			} else {
				if err := g.loadScene(path); err != nil {
					log.Printf("reload scene: %v", err)
				}
			}
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("watcher: %v", err)
		default:
			return
		}
	}
}

func (g *Game) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) && g.paused {
		g.stepOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		g.renderer.SetDebug(!g.renderer.Debug())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.saveScene()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.reload()
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	g.renderer.Begin(screen)
	g.world.DebugDraw(g.renderer, g.cfg.Textured)
	g.renderer.Flush()

	g.panel.Draw(screen)

	state := "running"
	if g.paused {
		state = "paused"
	}
	g.renderer.DrawString(10, g.cfg.Window.Height-20, "%s  objects: %d  frame: %d  fps: %.1f", state, g.world.Len(), g.frames, ebiten.ActualFPS())
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Window.Width, g.cfg.Window.Height
}

// Close releases the watcher and finalizes any capture in progress.
func (g *Game) Close() {
	if g.watcher != nil {
		g.watcher.Close()
	}
	if g.capture != nil {
		if err := g.capture.Finish(); err != nil {
			log.Printf("finish capture: %v", err)
		}
	}
}

func nonEmpty(paths ...string) []string {
	var out []string
	for _, p := range paths {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
