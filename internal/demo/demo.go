// Package demo is the interactive ebiten front end: click to place blocks,
// hold the right button to light the arena from the cursor.
package demo

import (
	"fmt"
	"image/color"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/Shadow-Cast/internal/shadow"
)

// DefaultLightRadius is the radius in pixels of the radial light sprite.
const DefaultLightRadius = 255

// statusTicks is how long a status message stays on screen (~2s at 60 TPS).
const statusTicks = 120

// Config holds the host settings for a Game.
type Config struct {
	Radius      float64 // maxRadius passed to the solver
	LightRadius int     // radial light sprite radius in pixels
}

// DefaultConfig returns the settings of the stock demo.
func DefaultConfig() Config {
	return Config{Radius: shadow.DefaultRadius, LightRadius: DefaultLightRadius}
}

// Game implements ebiten.Game over a shadow.World. One world unit is one
// screen pixel.
type Game struct {
	world  *shadow.World
	cfg    Config
	width  int
	height int

	lit   *ebiten.Image // radial light, positioned at the source each frame
	mask  *ebiten.Image // visibility fan, white where lit
	light *ebiten.Image // light sprite
	face  text.Face

	// Per-frame visibility state.
	lighting  bool
	origin    shadow.Vec
	points    []shadow.Point
	raysCast  int
	showEdges bool

	status      string
	statusTimer int

	copyText func(string) error
}

// New creates the demo for w. A non-positive radius or light radius falls
// back to the defaults.
func New(w *shadow.World, cfg Config) *Game {
	def := DefaultConfig()
	if cfg.Radius <= 0 {
		cfg.Radius = def.Radius
	}
	if cfg.LightRadius <= 0 {
		cfg.LightRadius = def.LightRadius
	}
	ext := w.Extent()
	width, height := int(ext.X), int(ext.Y)

	return &Game{
		world:    w,
		cfg:      cfg,
		width:    width,
		height:   height,
		lit:      ebiten.NewImage(width, height),
		mask:     ebiten.NewImage(width, height),
		light:    ebiten.NewImageFromImage(radialLight(cfg.LightRadius)),
		face:     text.NewGoXFace(basicfont.Face7x13),
		copyText: clipboard.WriteAll,
	}
}

// Update handles input and recomputes visibility while the light is held.
func (g *Game) Update() error {
	mx, my := ebiten.CursorPosition()
	cursor := shadow.Vec{X: float64(mx), Y: float64(my)}

	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.toggleAt(cursor)
	}
	g.showEdges = ebiten.IsKeyPressed(ebiten.KeyD)

	g.lighting = ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	if g.lighting {
		if err := g.solve(cursor); err != nil {
			return err
		}
	} else {
		g.points = nil
		g.raysCast = 0
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copyScene()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if g.statusTimer > 0 {
		g.statusTimer--
	}
	return nil
}

// toggleAt flips the cell under v. Boundary cells stay fixed.
func (g *Game) toggleAt(v shadow.Vec) {
	col, row, ok := pickCell(g.world.Grid(), g.world.BlockSize(), v)
	if !ok {
		return
	}
	if err := g.world.Toggle(col, row); err != nil {
		g.setStatus(err.Error())
	}
}

func (g *Game) solve(origin shadow.Vec) error {
	res, err := g.world.Visibility(origin, g.cfg.Radius)
	if err != nil {
		return fmt.Errorf("visibility from (%.0f,%.0f): %w", origin.X, origin.Y, err)
	}
	g.origin = origin
	g.points = shadow.Dedupe(res.Points, shadow.DedupeTolerance)
	g.raysCast = len(res.Points)
	return nil
}

func (g *Game) copyScene() {
	edges, _ := g.world.Edges()
	js, err := sceneGeoJSON(edges, g.origin, g.points)
	if err == nil {
		err = g.copyText(js)
	}
	if err != nil {
		g.setStatus("copy failed: " + err.Error())
		return
	}
	g.setStatus(fmt.Sprintf("copied %d edges to clipboard", len(edges)))
}

func (g *Game) setStatus(msg string) {
	g.status = msg
	g.statusTimer = statusTicks
}

// Draw renders the light, the blocks, optional debug edges and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	if g.lighting && len(g.points) > 1 {
		g.drawLight(screen)
	}
	g.drawBlocks(screen)
	if g.showEdges {
		edges, _ := g.world.Edges()
		drawEdges(screen, edges)
	}
	g.drawHUD(screen)
}

// Layout keeps the logical screen at the size of the arena.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
