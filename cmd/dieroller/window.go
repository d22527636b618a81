package main

import (
	"image"
	"image/color"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/smasonuk/dieroller"
)

var (
	whiteImage = ebiten.NewImage(3, 3)
	whiteSub   *ebiten.Image

	outlineColor = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
)

func init() {
	whiteImage.Fill(color.White)
	whiteSub = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

// game shows the world in a transparent, undecorated window so the dice
// appear to roll over whatever is underneath.
type game struct {
	world   *dieroller.World
	frame   *image.RGBA
	canvas  *ebiten.Image
	outline bool
	linger  time.Duration

	settledAt time.Time
}

func runWindow(world *dieroller.World, f *flags) error {
	cfg := world.Config()
	g := &game{
		world:   world,
		frame:   image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height)),
		canvas:  ebiten.NewImage(cfg.Width, cfg.Height),
		outline: f.outline,
		linger:  f.linger,
	}
	world.PaceByOutline(f.outline)

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(appName)
	ebiten.SetWindowDecorated(false)
	ebiten.SetTPS(max(1, int(time.Second/cfg.TickInterval)))

	log.Println("Opening window...")
	err := ebiten.RunGameWithOptions(g, &ebiten.RunGameOptions{ScreenTransparent: true})
	world.LogState()
	return err
}

func (g *game) Update() error {
	g.world.Update()
	if !g.world.Settled() {
		return nil
	}
	if g.settledAt.IsZero() {
		g.settledAt = time.Now()
		log.Println("All dice settled.")
	}
	if time.Since(g.settledAt) > g.linger {
		return ebiten.Termination
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	clear(g.frame.Pix)
	g.world.Render(g.frame)
	g.canvas.WritePixels(g.frame.Pix)
	screen.DrawImage(g.canvas, nil)

	if g.outline {
		for _, poly := range g.world.Outline().Polygons() {
			drawPolygonOutline(screen, poly, 1, outlineColor)
		}
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	cfg := g.world.Config()
	return cfg.Width, cfg.Height
}

// drawPolygonOutline strokes a closed polygon using the vector package.
func drawPolygonOutline(screen *ebiten.Image, pts []dieroller.Vector2, strokeWidth float32, clr color.RGBA) {
	if len(pts) < 2 {
		return
	}

	var path vector.Path
	path.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		path.LineTo(float32(p.X), float32(p.Y))
	}
	path.Close()

	vertices, indices := path.AppendVerticesAndIndicesForStroke(nil, nil, &vector.StrokeOptions{
		Width:    strokeWidth,
		LineJoin: vector.LineJoinRound,
	})

	cr := float32(clr.R) / 255.0
	cg := float32(clr.G) / 255.0
	cb := float32(clr.B) / 255.0
	ca := float32(clr.A) / 255.0
	for i := range vertices {
		vertices[i].ColorR = cr
		vertices[i].ColorG = cg
		vertices[i].ColorB = cb
		vertices[i].ColorA = ca
		vertices[i].SrcX = 1
		vertices[i].SrcY = 1
	}

	screen.DrawTriangles(vertices, indices, whiteSub, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}
