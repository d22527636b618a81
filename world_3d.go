package dieroller

import (
	"image"
	"log"
	"math"
	"sort"
	"sync"
	"time"

	"golang.org/x/image/colornames"
	"golang.org/x/image/vector"
)

// World owns the bodies of a scene, advances them on each tick and
// paints them with their cast shadows. All methods are safe to call
// from different goroutines; a single mutex serialises them.
type World struct {
	mu sync.Mutex

	config  WorldConfig
	camera  *Camera
	light   Vector3
	texture *Texture

	bodies  []Body
	shadows []Face

	now      func() time.Time
	lastTick time.Time
	ticked   bool

	// When paced, Update only steps after Outline has been read.
	paced       bool
	outlineRead bool
}

// NewWorld builds an empty world. texture may be nil, in which case faces
// are painted flat.
func NewWorld(cfg WorldConfig, texture *Texture) *World {
	return &World{
		config:  cfg,
		camera:  cfg.Camera(),
		light:   cfg.Light(),
		texture: texture,
		now:     time.Now,
	}
}

// SetClock replaces the wall clock used by Update.
func (w *World) SetClock(now func() time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.now = now
}

// PaceByOutline makes Update hold the bodies still until the outline of
// the previous step has been read. Held time is dropped, not caught up.
func (w *World) PaceByOutline(paced bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.paced = paced
}

func (w *World) Config() WorldConfig {
	return w.config
}

func (w *World) Camera() *Camera {
	return w.camera
}

func (w *World) Add(b Body) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.bodies = append(w.bodies, b)
}

func (w *World) Bodies() []Body {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]Body(nil), w.bodies...)
}

// Settled reports whether every body has come to rest.
func (w *World) Settled() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, b := range w.bodies {
		if b.Moving() {
			return false
		}
	}
	return true
}

// Update advances the world by the wall time elapsed since the previous
// call. The first call only records the starting time.
func (w *World) Update() {
	w.mu.Lock()
	defer w.mu.Unlock()
	now := w.now()
	if !w.ticked {
		w.ticked = true
		w.lastTick = now
		return
	}
	dt := now.Sub(w.lastTick).Seconds()
	w.lastTick = now
	if w.paced {
		if !w.outlineRead {
			return
		}
		w.outlineRead = false
	}
	w.step(dt)
}

// Step advances the world by a fixed dt in seconds.
func (w *World) Step(dt float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.step(dt)
}

func (w *World) step(dt float64) {
	if dt > 0 {
		accel := w.config.Acceleration()
		for _, b := range w.bodies {
			b.Update(dt, accel, w.config.FloorZ)
		}
	}
	w.shadows = w.castShadows()
}

// castShadows projects every lit face onto the floor along the light.
func (w *World) castShadows() []Face {
	var out []Face
	if w.light.Z <= 0 {
		return out
	}
	floor := NewFloor(w.config.FloorZ)
	for _, b := range w.bodies {
		for _, f := range b.ColoredFaces() {
			if f.CommonNormal().Dot(w.light) <= 0 {
				continue
			}
			shadow := Face{Vertices: make([]Vector3, len(f.Vertices)), Label: f.Label}
			for i, p := range f.Vertices {
				shadow.Vertices[i], _ = floor.ProjectAlong(p, w.light)
			}
			out = append(out, shadow)
		}
	}
	return out
}

// Shadows returns the shadow polygons from the last tick, in world space.
func (w *World) Shadows() []Face {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]Face(nil), w.shadows...)
}

// visibleFaces returns the faces turned toward the camera, farthest
// first.
func (w *World) visibleFaces() []ColoredFace {
	var faces []ColoredFace
	for _, b := range w.bodies {
		for _, f := range b.ColoredFaces() {
			if !w.camera.IsFacingAway(f.Face) {
				faces = append(faces, f)
			}
		}
	}
	sort.SliceStable(faces, func(i, j int) bool {
		return w.camera.Depth(faces[i].Face) < w.camera.Depth(faces[j].Face)
	})
	return faces
}

// brightness remaps Lambert's cosine into [darkest, lightest].
func (w *World) brightness(normal Vector3) float64 {
	lambert := math.Max(0, normal.Dot(w.light))
	return lambert*(w.config.Lightest-w.config.Darkest) + w.config.Darkest
}

// Render paints shadows and then the visible faces back to front onto
// dst. dst is not cleared first.
func (w *World) Render(dst *image.RGBA) {
	w.mu.Lock()
	defer w.mu.Unlock()

	z := vector.NewRasterizer(dst.Bounds().Dx(), dst.Bounds().Dy())
	for _, s := range w.shadows {
		fillConvexPolygon(dst, z, w.camera.ScreenPoints(s), colornames.Black)
	}
	for _, f := range w.visibleFaces() {
		screen := w.camera.ScreenPoints(f.Face)
		b := w.brightness(f.CommonNormal())
		fillConvexPolygon(dst, z, screen, shade(f.Color, b))
		textureFace(dst, w.texture, screen, f.Face, f.Color, b)
	}
}

// Snapshot renders into a fresh transparent image of the configured size.
func (w *World) Snapshot() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w.config.Width, w.config.Height))
	w.Render(img)
	return img
}

// Outline is the union of the visible face polygons and the shadows, in
// screen space.
func (w *World) Outline() Silhouette {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.outlineRead = true

	var polygons [][]Vector2
	for _, s := range w.shadows {
		polygons = append(polygons, w.camera.ScreenPoints(s))
	}
	for _, f := range w.visibleFaces() {
		polygons = append(polygons, w.camera.ScreenPoints(f.Face))
	}
	return NewSilhouette(polygons)
}

// LogState prints where every body is; used by the CLI at shutdown.
func (w *World) LogState() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i, b := range w.bodies {
		log.Printf("Body %d at %v moving=%t", i, b.Frame().Location, b.Moving())
	}
}
