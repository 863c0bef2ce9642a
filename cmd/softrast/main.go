// softrast - CPU 3D software rasterizer with a terminal viewer.
// View OBJ and GLB files, or the built-in cube, rendered entirely on
// the CPU and displayed with half-block cells.
//
// Controls:
//
//	1-5         - Render mode (wireframe, +vertices, filled+wire, all, filled)
//	W/S         - Pitch up/down
//	A/D         - Yaw left/right
//	Q/E         - Roll left/right
//	Space       - Apply random impulse
//	C           - Toggle backface culling
//	G           - Toggle background grid
//	B           - Toggle painter's depth sorting
//	+/-         - Dolly in/out
//	R           - Reset rotation and camera
//	Esc         - Quit
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"

	"github.com/softrast/softrast/pkg/engine"
	"github.com/softrast/softrast/pkg/math3d"
	"github.com/softrast/softrast/pkg/models"
	"github.com/softrast/softrast/pkg/render"
)

type options struct {
	fps       int
	bg        string
	sortDepth bool
	noCull    bool
	noGrid    bool
}

func main() {
	var opts options

	cmd := &cobra.Command{
		Use:   "softrast [model.obj|model.glb]",
		Short: "CPU 3D software rasterizer for the terminal",
		Long: `softrast renders 3D models entirely on the CPU and displays them
in the terminal using half-block cells. With no argument it shows the
built-in cube.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			modelPath := ""
			if len(args) > 0 {
				modelPath = args[0]
			}
			return run(modelPath, opts)
		},
	}

	cmd.Flags().IntVar(&opts.fps, "fps", 60, "target frames per second")
	cmd.Flags().StringVar(&opts.bg, "bg", "", "background color (R,G,B)")
	cmd.Flags().BoolVar(&opts.sortDepth, "sort-depth", false, "depth-sort triangles back to front")
	cmd.Flags().BoolVar(&opts.noCull, "no-cull", false, "disable backface culling")
	cmd.Flags().BoolVar(&opts.noGrid, "no-grid", false, "disable the background grid")

	if err := fang.Execute(context.Background(), cmd); err != nil {
		os.Exit(1)
	}
}

// RotationAxis tracks position and velocity for one rotation axis with
// spring decay.
type RotationAxis struct {
	Position  float64
	Velocity  float64
	velSpring harmonica.Spring
	velAccel  float64
}

// NewRotationAxis creates an axis whose velocity decays toward zero on
// a critically damped spring.
func NewRotationAxis(fps int) RotationAxis {
	return RotationAxis{
		velSpring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// Update applies velocity to position and decays velocity toward 0.
func (a *RotationAxis) Update() {
	a.Position += a.Velocity
	a.Velocity, a.velAccel = a.velSpring.Update(a.Velocity, a.velAccel, 0)
}

// RotationState holds per-axis rotation with spring physics.
type RotationState struct {
	Pitch, Yaw, Roll RotationAxis
	fps              int
}

func NewRotationState(fps int) *RotationState {
	return &RotationState{
		Pitch: NewRotationAxis(fps),
		Yaw:   NewRotationAxis(fps),
		Roll:  NewRotationAxis(fps),
		fps:   fps,
	}
}

func (r *RotationState) Update() {
	r.Pitch.Update()
	r.Yaw.Update()
	r.Roll.Update()
}

func (r *RotationState) ApplyImpulse(pitch, yaw, roll float64) {
	r.Pitch.Velocity += pitch
	r.Yaw.Velocity += yaw
	r.Roll.Velocity += roll
}

func (r *RotationState) Reset() {
	r.Pitch = NewRotationAxis(r.fps)
	r.Yaw = NewRotationAxis(r.fps)
	r.Roll = NewRotationAxis(r.fps)
}

// loadMesh picks the loader by extension. An empty path means the
// built-in cube.
func loadMesh(path string) (*models.Mesh, error) {
	if path == "" || path == "cube" {
		return models.NewCube(), nil
	}

	var mesh *models.Mesh
	var err error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		mesh, err = models.LoadOBJ(path)
	case ".glb", ".gltf":
		mesh, err = models.LoadGLB(path)
	default:
		return nil, fmt.Errorf("unsupported format: %s (use .obj or .glb)", ext)
	}
	if err != nil {
		return nil, err
	}
	mesh.FitToUnit()
	return mesh, nil
}

func parseBackground(s string) (render.Color, bool) {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "%d,%d,%d", &r, &g, &b); err != nil {
		return 0, false
	}
	return render.RGB(r, g, b), true
}

func run(modelPath string, opts options) error {
	mesh, err := loadMesh(modelPath)
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}

	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	termRenderer := render.NewTerminalRenderer(term, width, height)
	fbWidth, fbHeight := termRenderer.FramebufferSize()

	eng := engine.New(mesh, fbWidth, fbHeight)
	eng.DrawGrid = !opts.noGrid
	eng.SortByDepth = opts.sortDepth
	eng.Pipeline().BackfaceCulling = !opts.noCull
	if bg, ok := parseBackground(opts.bg); ok {
		eng.BackgroundColor = bg
	}

	rotation := NewRotationState(opts.fps)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Input state
	inputTorque := struct{ pitch, yaw, roll float64 }{}
	const torqueStrength = 3.0

	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				termRenderer = render.NewTerminalRenderer(term, width, height)
				fbWidth, fbHeight = termRenderer.FramebufferSize()
				eng.Resize(fbWidth, fbHeight)

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape"), ev.MatchString("ctrl+c"):
					cancel()
					return
				case ev.MatchString("1"):
					eng.Mode = engine.Wireframe
				case ev.MatchString("2"):
					eng.Mode = engine.WireframeVertices
				case ev.MatchString("3"):
					eng.Mode = engine.FilledWireframe
				case ev.MatchString("4"):
					eng.Mode = engine.FilledWireframeVertices
				case ev.MatchString("5"):
					eng.Mode = engine.Filled
				case ev.MatchString("c"):
					eng.Pipeline().BackfaceCulling = !eng.Pipeline().BackfaceCulling
				case ev.MatchString("g"):
					eng.DrawGrid = !eng.DrawGrid
				case ev.MatchString("b"):
					eng.SortByDepth = !eng.SortByDepth
				case ev.MatchString("r"):
					rotation.Reset()
					eng.Camera = render.NewCameraState()
				case ev.MatchString("w", "up"):
					inputTorque.pitch = -torqueStrength
				case ev.MatchString("s", "down"):
					inputTorque.pitch = torqueStrength
				case ev.MatchString("a", "left"):
					inputTorque.yaw = -torqueStrength
				case ev.MatchString("d", "right"):
					inputTorque.yaw = torqueStrength
				case ev.MatchString("q"):
					inputTorque.roll = -torqueStrength
				case ev.MatchString("e"):
					inputTorque.roll = torqueStrength
				case ev.MatchString("space"):
					rotation.ApplyImpulse(
						(rand.Float64()-0.5)*1.5,
						(rand.Float64()-0.5)*1.5,
						(rand.Float64()-0.5)*1.5,
					)
				case ev.MatchString("+", "="):
					eng.Camera.Dolly(0.5)
					if eng.Camera.Position.Z > -1 {
						eng.Camera.Position.Z = -1
					}
				case ev.MatchString("-", "_"):
					eng.Camera.Dolly(-0.5)
					if eng.Camera.Position.Z < -20 {
						eng.Camera.Position.Z = -20
					}
				}

			case uv.KeyReleaseEvent:
				switch {
				case ev.MatchString("w"), ev.MatchString("up"), ev.MatchString("s"), ev.MatchString("down"):
					inputTorque.pitch = 0
				case ev.MatchString("a"), ev.MatchString("left"), ev.MatchString("d"), ev.MatchString("right"):
					inputTorque.yaw = 0
				case ev.MatchString("q"), ev.MatchString("e"):
					inputTorque.roll = 0
				}
			}
		}
	}()

	targetDuration := time.Second / time.Duration(opts.fps)
	lastFrame := time.Now()

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil
		default:
		}

		now := time.Now()
		dt := now.Sub(lastFrame).Seconds()
		lastFrame = now
		if dt > 0.1 {
			dt = 0.1
		}

		// Apply input torque and decay it (key release events unreliable)
		rotation.ApplyImpulse(
			inputTorque.pitch*dt,
			inputTorque.yaw*dt,
			inputTorque.roll*dt,
		)
		inputTorque.pitch *= 0.9
		inputTorque.yaw *= 0.9
		inputTorque.roll *= 0.9

		rotation.Update()
		eng.Rotation = math3d.V3(
			rotation.Pitch.Position,
			rotation.Yaw.Position,
			rotation.Roll.Position,
		)

		if err := eng.Update(); err != nil {
			cleanup()
			return fmt.Errorf("render frame: %w", err)
		}
		eng.Render()

		termRenderer.Render(eng.Framebuffer())
		if err := termRenderer.Flush(); err != nil {
			cleanup()
			return fmt.Errorf("flush: %w", err)
		}

		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
