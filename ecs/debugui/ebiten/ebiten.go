// Package ebiten provides Dear ImGui backend integration for the Ebiten game engine.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/sparsecs/ecs"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation.
// Use this to integrate Dear ImGui rendering into Ebiten game loops.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// Game runs a registry inside an Ebiten game loop, one scheduling pass per
// Update, with the ImGui frame opened around it.
type Game struct {
	Registry *ecs.Registry
	Backend  ImguiBackend

	// DrawWorld, when set, renders game content beneath the ImGui overlay.
	DrawWorld func(screen *ebiten.Image)
}

// NewGame wires r to a fresh Ebiten ImGui backend and a window of the given
// size.
func NewGame(r *ecs.Registry, title string, width, height int) *Game {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	return &Game{
		Registry: r,
		Backend:  ImguiBackend{EbitenBackend: backend},
	}
}

var _ ebiten.Game = (*Game)(nil)

func (g *Game) Update() error {
	g.Backend.BeginFrame()
	err := g.Registry.RunSystems()
	g.Backend.EndFrame()
	return err
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.Backend.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.DrawWorld != nil {
		g.DrawWorld(screen)
	}
	g.Backend.Draw(screen)
}

// Run blocks in ebiten.RunGame until the window closes or a scheduling pass
// fails.
func (g *Game) Run() error {
	return ebiten.RunGame(g)
}
