package game

import (
	"math"
	"time"

	"github.com/annel0/voxelworld/internal/logging"
	"github.com/annel0/voxelworld/internal/physics"
	"github.com/annel0/voxelworld/internal/render"
	"github.com/annel0/voxelworld/internal/vec"
	"github.com/annel0/voxelworld/internal/world"
	"github.com/annel0/voxelworld/internal/world/block"
	"github.com/annel0/voxelworld/internal/world/block/implementations"
	"github.com/annel0/voxelworld/internal/world/entity"
)

// Параметры управления
const (
	MouseSensitivity = 0.15
	GroundSpeed      = 0.1
	AirSpeed         = 0.02
	SprintFactor     = 2.0
	JumpVelocity     = 0.5
	// BlockActionCooldown тиков между разрушением или установкой блока
	BlockActionCooldown = 2
	HotbarSize          = 10
)

// Options параметры игры
type Options struct {
	TPS              float64
	MaxTicksPerFrame int
	FOV              float64
	Spawn            vec.Vec3Float
}

// DefaultSpawn точка появления над травой плоского мира
var DefaultSpawn = vec.Vec3Float{X: 0.5, Y: world.GrassLevel + 2, Z: 0.5}

// Game владеет миром, игроком, камерой и рендерером.
// Все методы вызываются из одной горутины.
type Game struct {
	world    *world.World
	renderer *render.WorldRenderer
	rc       *render.RenderContext
	input    Input
	timer    *Timer
	camera   render.Camera
	player   *entity.Entity
	fov      float64

	hit          render.HitResult
	destroyTimer int
	placeTimer   int
	hotbar       [HotbarSize]*block.BlockType
	hotbarSlot   int

	frames uint64
	ticks  uint64
	logger *logging.Logger
}

// New создает игру и игрока в точке появления
func New(w *world.World, renderer *render.WorldRenderer, gpu render.GPU, input Input, opts Options, start time.Time) *Game {
	if opts.FOV <= 0 {
		opts.FOV = 70
	}
	if opts.Spawn == vec.Zero3 {
		opts.Spawn = DefaultSpawn
	}
	width, height := input.Viewport()
	g := &Game{
		world:    w,
		renderer: renderer,
		rc:       render.NewRenderContext(gpu, width, height),
		input:    input,
		timer:    NewTimer(opts.TPS, opts.MaxTicksPerFrame, start),
		fov:      opts.FOV,
		hit:      render.Miss,
		logger:   logging.GetGameLogger(),
	}
	for i := range g.hotbar {
		g.hotbar[i] = block.Air
	}
	g.hotbar[0] = implementations.Stone
	g.hotbar[1] = implementations.Dirt
	g.hotbar[2] = implementations.Grass

	g.player = w.CreateEntity(entity.Player, opts.Spawn.X, opts.Spawn.Y, opts.Spawn.Z)
	g.camera.MoveToEntity(g.player)
	g.camera.PreUpdate()
	g.logger.Info("игрок %s появился в (%.1f, %.1f, %.1f)", g.player.ID, opts.Spawn.X, opts.Spawn.Y, opts.Spawn.Z)
	return g
}

func (g *Game) Player() *entity.Entity      { return g.player }
func (g *Game) World() *world.World         { return g.world }
func (g *Game) HitResult() render.HitResult { return g.hit }
func (g *Game) Frames() uint64              { return g.frames }
func (g *Game) Ticks() uint64               { return g.ticks }

// HeldBlock блок в выбранной ячейке
func (g *Game) HeldBlock() *block.BlockType {
	return g.hotbar[g.hotbarSlot]
}

// Frame выполняет накопившиеся тики и рисует кадр с долей тика
func (g *Game) Frame(now time.Time) {
	g.timer.Update(now)
	in := g.input.Poll()
	if in.HotbarSlot >= 0 && in.HotbarSlot < HotbarSize {
		g.hotbarSlot = in.HotbarSlot
	}
	g.Rotate(-in.CursorDY*MouseSensitivity, -in.CursorDX*MouseSensitivity)

	for i := 0; i < g.timer.TickCount(); i++ {
		g.tick(in)
	}
	g.render(g.timer.PartialTick())
	g.frames++
}

// Rotate поворачивает игрока: pitch ограничен [-90, 90], yaw в [0, 360)
func (g *Game) Rotate(pitch, yaw float64) {
	r := g.player.Rotation
	r.X = math.Max(-90, math.Min(90, r.X+pitch))
	r.Y = math.Mod(r.Y+yaw, 360)
	if r.Y < 0 {
		r.Y += 360
	}
	g.player.Rotation = r
}

func (g *Game) tick(in InputState) {
	g.camera.PreUpdate()

	onGround := g.player.OnGround()
	speed := AirSpeed
	if onGround {
		speed = GroundSpeed
	}
	if in.Sprint {
		speed *= SprintFactor
	}
	var xo, zo float64
	if in.Forward {
		zo--
	}
	if in.Back {
		zo++
	}
	if in.Left {
		xo--
	}
	if in.Right {
		xo++
	}
	if onGround && in.Jump {
		g.player.Velocity.Y = JumpVelocity
	}
	g.player.Acceleration = physics.MoveRelative(xo, 0, zo, g.player.Rotation.Y, speed)
	g.world.Tick()

	if g.destroyTimer >= BlockActionCooldown && in.Break && !g.hit.Missed {
		g.world.SetBlockType(g.hit.X, g.hit.Y, g.hit.Z, block.Air)
		g.logger.Debug("блок (%d, %d, %d) разрушен", g.hit.X, g.hit.Y, g.hit.Z)
		g.destroyTimer = 0
	}
	if g.placeTimer >= BlockActionCooldown && in.Place && !g.hit.Missed {
		if t := g.HeldBlock(); !t.Air {
			x := g.hit.X + g.hit.Face.AxisX()
			y := g.hit.Y + g.hit.Face.AxisY()
			z := g.hit.Z + g.hit.Face.AxisZ()
			g.world.SetBlockType(x, y, z, t)
			g.logger.Debug("блок %s поставлен в (%d, %d, %d)", t, x, y, z)
		}
		g.placeTimer = 0
	}
	g.destroyTimer++
	g.placeTimer++
	g.ticks++
}

func (g *Game) render(partialTick float64) {
	pop := g.rc.Scope()
	defer pop()

	g.rc.Width, g.rc.Height = g.input.Viewport()
	g.camera.MoveToEntity(g.player)
	g.camera.UpdateLerp(partialTick)
	g.rc.SetProjectionView(render.Perspective(g.fov, g.rc.Aspect()), g.camera.ViewMatrix())

	g.renderer.Render(g.rc, g.player)
	g.hit = g.renderer.SelectBlock(g.rc, g.player)
	g.renderer.RenderOutline(g.rc, g.hit)
}

// Close останавливает рендерер
func (g *Game) Close() error {
	return g.renderer.Close()
}
