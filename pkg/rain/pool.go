// Package rain is the "text rain" particle engine: a pool of glyph
// particles falling along straight paths, drawn from a gradient sprite
// sheet so each one fades as it travels.
package rain

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/gonewx/glyphrain/internal/motion"
	"github.com/gonewx/glyphrain/internal/particle"
	"github.com/gonewx/glyphrain/pkg/components"
	"github.com/gonewx/glyphrain/pkg/ecs"
	"github.com/gonewx/glyphrain/pkg/sprite"
	"github.com/gonewx/glyphrain/pkg/systems"
)

// ErrInvalidOptions is returned by NewPool for unusable options.
var ErrInvalidOptions = errors.New("rain: invalid pool options")

// PoolOptions 粒子池参数
type PoolOptions struct {
	Width  int            // 画布宽度，粒子起点 x 在 [0, Width)
	Height int            // 画布高度，路径从 y=0 到 y=Height
	Speed  particle.Range // 每帧移动距离
	Seed   int64          // 随机种子，0 表示使用当前时间
}

// DefaultPoolOptions returns a 400x400 canvas with speed 2.
func DefaultPoolOptions() PoolOptions {
	return PoolOptions{
		Width:  400,
		Height: 400,
		Speed:  particle.Fixed(2),
	}
}

// ParticleState is a read-only view of one particle.
type ParticleState struct {
	ID       ecs.EntityID
	X, Y     float64
	Row      int
	Moved    float64
	Total    float64
	Finished bool
}

// Progress returns Moved/Total, 1 for an empty path.
func (p ParticleState) Progress() float64 {
	if p.Total == 0 {
		return 1
	}
	return p.Moved / p.Total
}

// Pool 粒子池
//
// 粒子是带 MotionComponent 和 GlyphComponent 的实体。Update 推进所有
// 粒子并移除上一轮已完成的粒子，Draw 按生成顺序绘制。
type Pool struct {
	entityManager *ecs.EntityManager
	motionSystem  *systems.MotionSystem
	renderSystem  *systems.RainRenderSystem
	sheet         *sprite.GradientText
	opts          PoolOptions
	rng           *rand.Rand
}

// NewPool creates an empty pool drawing from sheet.
func NewPool(sheet *sprite.GradientText, opts PoolOptions) (*Pool, error) {
	if sheet == nil {
		return nil, fmt.Errorf("%w: nil sprite sheet", ErrInvalidOptions)
	}
	if err := validatePoolOptions(opts); err != nil {
		return nil, err
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	em := ecs.NewEntityManager()
	return &Pool{
		entityManager: em,
		motionSystem:  systems.NewMotionSystem(em),
		renderSystem:  systems.NewRainRenderSystem(em, sheet),
		sheet:         sheet,
		opts:          opts,
		rng:           rand.New(rand.NewSource(seed)),
	}, nil
}

func validatePoolOptions(opts PoolOptions) error {
	switch {
	case opts.Width <= 0 || opts.Height <= 0:
		return fmt.Errorf("%w: canvas %dx%d", ErrInvalidOptions, opts.Width, opts.Height)
	case opts.Speed.Min <= 0 || opts.Speed.Max < opts.Speed.Min:
		return fmt.Errorf("%w: speed %v", ErrInvalidOptions, opts.Speed)
	}
	return nil
}

// Spawn adds a particle at a random x on the top edge falling straight to
// the bottom edge, with a random sheet row and a speed from the range.
func (p *Pool) Spawn() (ecs.EntityID, error) {
	return p.SpawnAt(p.rng.Float64() * float64(p.opts.Width))
}

// SpawnAt is Spawn with a chosen x (pointer taps).
func (p *Pool) SpawnAt(x float64) (ecs.EntityID, error) {
	row := p.rng.Intn(p.sheet.Rows())
	speed := p.opts.Speed.Sample(p.rng)
	return p.SpawnPath(motion.Vertical(x, float64(p.opts.Height)), speed, row)
}

// SpawnPath adds a particle travelling path at speed, drawn with sheet row.
func (p *Pool) SpawnPath(path motion.Path, speed float64, row int) (ecs.EntityID, error) {
	m, err := motion.New(path, speed)
	if err != nil {
		return 0, err
	}
	id := p.entityManager.CreateEntity()
	ecs.AddComponent(p.entityManager, id, &components.MotionComponent{Motion: m})
	ecs.AddComponent(p.entityManager, id, &components.GlyphComponent{Row: row})
	return id, nil
}

// Update steps every particle once. Particles that finished on the
// previous Update are removed first; a particle whose step fails is
// dropped without affecting the rest. It returns the number removed.
func (p *Pool) Update() int {
	return p.motionSystem.Update()
}

// Draw draws every live particle onto target and returns how many were
// drawn. A particle that finished on the last Update is drawn once more at
// grade column 0 and removed on the next Update.
func (p *Pool) Draw(target sprite.Target) int {
	return p.renderSystem.Draw(target)
}

// Len returns the number of particles, including finished ones awaiting
// removal.
func (p *Pool) Len() int {
	return p.entityManager.Count()
}

// Active returns the number of particles not yet finished.
func (p *Pool) Active() int {
	n := 0
	for _, id := range ecs.GetEntitiesWith1[*components.MotionComponent](p.entityManager) {
		if !p.entityManager.IsPendingDestroy(id) {
			n++
		}
	}
	return n
}

// Clear removes every particle.
func (p *Pool) Clear() {
	p.entityManager.Clear()
}

// Snapshot returns the state of every particle in spawn order.
func (p *Pool) Snapshot() []ParticleState {
	ids := ecs.GetEntitiesWith1[*components.MotionComponent](p.entityManager)
	out := make([]ParticleState, 0, len(ids))
	for _, id := range ids {
		mc, _ := ecs.GetComponent[*components.MotionComponent](p.entityManager, id)
		if mc == nil || mc.Motion == nil {
			continue
		}
		st := ParticleState{
			ID:       id,
			X:        mc.Motion.X(),
			Y:        mc.Motion.Y(),
			Moved:    mc.Motion.MovedDistance(),
			Total:    mc.Motion.TotalDistance(),
			Finished: mc.Motion.Finished(),
		}
		if gc, ok := ecs.GetComponent[*components.GlyphComponent](p.entityManager, id); ok {
			st.Row = gc.Row
		}
		out = append(out, st)
	}
	return out
}

// SetSpeed changes the speed range for particles spawned from now on.
func (p *Pool) SetSpeed(r particle.Range) error {
	opts := p.opts
	opts.Speed = r
	if err := validatePoolOptions(opts); err != nil {
		return err
	}
	p.opts = opts
	return nil
}

// Resize changes the canvas used for new particles.
func (p *Pool) Resize(width, height int) error {
	opts := p.opts
	opts.Width, opts.Height = width, height
	if err := validatePoolOptions(opts); err != nil {
		return err
	}
	p.opts = opts
	return nil
}

// Options returns the current options.
func (p *Pool) Options() PoolOptions { return p.opts }

// Sheet returns the sprite sheet particles are drawn from.
func (p *Pool) Sheet() *sprite.GradientText { return p.sheet }
