package systems

import (
	"log"

	"github.com/gonewx/glyphrain/pkg/components"
	"github.com/gonewx/glyphrain/pkg/ecs"
)

// MotionSystem 推进所有路径运动
//
// 每次 Update：
//  1. 清理上一轮标记删除的实体（已完成的运动）
//  2. 按创建顺序对每个运动调用 Step
//  3. 刚完成的运动标记删除，下一轮 Update 时移除，所以终点帧仍会绘制一次
//
// Step 出错（退化路径等）的运动被摘掉 MotionComponent 并标记删除，
// 不再绘制；其余运动继续推进。
type MotionSystem struct {
	entityManager *ecs.EntityManager
}

// NewMotionSystem 创建运动系统
func NewMotionSystem(em *ecs.EntityManager) *MotionSystem {
	return &MotionSystem{
		entityManager: em,
	}
}

// Update 推进一帧，返回本轮开始时清理的实体数
func (s *MotionSystem) Update() int {
	removed := s.entityManager.RemoveMarkedEntities()

	entities := ecs.GetEntitiesWith1[*components.MotionComponent](s.entityManager)
	for _, id := range entities {
		mc, ok := ecs.GetComponent[*components.MotionComponent](s.entityManager, id)
		if !ok || mc.Motion == nil {
			s.evict(id)
			continue
		}

		if err := mc.Motion.Step(); err != nil {
			log.Printf("[MotionSystem] 实体 %d 运动失败，移除: %v", id, err)
			s.evict(id)
			continue
		}
		if mc.Motion.Finished() {
			s.entityManager.DestroyEntity(id)
		}
	}
	return removed
}

func (s *MotionSystem) evict(id ecs.EntityID) {
	ecs.RemoveComponent[*components.MotionComponent](s.entityManager, id)
	s.entityManager.DestroyEntity(id)
}
