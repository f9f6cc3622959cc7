package components

import "github.com/gonewx/glyphrain/internal/motion"

// MotionComponent 路径运动组件
// 粒子沿路径匀速移动，MotionSystem 每帧推进一步
type MotionComponent struct {
	Motion *motion.PathMotion
}
