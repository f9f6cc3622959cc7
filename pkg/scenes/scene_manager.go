package scenes

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneManager manages which scene is active.
// Scenes are registered by name and cycled in registration order.
type SceneManager struct {
	names   []string
	scenes  map[string]Scene
	current int // 当前场景下标，-1 表示没有活动场景
}

// NewSceneManager creates a manager with no scenes.
func NewSceneManager() *SceneManager {
	return &SceneManager{
		scenes:  make(map[string]Scene),
		current: -1,
	}
}

// Register 注册场景；同名场景会被替换。第一个注册的场景自动成为活动场景
func (sm *SceneManager) Register(name string, scene Scene) {
	if _, exists := sm.scenes[name]; !exists {
		sm.names = append(sm.names, name)
	}
	sm.scenes[name] = scene
	if sm.current < 0 {
		sm.activate(len(sm.names) - 1)
	}
}

// SwitchTo changes the active scene to the one registered as name.
func (sm *SceneManager) SwitchTo(name string) error {
	for i, n := range sm.names {
		if n == name {
			sm.activate(i)
			return nil
		}
	}
	return fmt.Errorf("unknown scene: %q", name)
}

// Next 切换到下一个场景（循环），返回新场景名
func (sm *SceneManager) Next() string {
	if len(sm.names) == 0 {
		return ""
	}
	sm.activate((sm.current + 1) % len(sm.names))
	return sm.names[sm.current]
}

func (sm *SceneManager) activate(i int) {
	if i == sm.current {
		return
	}
	if prev := sm.GetCurrentScene(); prev != nil {
		if s, ok := prev.(Switchable); ok {
			s.OnLeave()
		}
	}
	sm.current = i
	next := sm.scenes[sm.names[i]]
	if s, ok := next.(Switchable); ok {
		s.OnEnter()
	}
	log.Printf("[SceneManager] 切换到场景: %s", sm.names[i])
}

// GetCurrentScene 返回当前活动的场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	if sm.current < 0 {
		return nil
	}
	return sm.scenes[sm.names[sm.current]]
}

// CurrentName 返回当前场景名，没有时返回 ""
func (sm *SceneManager) CurrentName() string {
	if sm.current < 0 {
		return ""
	}
	return sm.names[sm.current]
}

// Names returns the registered names in order.
func (sm *SceneManager) Names() []string {
	return append([]string(nil), sm.names...)
}

// SaveAll 调用所有实现 Saveable 的场景，返回是否全部成功
func (sm *SceneManager) SaveAll() bool {
	ok := true
	for _, name := range sm.names {
		if s, isSaveable := sm.scenes[name].(Saveable); isSaveable {
			if !s.SaveOnExit() {
				log.Printf("[SceneManager] 场景 %s 保存失败", name)
				ok = false
			}
		}
	}
	return ok
}

// Update updates the active scene, if any.
func (sm *SceneManager) Update(deltaTime float64) {
	if s := sm.GetCurrentScene(); s != nil {
		s.Update(deltaTime)
	}
}

// Draw renders the active scene, if any.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if s := sm.GetCurrentScene(); s != nil {
		s.Draw(screen)
	}
}
