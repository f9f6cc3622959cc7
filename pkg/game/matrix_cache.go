package game

import (
	"fmt"
	"hash/fnv"
	"log"
	"unicode/utf8"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/gonewx/glyphrain/internal/glyph"
)

const matrixCacheObject = "matrix"

// cachedEntry 单个字符的点阵，行以 '#'/'.' 表示
type cachedEntry struct {
	Char string   `yaml:"char"`
	Rows []string `yaml:"rows"`
}

type cachedMatrixMap struct {
	Text       string        `yaml:"text"`
	FontFamily string        `yaml:"fontFamily"`
	FontSize   int           `yaml:"fontSize"`
	Entries    []cachedEntry `yaml:"entries"`
}

// MatrixCache 缓存提取结果，避免重复渲染和采样
// gdataManager 为 nil 时不缓存（降级模式）
type MatrixCache struct {
	gdataManager *gdata.Manager
}

// NewMatrixCache 创建点阵缓存
func NewMatrixCache(gdataManager *gdata.Manager) *MatrixCache {
	return &MatrixCache{gdataManager: gdataManager}
}

// Key returns the storage key for text rendered with family at fontSize.
func (c *MatrixCache) Key(text, family string, fontSize int) string {
	h := fnv.New64a()
	h.Write([]byte(family))
	h.Write([]byte{0})
	h.Write([]byte(text))
	return fmt.Sprintf("fs%d-%016x", fontSize, h.Sum64())
}

// Get returns the cached map for text rendered with family at fontSize.
// A miss (or a hash collision with another text or family) reports false.
func (c *MatrixCache) Get(text, family string, fontSize int) (*glyph.MatrixMap, bool, error) {
	if c.gdataManager == nil {
		return nil, false, nil
	}
	key := c.Key(text, family, fontSize)
	if !c.gdataManager.ObjectPropExists(matrixCacheObject, key) {
		return nil, false, nil
	}

	data, err := c.gdataManager.LoadObjectProp(matrixCacheObject, key)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load matrix cache: %w", err)
	}

	var cached cachedMatrixMap
	if err := yaml.Unmarshal(data, &cached); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal matrix cache: %w", err)
	}
	if cached.Text != text || cached.FontFamily != family || cached.FontSize != fontSize {
		return nil, false, nil
	}

	mm := glyph.NewMatrixMap(len(cached.Entries))
	for i, e := range cached.Entries {
		r, size := utf8.DecodeRuneInString(e.Char)
		if size == 0 || size != len(e.Char) {
			return nil, false, fmt.Errorf("matrix cache entry %d: invalid char %q", i, e.Char)
		}
		m, err := glyph.ParseMatrix(e.Rows)
		if err != nil {
			return nil, false, fmt.Errorf("matrix cache entry %d: %w", i, err)
		}
		mm.Append(r, m)
	}
	return mm, true, nil
}

// Put stores mm for text rendered with family at fontSize.
func (c *MatrixCache) Put(text, family string, fontSize int, mm *glyph.MatrixMap) error {
	if c.gdataManager == nil {
		return nil
	}

	cached := cachedMatrixMap{Text: text, FontFamily: family, FontSize: fontSize}
	for _, e := range mm.Entries() {
		cached.Entries = append(cached.Entries, cachedEntry{Char: string(e.Char), Rows: e.Matrix.Strings()})
	}

	data, err := yaml.Marshal(&cached)
	if err != nil {
		return fmt.Errorf("failed to marshal matrix cache: %w", err)
	}
	if err := c.gdataManager.SaveObjectProp(matrixCacheObject, c.Key(text, family, fontSize), data); err != nil {
		return fmt.Errorf("failed to save matrix cache: %w", err)
	}
	return nil
}

// GetOrBuild returns the cached map or calls build and stores its result.
// Cache read/write failures are logged and do not fail the call.
func (c *MatrixCache) GetOrBuild(text, family string, fontSize int, build func() (*glyph.MatrixMap, error)) (*glyph.MatrixMap, error) {
	mm, ok, err := c.Get(text, family, fontSize)
	if err != nil {
		log.Printf("[MatrixCache] Warning: %v (rebuilding)", err)
	}
	if ok {
		log.Printf("[MatrixCache] 命中缓存: %d 个字符, font=%s fontSize=%d", mm.Len(), family, fontSize)
		return mm, nil
	}

	mm, err = build()
	if err != nil {
		return nil, err
	}
	if err := c.Put(text, family, fontSize, mm); err != nil {
		log.Printf("[MatrixCache] Warning: %v", err)
	}
	return mm, nil
}
