package components

// GlyphComponent 选择粒子绘制精灵表中的哪一行（哪个字符）
type GlyphComponent struct {
	Row int
}
