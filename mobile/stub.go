//go:build !mobile

// stub.go - 桌面构建时的占位文件，让 ./... 在不带 mobile 标签时也能编译
package mobile

// Dummy 与 mobile.go 中的同名函数对应
func Dummy() {}
