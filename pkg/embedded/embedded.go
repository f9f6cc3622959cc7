// Package embedded 提供嵌入资源的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量必须声明在项目根目录（embed.go）。
// 本包提供包装函数，让其他包可以访问嵌入的资源。
//
// 使用前必须调用 Init() 初始化。
package embedded

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

var (
	dataFS      fs.FS
	initialized bool
)

// ErrNotInitialized is returned by every accessor before Init.
var ErrNotInitialized = errors.New("embedded package not initialized, call Init() first")

// Init 初始化嵌入的 data 文件系统
// 必须在 main() 开始时、任何资源加载之前调用
// 测试可以传入 fstest.MapFS
func Init(data fs.FS) {
	dataFS = data
	initialized = data != nil
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return initialized
}

// IsEmbeddedPath reports whether path names an embedded resource.
func IsEmbeddedPath(path string) bool {
	return strings.HasPrefix(normalize(path), "data/")
}

// normalize 标准化路径分隔符为正斜杠（embed.FS 使用正斜杠）并移除 "./" 前缀
func normalize(path string) string {
	return strings.TrimPrefix(filepath.ToSlash(path), "./")
}

func resolve(path string) (string, error) {
	if !initialized {
		return "", ErrNotInitialized
	}
	path = normalize(path)
	if !strings.HasPrefix(path, "data/") {
		return "", fmt.Errorf("unknown resource path prefix: %s (must start with 'data/')", path)
	}
	return path, nil
}

// Open 打开嵌入文件，路径必须以 "data/" 开头
func Open(path string) (fs.File, error) {
	p, err := resolve(path)
	if err != nil {
		return nil, err
	}
	return dataFS.Open(p)
}

// ReadFile 读取嵌入文件内容，路径必须以 "data/" 开头
func ReadFile(path string) ([]byte, error) {
	p, err := resolve(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(dataFS, p)
}

// Exists 检查文件是否存在于嵌入文件系统中
func Exists(path string) bool {
	file, err := Open(path)
	if err != nil {
		return false
	}
	file.Close()
	return true
}

// Glob 在嵌入文件系统中匹配文件
func Glob(pattern string) ([]string, error) {
	p, err := resolve(pattern)
	if err != nil {
		return nil, err
	}
	return fs.Glob(dataFS, p)
}

// ReadDir 读取目录内容
func ReadDir(path string) ([]fs.DirEntry, error) {
	p, err := resolve(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadDir(dataFS, p)
}
