// Package embedded 提供嵌入资源的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量必须声明在项目根目录（embed.go）。
// 本包提供包装函数，让其他包可以访问嵌入的 data/ 目录。
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

// ErrNotInitialized Init 之前访问资源
var ErrNotInitialized = errors.New("embedded package not initialized, call Init() first")

// Init 注册内嵌的数据文件系统
// 必须在 main() 开始时、任何配置加载之前调用
func Init(data fs.FS) {
	dataFS = data
	initialized = data != nil
}

// Reset 清除注册状态（测试使用）
func Reset() {
	dataFS = nil
	initialized = false
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return initialized
}

// normalize 标准化路径并校验前缀
func normalize(path string) (string, error) {
	if !initialized {
		return "", ErrNotInitialized
	}
	// embed.FS 使用正斜杠
	path = strings.TrimPrefix(filepath.ToSlash(path), "./")
	if !strings.HasPrefix(path, "data/") {
		return "", fmt.Errorf("unknown resource path prefix: %s (must start with 'data/')", path)
	}
	return path, nil
}

// ReadFile 读取内嵌文件内容
// 路径必须以 "data/" 开头
func ReadFile(path string) ([]byte, error) {
	p, err := normalize(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(dataFS, p)
}

// Exists 检查文件是否存在于内嵌文件系统中
func Exists(path string) bool {
	p, err := normalize(path)
	if err != nil {
		return false
	}
	_, err = fs.Stat(dataFS, p)
	return err == nil
}

// Glob 在内嵌文件系统中匹配文件
func Glob(pattern string) ([]string, error) {
	p, err := normalize(pattern)
	if err != nil {
		return nil, err
	}
	return fs.Glob(dataFS, p)
}
