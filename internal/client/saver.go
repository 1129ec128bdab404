package client

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ArtifactSaver 将生成的课件字节以指定文件名提供给用户
type ArtifactSaver interface {
	Save(filename string, data []byte) error
}

// DirSaver 保存到本地目录的 ArtifactSaver 实现。
// Dir 为空时保存到当前工作目录。
type DirSaver struct {
	Dir string
}

// Save 将字节写入目标目录下的文件
func (s DirSaver) Save(filename string, data []byte) error {
	path := filename
	if s.Dir != "" {
		path = filepath.Join(s.Dir, filename)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to save artifact to %s: %w", path, err)
	}
	return nil
}

// Alerter 阻断式用户提示通道
type Alerter interface {
	Alert(message string)
}

// ConsoleAlerter 输出到终端的 Alerter 实现。
// Out 为空时输出到标准错误。
type ConsoleAlerter struct {
	Out io.Writer
}

// Alert 打印用户可见的提示信息
func (a ConsoleAlerter) Alert(message string) {
	out := a.Out
	if out == nil {
		out = os.Stderr
	}
	fmt.Fprintln(out, "[!] "+message)
}
