package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/T0mstone/simple-http-server/internal/config"
)

func TestInitLoggerDefaultsToStdout(t *testing.T) {
	logger, err := InitLogger(config.LogConfig{LogLevel: "info"})
	if err != nil {
		t.Fatalf("配置失败: %v", err)
	}
	if logger.Out != os.Stdout {
		t.Fatalf("未指定文件时应输出到 stdout")
	}
}

func TestInitLoggerRejectsInvalidLevel(t *testing.T) {
	if _, err := InitLogger(config.LogConfig{LogLevel: "chatty"}); err == nil {
		t.Fatalf("无效日志级别应返回错误")
	}
}

func TestInitLoggerFallbackOnPermissionDenied(t *testing.T) {
	dir := t.TempDir()
	blocked := filepath.Join(dir, "blocked")
	if err := os.Mkdir(blocked, 0o755); err != nil {
		t.Fatalf("创建目录失败: %v", err)
	}
	if err := os.Chmod(blocked, 0o000); err != nil {
		t.Fatalf("设置目录权限失败: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(blocked, 0o755) })

	logger, err := InitLogger(config.LogConfig{
		LogLevel:    "info",
		LogFilePath: filepath.Join(blocked, "nested", "app.log"),
	})
	if err != nil {
		t.Fatalf("日志文件不可写时不应返回错误: %v", err)
	}
	if logger.Out != os.Stdout {
		t.Fatalf("日志文件不可写时应降级到 stdout")
	}
}
