package config

import (
	"github.com/T0mstone/simple-http-server/internal/routes"
)

// LogConfig 控制 logrus 的输出行为，所有字段都有默认值，可整体省略。
type LogConfig struct {
	LogLevel      string `mapstructure:"LogLevel"`
	LogFilePath   string `mapstructure:"LogFilePath"`
	LogMaxSize    int    `mapstructure:"LogMaxSize"`
	LogMaxBackups int    `mapstructure:"LogMaxBackups"`
	LogCompress   bool   `mapstructure:"LogCompress"`
}

// fileContent 对应 TOML 顶层的大小写不敏感字段，由 viper 解析。
type fileContent struct {
	Addr          string    `mapstructure:"addr"`
	FailsafeAddrs []string  `mapstructure:"failsafe_addrs"`
	NotFound      string    `mapstructure:"404"`
	Log           LogConfig `mapstructure:",squash"`
}

// Config 是整个进程的配置：启动时构建一次，之后不可变，由进程独占。
type Config struct {
	// Root 是配置文件所在目录的绝对路径，所有相对路径都以它为基准。
	Root string
	// Addr 是首选监听地址。
	Addr string
	// FailsafeAddrs 是 Addr 绑定失败后按顺序尝试的候选地址。
	FailsafeAddrs []string
	// NotFound 保存 404 文件路径的原始值（可能为相对路径），为空表示未配置。
	NotFound string
	// Log 是日志设置。
	Log LogConfig
	// GetRoutes 为 nil 表示配置中没有 get_routes 节，所有查找都未命中。
	GetRoutes *routes.Spec
}

// BindCandidates 返回按顺序尝试绑定的完整地址列表：addr 在前，
// failsafe_addrs 依次随后。
func (c *Config) BindCandidates() []string {
	candidates := make([]string, 0, 1+len(c.FailsafeAddrs))
	candidates = append(candidates, c.Addr)
	return append(candidates, c.FailsafeAddrs...)
}

// NotFoundPath 返回 404 文件的绝对路径，未配置时为空字符串。
func (c *Config) NotFoundPath() string {
	if c.NotFound == "" {
		return ""
	}
	return routes.Absolutize(c.NotFound, c.Root)
}
