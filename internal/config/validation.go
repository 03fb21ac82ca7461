package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// Validate 针对语义级别做进一步校验，防止非法配置启动服务。
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("配置为空")
	}

	if strings.TrimSpace(c.Addr) == "" {
		return newFieldError("addr", "不能为空")
	}
	for i, addr := range c.FailsafeAddrs {
		if strings.TrimSpace(addr) == "" {
			return newFieldError(fmt.Sprintf("failsafe_addrs[%d]", i), "不能为空")
		}
	}

	if _, err := logrus.ParseLevel(c.Log.LogLevel); err != nil {
		return newFieldError("LogLevel", fmt.Sprintf("无法解析日志级别: %s", c.Log.LogLevel))
	}
	if c.Log.LogMaxSize < 0 {
		return newFieldError("LogMaxSize", "不能为负数")
	}
	if c.Log.LogMaxBackups < 0 {
		return newFieldError("LogMaxBackups", "不能为负数")
	}

	return nil
}
