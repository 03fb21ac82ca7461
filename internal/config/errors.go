package config

import "fmt"

// FieldError 提供字段路径与错误原因，便于 CLI 向用户反馈。
type FieldError struct {
	Field  string
	Reason string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// newFieldError 创建包含字段路径与原因的 error。
func newFieldError(field, reason string) error {
	return FieldError{Field: field, Reason: reason}
}

// routeField 拼接 get_routes 内的字段路径，输出 get_routes.xxx 形式。
func routeField(key string) string {
	return fmt.Sprintf("get_routes.%s", key)
}
