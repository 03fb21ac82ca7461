package routes

import (
	"path/filepath"
	"strings"
)

// relativizeIfDescendant 判断 path 是否为 root 的后代路径：是则返回去掉
// root 前缀之后的相对路径。root 必须为绝对路径。比较按完整路径分量进行，
// 因此 /srv/site 不是 /srv/sitex/a 的前缀。
func relativizeIfDescendant(path, root string) (string, bool) {
	sep := string(filepath.Separator)
	prefix := strings.TrimSuffix(root, sep) + sep
	if !strings.HasPrefix(path, prefix) {
		return "", false
	}

	rel := strings.TrimPrefix(path, prefix)
	if rel == "" {
		return "", false
	}
	return rel, true
}

// Absolutize 将相对路径拼接到 root 上；绝对路径原样返回。
func Absolutize(path, root string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
