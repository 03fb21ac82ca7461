package routes

import (
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// Spec 是 get_routes 节解析后的原始形态：direct 列表、以请求路径为键的
// map，以及可选的 index 条目（服务 `/` 请求）。
type Spec struct {
	Direct []FileObject
	Map    map[string]FileObject
	Index  *FileObject
}

// Route 是路由表中一条构建完成的条目。
type Route struct {
	// ContentType 为空表示响应不携带 Content-Type 头。
	ContentType string
	// Path 一定是绝对路径。
	Path string
}

// Table 提供请求键到 Route 的只读查询。构建完成后不再修改，可被任意数量
// 的并发 handler 无锁共享。
type Table struct {
	routes map[string]Route
}

// Build 将声明式的 Spec 转换为不可变路由表。构建分两步：先把 direct 条目
// 归一化为相对路径（是 root 后代的绝对路径被转换并记 info 日志，其余绝对
// 路径被丢弃并记 warn 日志），再统一解析 Content-Type 并拼出绝对文件路径。
// direct 条目在 map 条目之后写入，同键时 direct 覆盖 map。
func Build(spec *Spec, root string, logger *logrus.Logger) *Table {
	table := &Table{routes: make(map[string]Route)}
	if spec == nil {
		return table
	}

	direct := make([]FileObject, 0, len(spec.Direct))
	for _, f := range spec.Direct {
		if filepath.IsAbs(f.Path) {
			rel, ok := relativizeIfDescendant(f.Path, root)
			if !ok {
				logger.WithFields(logrus.Fields{
					"action": "route_dropped",
					"path":   f.Path,
				}).Warn("ignoring direct route (absolute paths must be descendants of the config file's directory)")
				continue
			}
			logger.WithFields(logrus.Fields{
				"action": "route_relativized",
				"from":   f.Path,
				"to":     rel,
			}).Info("converted absolute direct route to a relative path")
			f.Path = rel
		}
		direct = append(direct, f)
	}

	for key, f := range spec.Map {
		table.routes[key] = Route{
			ContentType: ResolveMime(f),
			Path:        Absolutize(f.Path, root),
		}
	}
	// direct 条目的键是归一化之后、拼接 root 之前的相对路径字符串
	for _, f := range direct {
		table.routes[f.Path] = Route{
			ContentType: ResolveMime(f),
			Path:        Absolutize(f.Path, root),
		}
	}
	if spec.Index != nil {
		table.routes[indexKey] = Route{
			ContentType: ResolveMime(*spec.Index),
			Path:        Absolutize(spec.Index.Path, root),
		}
	}

	return table
}

const (
	// indexKey 是 `/` 请求剥掉前导斜杠后得到的键。
	indexKey = ""
	// reservedDirectKey 让配置作者可以为字面请求路径 /direct 注册路由，
	// 而不会与 direct 列表语义冲突。
	reservedDirectKey = "%direct"
)

// Resolve 按请求路径查找路由。剥掉最多一个前导 `/`；字面路径 /direct 被
// 重映射到保留键 %direct 后再查表。未命中返回 false，永远不是错误。
func (t *Table) Resolve(requestPath string) (Route, bool) {
	if t == nil || len(t.routes) == 0 {
		return Route{}, false
	}

	key := strings.TrimPrefix(requestPath, "/")
	if key == "direct" {
		key = reservedDirectKey
	}

	route, ok := t.routes[key]
	return route, ok
}

// Len 返回路由条数，供启动日志输出。
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.routes)
}
