package routes

import (
	"mime"
	"path/filepath"
	"strings"
)

// mimeByExtension 是扩展名到 Content-Type 的固定映射。匹配区分大小写，
// 未列出或缺失的扩展名不携带 Content-Type。
var mimeByExtension = map[string]string{
	"txt":  "text/plain",
	"html": "text/html",
	"css":  "text/css",
	"js":   "text/javascript",
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"jxl":  "image/jxl",
	"svg":  "image/svg",
	"mp4":  "video/mp4",
	"m4v":  "video/mp4",
	// 非 IANA 注册类型，matroska.org 建议使用
	"mkv":  "video/x-matroska",
	"pdf":  "application/pdf",
	"wasm": "application/wasm",
}

// ResolveMime 解析 FileObject 最终生效的 Content-Type。返回空字符串表示
// 没有可用的 Content-Type（显式字符串无法解析为 MIME 值、扩展名未知或
// 缺失）。这不是错误：路由仍然可以被服务，只是响应不带 Content-Type 头。
func ResolveMime(f FileObject) string {
	if f.Explicit {
		mediaType, params, err := mime.ParseMediaType(f.MimeType)
		if err != nil {
			return ""
		}
		return mime.FormatMediaType(mediaType, params)
	}

	ext := strings.TrimPrefix(filepath.Ext(f.Path), ".")
	return mimeByExtension[ext]
}
