package routes

// FileObject 描述配置中一个可路由的文件：要么由扩展名推断 Content-Type，
// 要么由配置作者显式给出 type 字符串。消费方（路径提取、MIME 解析）都会
// 完整区分这两种形态。
type FileObject struct {
	// Path 在归一化之前可能是绝对或相对路径；最终路由表可达的路径一律为绝对路径。
	Path string
	// MimeType 保存配置中的原始 type 字符串，仅在 Explicit 为 true 时有意义。
	MimeType string
	// Explicit 为 true 表示 Content-Type 已显式给出，不再从扩展名推断。
	Explicit bool
}

// InferMime 构造由扩展名推断 Content-Type 的 FileObject。
func InferMime(path string) FileObject {
	return FileObject{Path: path}
}

// ExplicitMime 构造显式指定 Content-Type 的 FileObject。
func ExplicitMime(mimeType, path string) FileObject {
	return FileObject{Path: path, MimeType: mimeType, Explicit: true}
}
