package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"reflect"

	"github.com/mitchellh/mapstructure"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/T0mstone/simple-http-server/internal/routes"
)

// Load 读取并解析 TOML 配置文件。标量字段经 viper 注入默认值后解析；
// get_routes 节的键是大小写敏感的请求路径，而 viper 会把嵌套键统一转成
// 小写，因此这一节由 go-toml 单独做一次保留大小写的解析。
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置失败: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	setDefaults(v)

	if err := v.ReadConfig(bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("配置文件格式错误: %w", err)
	}

	var content fileContent
	if err := v.Unmarshal(&content); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	spec, err := parseGetRoutes(raw)
	if err != nil {
		return nil, err
	}

	root, err := resolveRoot(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Root:          root,
		Addr:          content.Addr,
		FailsafeAddrs: content.FailsafeAddrs,
		NotFound:      content.NotFound,
		Log:           content.Log,
		GetRoutes:     spec,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("LogLevel", "info")
	v.SetDefault("LogFilePath", "")
	v.SetDefault("LogMaxSize", 100)
	v.SetDefault("LogMaxBackups", 10)
	v.SetDefault("LogCompress", true)
}

// resolveRoot 返回配置文件所在目录的绝对路径；相对路径以当前工作目录补全。
func resolveRoot(configPath string) (string, error) {
	root := filepath.Dir(configPath)
	if filepath.IsAbs(root) {
		return root, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("无法获取工作目录: %w", err)
	}
	return filepath.Join(cwd, root), nil
}

// rawContent 仅用于以保留大小写的方式取出 get_routes 节。
type rawContent struct {
	GetRoutes map[string]any `toml:"get_routes"`
}

// parseGetRoutes 把 get_routes 节解析为 routes.Spec。direct 与 index 是
// 结构化的保留键，其余键平铺进 Map，键即请求路径。节缺失时返回 nil。
func parseGetRoutes(raw []byte) (*routes.Spec, error) {
	var content rawContent
	if err := toml.Unmarshal(raw, &content); err != nil {
		return nil, fmt.Errorf("配置文件格式错误: %w", err)
	}
	if content.GetRoutes == nil {
		return nil, nil
	}

	spec := &routes.Spec{Map: make(map[string]routes.FileObject)}

	if rawDirect, ok := content.GetRoutes["direct"]; ok {
		delete(content.GetRoutes, "direct")
		if err := decodeFileObject(rawDirect, &spec.Direct); err != nil {
			return nil, newFieldError(routeField("direct"), err.Error())
		}
	}
	if rawIndex, ok := content.GetRoutes["index"]; ok {
		delete(content.GetRoutes, "index")
		var index routes.FileObject
		if err := decodeFileObject(rawIndex, &index); err != nil {
			return nil, newFieldError(routeField("index"), err.Error())
		}
		spec.Index = &index
	}
	for key, value := range content.GetRoutes {
		var f routes.FileObject
		if err := decodeFileObject(value, &f); err != nil {
			return nil, newFieldError(routeField(key), err.Error())
		}
		spec.Map[key] = f
	}

	return spec, nil
}

// decodeFileObject 通过 mapstructure 把任意 TOML 值解码到 FileObject
// （或其切片）。裸字符串与 {type, path} 表两种写法都支持。
func decodeFileObject(raw any, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: fileObjectDecodeHook(),
		Result:     target,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(raw)
}

func fileObjectDecodeHook() mapstructure.DecodeHookFunc {
	targetType := reflect.TypeOf(routes.FileObject{})

	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != targetType {
			return data, nil
		}

		switch v := data.(type) {
		case string:
			return routes.InferMime(v), nil
		case map[string]interface{}:
			var explicit struct {
				Type string `mapstructure:"type"`
				Path string `mapstructure:"path"`
			}
			if err := mapstructure.Decode(v, &explicit); err != nil {
				return nil, err
			}
			if explicit.Type == "" || explicit.Path == "" {
				return nil, fmt.Errorf("文件条目需要同时给出 type 与 path")
			}
			return routes.ExplicitMime(explicit.Type, explicit.Path), nil
		default:
			return nil, fmt.Errorf("不支持的文件条目类型: %T", data)
		}
	}
}
