// Package xconf 基于 koanf 加载 YAML/JSON 配置。
//
//	var s Settings
//	cfg, err := xconf.Load("xsockctl.yaml", &s)
//
// 结构体字段使用 `koanf` 标签映射，键路径以 "." 分隔。
package xconf
