package xconf

// Options 是加载选项。
type Options struct {
	// Delim 是键路径分隔符，默认 "."。
	Delim string
	// Tag 是 Unmarshal 使用的结构体标签，默认 "koanf"。
	Tag string
}

// Option 修改 [Options]。
type Option func(*Options)

func defaultOptions() *Options {
	return &Options{Delim: ".", Tag: "koanf"}
}

func WithDelim(delim string) Option {
	return func(o *Options) {
		if delim != "" {
			o.Delim = delim
		}
	}
}

func WithTag(tag string) Option {
	return func(o *Options) {
		if tag != "" {
			o.Tag = tag
		}
	}
}
