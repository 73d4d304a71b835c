package config

import (
	"errors"
	"fmt"
	"strings"
)

// 配置错误类型
var (
	// ErrConfigMissingFile 配置文件不存在（启动时致命）
	ErrConfigMissingFile = errors.New("particle config file missing")
	// ErrConfigMissingAttribute 某个类型缺少必需属性，该类型被拒绝
	ErrConfigMissingAttribute = errors.New("particle config attribute missing")
	// ErrInvalidRange 属性值非法（min > max、寿命为 0 等）
	ErrInvalidRange = errors.New("particle config range invalid")
	// ErrInvalidEmitterType 类型没有对应的配置记录
	ErrInvalidEmitterType = errors.New("invalid emitter type")
)

// AttributeError 描述某个发射器类型的配置缺陷
// Err 为 ErrConfigMissingAttribute 或 ErrInvalidRange，可通过 errors.Is 判断
type AttributeError struct {
	Type       string   // 类型标签，如 "sparkles"
	Attributes []string // 出错的属性路径，如 "lifespan.min"
	Detail     string   // 额外说明
	Err        error
}

// Error 实现 error 接口
func (e *AttributeError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "emitter type %q: %v", e.Type, e.Err)
	if len(e.Attributes) > 0 {
		fmt.Fprintf(&b, ": %s", strings.Join(e.Attributes, ", "))
	}
	if e.Detail != "" {
		fmt.Fprintf(&b, " (%s)", e.Detail)
	}
	return b.String()
}

// Unwrap 返回底层错误类型
func (e *AttributeError) Unwrap() error {
	return e.Err
}
