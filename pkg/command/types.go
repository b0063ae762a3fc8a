package command

import "fmt"

// DefaultSeparator 函数名和参数组的默认分隔串
const DefaultSeparator = ","

// Call 表示一次待分发的函数调用
type Call struct {
	Function string                 `yaml:"function"`
	Args     []interface{}          `yaml:"args,omitempty"`
	Kwargs   map[string]interface{} `yaml:"kwargs,omitempty"`
}

// CountMismatchError 表示参数组数量与函数数量不一致
type CountMismatchError struct {
	Functions int // 期望的组数，每个函数一组
	Groups    int // 实际切出的组数
}

func (e *CountMismatchError) Error() string {
	return fmt.Sprintf("argument group count mismatch: expected %d (one per function), got %d",
		e.Functions, e.Groups)
}
