package target

import "fmt"

// InvalidTargetTypeError 表示不认识的目标类型
type InvalidTargetTypeError struct {
	Type string
}

func (e *InvalidTargetTypeError) Error() string {
	return fmt.Sprintf("invalid target type '%s'", e.Type)
}

// EmptyTargetExpressionError 表示缺少必需的目标表达式
type EmptyTargetExpressionError struct {
	Kind Kind
}

func (e *EmptyTargetExpressionError) Error() string {
	return fmt.Sprintf("empty target expression for type '%s'", e.Kind)
}

// UnknownPrefixError 表示复合表达式里不认识的 <letter>@ 前缀
type UnknownPrefixError struct {
	Prefix string
	Token  string
}

func (e *UnknownPrefixError) Error() string {
	return fmt.Sprintf("unknown target prefix '%s@' in token '%s'", e.Prefix, e.Token)
}
