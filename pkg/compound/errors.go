package compound

import (
	"fmt"
	"strings"
)

// MalformedExpressionError 表示关键字/操作数序列不合法
type MalformedExpressionError struct {
	Expr   string
	Detail string
}

func (e *MalformedExpressionError) Error() string {
	return fmt.Sprintf("malformed compound expression '%s': %s", e.Expr, e.Detail)
}

// UndefinedNodeGroupError 表示引用了未定义的节点组
type UndefinedNodeGroupError struct {
	Name string
}

func (e *UndefinedNodeGroupError) Error() string {
	return fmt.Sprintf("undefined nodegroup '%s'", e.Name)
}

// CycleError 表示节点组展开出现了环
type CycleError struct {
	Chain []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("nodegroup cycle detected: %s", strings.Join(e.Chain, " -> "))
}
