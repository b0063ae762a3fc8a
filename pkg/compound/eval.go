package compound

import (
	"fmt"

	"miniontgt/pkg/target"
)

// Evaluate 对单个候选求值语法树
// and/or 短路；叶子匹配出错时整体报错，绝不退化成"全匹配"或"全不匹配"
func Evaluate(node Node, c *target.Candidate) (bool, error) {
	switch n := node.(type) {
	case *BinaryNode:
		left, err := Evaluate(n.Left, c)
		if err != nil {
			return false, err
		}
		if n.Op == OpAnd && !left {
			return false, nil
		}
		if n.Op == OpOr && left {
			return true, nil
		}
		return Evaluate(n.Right, c)

	case *NotNode:
		ok, err := Evaluate(n.Expr, c)
		if err != nil {
			return false, err
		}
		return !ok, nil

	case *TargetNode:
		return n.Spec.Match(c)

	default:
		return false, fmt.Errorf("unknown node type %T", node)
	}
}
