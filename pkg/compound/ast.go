package compound

import "miniontgt/pkg/target"

// Op 二元布尔操作符
type Op string

const (
	OpAnd Op = "and"
	OpOr  Op = "or"
)

// Node 是所有语法树节点实现的接口
type Node interface {
	node() // 标记方法
}

// TargetNode 表示一个叶子目标表达式
type TargetNode struct {
	Spec *target.Spec
}

func (*TargetNode) node() {}

// BinaryNode 表示一次 and/or 折叠
// 树形即求值顺序：严格从左到右，没有操作符优先级
type BinaryNode struct {
	Op    Op
	Left  Node
	Right Node
}

func (*BinaryNode) node() {}

// NotNode 表示对紧随其后的单个操作数取反
type NotNode struct {
	Expr Node
}

func (*NotNode) node() {}
