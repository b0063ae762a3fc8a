package matcher

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"miniontgt/pkg/compound"
	"miniontgt/pkg/nodegroup"
	"miniontgt/pkg/path"
	"miniontgt/pkg/target"
)

// Predicate 对单个候选的判定函数
type Predicate func(c *target.Candidate) (bool, error)

// Matcher 把目标类型和表达式编译成候选判定
// 节点组表与分隔符在构造时绑定，之后只读
type Matcher struct {
	groups    nodegroup.Table
	delimiter string
}

// New 创建匹配器
func New(groups nodegroup.Table, delimiter string) *Matcher {
	if delimiter == "" {
		delimiter = path.DefaultDelimiter
	}
	return &Matcher{groups: groups, delimiter: delimiter}
}

// Compile 编译目标表达式
// nodegroup/compound 走复合求值器，其余类型直接落到叶子匹配
func (m *Matcher) Compile(typeName, expr string) (Predicate, error) {
	spec, err := target.ParseFlag(typeName, expr, m.delimiter)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"kind":    spec.Kind,
		"pattern": spec.Pattern,
	}).Debug("compiled target expression")

	switch spec.Kind {
	case target.KindCompound:
		node, err := compound.Parse(spec.Pattern, m.groups, m.delimiter)
		if err != nil {
			return nil, err
		}
		return m.evaluator(node), nil

	case target.KindNodeGroup:
		node, err := compound.ParseGroup(spec.Pattern, m.groups, m.delimiter)
		if err != nil {
			return nil, err
		}
		return m.evaluator(node), nil

	default:
		return spec.Match, nil
	}
}

// evaluator 把语法树包装成判定函数
func (m *Matcher) evaluator(node compound.Node) Predicate {
	return func(c *target.Candidate) (bool, error) {
		ok, err := compound.Evaluate(node, c)
		if err == nil {
			logrus.WithFields(logrus.Fields{
				"id":      c.ID,
				"matched": ok,
			}).Debug("compound evaluation")
		}
		return ok, err
	}
}

// Select 用判定函数过滤候选集合，保持输入顺序
func (m *Matcher) Select(pred Predicate, candidates []*target.Candidate) ([]*target.Candidate, error) {
	var out []*target.Candidate
	for _, c := range candidates {
		ok, err := pred(c)
		if err != nil {
			return nil, fmt.Errorf("match candidate '%s': %w", c.ID, err)
		}
		if ok {
			out = append(out, c)
		}
	}
	return out, nil
}
