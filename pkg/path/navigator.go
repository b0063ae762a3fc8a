package path

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/gobwas/glob"
)

// Navigator 负责在嵌套映射/列表数据中导航和匹配
// 数据来源为已解码的 YAML 树（grains、pillar 等属性记录）
type Navigator struct{}

// Traverse 按路径逐级下钻数据
// 路径不存在时返回 NotFound 哨兵；途中遇到无法下钻的标量时返回 MalformedPathError
func (n *Navigator) Traverse(data interface{}, p *Path) (interface{}, error) {
	ptr := data

	for _, seg := range p.Segments {
		switch cur := ptr.(type) {
		case map[string]interface{}:
			v, ok := cur[seg.Key]
			if !ok {
				return NotFound, nil
			}
			ptr = v

		case []interface{}:
			if seg.IsIndex {
				if seg.Index < 0 || seg.Index >= len(cur) {
					return NotFound, nil
				}
				ptr = cur[seg.Index]
				continue
			}
			// 非数字片段：在列表内嵌的映射里找键
			next, ok := n.findEmbedded(cur, seg.Key)
			if !ok {
				return NotFound, nil
			}
			ptr = next

		default:
			return nil, &MalformedPathError{
				Expr:   pathString(p),
				Reason: fmt.Sprintf("cannot descend into scalar value at '%s'", seg.Key),
			}
		}
	}

	return ptr, nil
}

// findEmbedded 在列表元素的内嵌映射中查找键
func (n *Navigator) findEmbedded(list []interface{}, key string) (interface{}, bool) {
	for _, member := range list {
		if m, ok := member.(map[string]interface{}); ok {
			if v, ok := m[key]; ok {
				return v, true
			}
		}
	}
	return nil, false
}

// Match 在嵌套数据中匹配 key<delim>value 形式的表达式
// 分隔符本身可以出现在标量叶子里：'foo:bar:baz' 既匹配
// data["foo"]["bar"] == "baz"，也匹配 data["foo"] == "bar:baz"，
// 越深的切分优先尝试
func (n *Navigator) Match(data map[string]interface{}, expr, delimiter string, mode MatchMode) (bool, error) {
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}

	splits := strings.Split(expr, delimiter)
	if len(splits) == 1 {
		// 没有分隔符就没有值模式，不可能匹配
		return false, nil
	}

	for idx := len(splits) - 1; idx > 0; idx-- {
		key := strings.Join(splits[:idx], delimiter)

		var match interface{}
		var matchstr string

		if key == "*" {
			// 顶层通配：对整棵数据做匹配
			matchstr = expr
			match = data
		} else {
			matchstr = strings.Join(splits[idx:], delimiter)
			p, err := Parse(key, delimiter)
			if err != nil {
				continue
			}
			match, err = n.Traverse(data, p)
			if err != nil {
				// 中途撞上标量，更浅的切分还有机会把它当叶子匹配
				continue
			}
			if IsNotFound(match) {
				continue
			}
		}

		switch m := match.(type) {
		case map[string]interface{}:
			ok, err := n.dictMatch(m, matchstr, delimiter, mode)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}

		case []interface{}:
			for _, member := range m {
				if mm, ok := member.(map[string]interface{}); ok {
					ok, err := n.dictMatch(mm, matchstr, delimiter, mode)
					if err != nil {
						return false, err
					}
					if ok {
						return true, nil
					}
					continue
				}
				ok, err := n.scalarMatch(member, matchstr, mode)
				if err != nil {
					return false, err
				}
				if ok {
					return true, nil
				}
			}

		default:
			ok, err := n.scalarMatch(match, matchstr, mode)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
	}

	return false, nil
}

// dictMatch 把剩余模式匹配到一个映射上
// 支持 "*" 检查键存在、"*:" 前缀对任意键下钻
func (n *Navigator) dictMatch(target map[string]interface{}, pattern, delimiter string, mode MatchMode) (bool, error) {
	wildcard := strings.HasPrefix(pattern, "*"+delimiter)
	if wildcard {
		pattern = pattern[len(delimiter)+1:]
	}

	if pattern == "*" {
		// 只检查键存在
		return true, nil
	}

	if _, ok := target[pattern]; ok {
		return true, nil
	}

	if ok, err := n.Match(target, pattern, delimiter, mode); err != nil || ok {
		return ok, err
	}

	if !wildcard {
		return false, nil
	}

	for _, value := range target {
		switch v := value.(type) {
		case map[string]interface{}:
			ok, err := n.dictMatch(v, pattern, delimiter, mode)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		case []interface{}:
			for _, item := range v {
				ok, err := n.scalarMatch(item, pattern, mode)
				if err != nil {
					return false, err
				}
				if ok {
					return true, nil
				}
			}
		default:
			ok, err := n.scalarMatch(v, pattern, mode)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
	}

	return false, nil
}

// scalarMatch 比较单个叶子值与模式，大小写不敏感
func (n *Navigator) scalarMatch(value interface{}, pattern string, mode MatchMode) (bool, error) {
	target := strings.ToLower(fmt.Sprint(value))
	pattern = strings.ToLower(pattern)

	switch mode {
	case MatchRegex:
		re, err := regexp2.Compile(pattern, regexp2.None)
		if err != nil {
			return false, fmt.Errorf("compile regex '%s': %w", pattern, err)
		}
		return re.MatchString(target)

	case MatchExact:
		return target == pattern, nil

	default:
		g, err := glob.Compile(pattern)
		if err != nil {
			return false, fmt.Errorf("compile glob '%s': %w", pattern, err)
		}
		return g.Match(target), nil
	}
}

// pathString 还原路径用于错误信息
func pathString(p *Path) string {
	keys := make([]string, 0, len(p.Segments))
	for _, seg := range p.Segments {
		keys = append(keys, seg.Key)
	}
	return strings.Join(keys, p.Delimiter)
}
