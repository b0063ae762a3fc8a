package command

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/google/shlex"
	"gopkg.in/yaml.v3"
)

// kwargRe 识别 key=value 形式的关键字参数
// 名字以字母或下划线开头，= 后不能紧跟第二个 =（那是比较表达式）
var kwargRe = regexp2.MustCompile(`^([^\d\W][\w.-]*)=(?!=)(.*)$`, regexp2.None)

// Split 解析复合命令：函数串 + 参数串 -> 有序的调用列表
// 参数组数量必须与函数数量一致，零参数的函数要有显式的空占位
func Split(funField, argsField, separator string) ([]Call, error) {
	if separator == "" {
		separator = DefaultSeparator
	}

	names, err := splitFunctions(funField, separator)
	if err != nil {
		return nil, err
	}

	groups := splitGroups(argsField, separator, len(names))
	if len(groups) != len(names) {
		return nil, &CountMismatchError{Functions: len(names), Groups: len(groups)}
	}

	calls := make([]Call, 0, len(names))
	for i, name := range names {
		args, kwargs, err := tokenize(groups[i])
		if err != nil {
			return nil, fmt.Errorf("arguments for '%s': %w", name, err)
		}
		calls = append(calls, Call{Function: name, Args: args, Kwargs: kwargs})
	}

	return calls, nil
}

// splitFunctions 切分函数名串
func splitFunctions(field, separator string) ([]string, error) {
	if strings.TrimSpace(field) == "" {
		return nil, fmt.Errorf("empty function field")
	}

	parts := strings.Split(field, separator)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
		if parts[i] == "" {
			return nil, fmt.Errorf("empty function name at position %d", i+1)
		}
	}
	return parts, nil
}

// sepOccurrence 记录一次分隔串出现的位置及其空白邻接状态
type sepOccurrence struct {
	pos    int
	padded bool
}

// splitGroups 把参数串切成每个函数一组
// 转义规则基于空白邻接：只要有任何一个分隔串带空白边
// （至少一侧紧邻空格），就只有这些带空白边的出现算组边界，
// 紧贴文字的出现保留为字面内容；否则所有出现都是组边界
func splitGroups(field, separator string, nfuncs int) []string {
	// 单函数不做组切分，整个参数串就是它的参数
	if nfuncs == 1 {
		return []string{strings.TrimSpace(field)}
	}

	if strings.TrimSpace(field) == "" {
		return []string{}
	}

	var occurrences []sepOccurrence
	anyPadded := false
	for i := 0; i+len(separator) <= len(field); {
		if field[i:i+len(separator)] != separator {
			i++
			continue
		}
		padded := (i > 0 && isSpace(field[i-1])) ||
			(i+len(separator) < len(field) && isSpace(field[i+len(separator)]))
		if padded {
			anyPadded = true
		}
		occurrences = append(occurrences, sepOccurrence{pos: i, padded: padded})
		i += len(separator)
	}

	var groups []string
	start := 0
	for _, occ := range occurrences {
		if anyPadded && !occ.padded {
			continue
		}
		groups = append(groups, strings.TrimSpace(field[start:occ.pos]))
		start = occ.pos + len(separator)
	}
	groups = append(groups, strings.TrimSpace(field[start:]))

	return groups
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t'
}

// tokenize 把一个参数组按 shell 引用规则切词
// key=value 记号归入关键字参数，其余按位置参数，值做 YAML 标量解码
func tokenize(group string) ([]interface{}, map[string]interface{}, error) {
	if group == "" {
		return []interface{}{}, nil, nil
	}

	tokens, err := shlex.Split(group)
	if err != nil {
		return nil, nil, fmt.Errorf("tokenize '%s': %w", group, err)
	}

	args := []interface{}{}
	var kwargs map[string]interface{}

	for _, tok := range tokens {
		if name, value, ok := splitKwarg(tok); ok {
			if kwargs == nil {
				kwargs = map[string]interface{}{}
			}
			kwargs[name] = scalar(value)
			continue
		}
		args = append(args, scalar(tok))
	}

	return args, kwargs, nil
}

// splitKwarg 尝试把记号拆成关键字参数
func splitKwarg(token string) (string, string, bool) {
	m, err := kwargRe.FindStringMatch(token)
	if err != nil || m == nil {
		return "", "", false
	}
	return m.GroupByNumber(1).String(), m.GroupByNumber(2).String(), true
}

// scalar 对单个记号做 YAML 标量解码
// 解不出来或解出空值时保留原文
func scalar(token string) interface{} {
	var v interface{}
	if err := yaml.Unmarshal([]byte(token), &v); err != nil {
		return token
	}
	if v == nil {
		return token
	}
	return v
}
