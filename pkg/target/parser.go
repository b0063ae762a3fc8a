package target

import (
	"fmt"
	"net/netip"
	"strings"
	"unicode"

	"github.com/dlclark/regexp2"
	"github.com/gobwas/glob"

	"miniontgt/pkg/path"
)

// prefixKinds 复合表达式里 <letter>@ 前缀到目标类型的映射
var prefixKinds = map[byte]Kind{
	'G': KindGrain,
	'P': KindGrainRegex,
	'I': KindPillar,
	'J': KindPillarRegex,
	'L': KindList,
	'E': KindRegex,
	'S': KindIPCIDR,
	'N': KindNodeGroup,
}

// grainLike 支持自定义键路径分隔符的前缀（如 G%@os%family）
var grainLike = map[byte]bool{'G': true, 'P': true, 'I': true, 'J': true}

// ParseFlag 按 CLI 类型标志解析目标表达式
// typeName 为空时默认为 glob
func ParseFlag(typeName, raw, delimiter string) (*Spec, error) {
	if typeName == "" {
		typeName = string(KindGlob)
	}

	kind := Kind(typeName)
	switch kind {
	case KindGlob, KindRegex, KindList, KindGrain, KindGrainRegex,
		KindPillar, KindPillarRegex, KindIPCIDR, KindNodeGroup, KindCompound:
	default:
		return nil, &InvalidTargetTypeError{Type: typeName}
	}

	return newSpec(kind, raw, delimiter)
}

// ParsePrefixed 解析复合表达式里的单个目标记号
// 形式为 <letter>@pattern；G/P/I/J 允许在字母和 @ 之间
// 插入一个自定义分隔符字符；无前缀的记号按 glob 处理
func ParsePrefixed(token, delimiter string) (*Spec, error) {
	if len(token) >= 2 && token[1] == '@' && isEngineLetter(token[0]) {
		kind, ok := prefixKinds[token[0]]
		if !ok {
			return nil, &UnknownPrefixError{Prefix: string(token[0]), Token: token}
		}
		return newSpec(kind, token[2:], delimiter)
	}

	if len(token) >= 3 && token[2] == '@' && grainLike[token[0]] {
		return newSpec(prefixKinds[token[0]], token[3:], string(token[1]))
	}

	return newSpec(KindGlob, token, delimiter)
}

// isEngineLetter 前缀字母只能是大写 ASCII
// 小写或其他字符开头的记号是普通 glob（候选 ID 自身可以包含 @）
func isEngineLetter(ch byte) bool {
	return ch >= 'A' && ch <= 'Z'
}

// newSpec 构造并校验目标描述
// 所有语法错误都在这里立刻暴露，而不是拖到匹配阶段
func newSpec(kind Kind, pattern, delimiter string) (*Spec, error) {
	if delimiter == "" {
		delimiter = path.DefaultDelimiter
	}

	if pattern == "" && kind != KindList {
		return nil, &EmptyTargetExpressionError{Kind: kind}
	}

	s := &Spec{Kind: kind, Pattern: pattern, Delimiter: delimiter}

	switch kind {
	case KindGlob:
		if _, err := glob.Compile(pattern); err != nil {
			return nil, fmt.Errorf("compile glob '%s': %w", pattern, err)
		}

	case KindRegex:
		if _, err := regexp2.Compile(pattern, regexp2.None); err != nil {
			return nil, fmt.Errorf("compile regex '%s': %w", pattern, err)
		}

	case KindList:
		s.List = splitList(pattern)

	case KindGrain, KindGrainRegex, KindPillar, KindPillarRegex:
		if !strings.Contains(pattern, delimiter) {
			return nil, &path.MalformedPathError{
				Expr:   pattern,
				Reason: fmt.Sprintf("missing '%s' between key path and value pattern", delimiter),
			}
		}

	case KindIPCIDR:
		if strings.Contains(pattern, "/") {
			if _, err := netip.ParsePrefix(pattern); err != nil {
				return nil, fmt.Errorf("parse CIDR '%s': %w", pattern, err)
			}
		} else {
			if _, err := netip.ParseAddr(pattern); err != nil {
				return nil, fmt.Errorf("parse address '%s': %w", pattern, err)
			}
		}
	}

	return s, nil
}

// splitList 把列表表达式切分为标识符集合
// 逗号和空白都是分隔符，空项丢弃
func splitList(raw string) []string {
	items := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	if items == nil {
		items = []string{}
	}
	return items
}
