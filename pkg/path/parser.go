package path

import (
	"fmt"
	"strconv"
	"strings"
)

// MalformedPathError 表示键路径无法解析或无法在数据中展开
type MalformedPathError struct {
	Expr   string
	Reason string
}

func (e *MalformedPathError) Error() string {
	return fmt.Sprintf("malformed key path '%s': %s", e.Expr, e.Reason)
}

// Parse 解析键路径字符串
// 支持语法：
//   - os:family          （嵌套映射，逐级下钻）
//   - interfaces:0:addr  （纯数字片段作为列表下标）
//
// 分隔符可配置，默认为 ":"
func Parse(expr, delimiter string) (*Path, error) {
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}
	if expr == "" {
		return nil, &MalformedPathError{Expr: expr, Reason: "empty path"}
	}

	segments := []*Segment{}
	for _, part := range strings.Split(expr, delimiter) {
		seg, err := parseSegment(part)
		if err != nil {
			return nil, &MalformedPathError{Expr: expr, Reason: err.Error()}
		}
		segments = append(segments, seg)
	}

	return &Path{Segments: segments, Delimiter: delimiter}, nil
}

// parseSegment 解析单个路径片段
func parseSegment(part string) (*Segment, error) {
	if part == "" {
		return nil, fmt.Errorf("empty segment")
	}

	// 纯数字片段同时保留原始键名：
	// 映射的键也可能恰好是数字字符串
	if idx, err := strconv.Atoi(part); err == nil {
		return &Segment{Key: part, Index: idx, IsIndex: true}, nil
	}

	return &Segment{Key: part}, nil
}
