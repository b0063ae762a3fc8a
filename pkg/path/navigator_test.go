package path

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testData() map[string]interface{} {
	return map[string]interface{}{
		"os":        "Debian",
		"num":       8,
		"roles":     []interface{}{"web", "db"},
		"deep":      map[string]interface{}{"a": map[string]interface{}{"b": "c:d"}},
		"ifaces":    []interface{}{map[string]interface{}{"addr": "10.0.0.1"}, "lo"},
		"locations": map[string]interface{}{"dc1": map[string]interface{}{"rack": "r42"}},
	}
}

func TestTraverse(t *testing.T) {
	t.Parallel()

	nav := &Navigator{}
	data := testData()

	testCases := []struct {
		expr     string
		expected interface{}
	}{
		{"os", "Debian"},
		{"deep:a:b", "c:d"},
		{"roles:0", "web"},
		{"roles:1", "db"},
		{"ifaces:0:addr", "10.0.0.1"},
		{"ifaces:addr", "10.0.0.1"}, // 列表内嵌映射按键查找
		{"missing", NotFound},
		{"deep:a:missing", NotFound},
		{"roles:5", NotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.expr, func(t *testing.T) {
			p, err := Parse(tc.expr, ":")
			require.NoError(t, err)

			got, err := nav.Traverse(data, p)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestTraverse_ScalarDescent(t *testing.T) {
	t.Parallel()

	nav := &Navigator{}
	p, err := Parse("os:family", ":")
	require.NoError(t, err)

	_, err = nav.Traverse(testData(), p)
	var mpe *MalformedPathError
	require.ErrorAs(t, err, &mpe)
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	var mpe *MalformedPathError

	_, err := Parse("", ":")
	assert.ErrorAs(t, err, &mpe)

	_, err = Parse("a::b", ":")
	assert.ErrorAs(t, err, &mpe)
}

func TestMatch_Glob(t *testing.T) {
	t.Parallel()

	nav := &Navigator{}
	data := testData()

	testCases := []struct {
		expr     string
		expected bool
	}{
		{"os:Debian", true},
		{"os:deb*", true}, // 大小写不敏感
		{"os:RedHat", false},
		{"roles:web", true},
		{"roles:cache", false},
		{"num:8", true},
		{"deep:a:b:c:d", true},  // 最深切分失败后回退到标量叶子 "c:d"
		{"deep:a:*", true},      // 键存在检查
		{"deep:zzz:*", false},
		{"locations:*:rack:r42", true}, // 通配任意中间键
		{"os", false},           // 没有分隔符不可能匹配
	}

	for _, tc := range testCases {
		t.Run(tc.expr, func(t *testing.T) {
			got, err := nav.Match(data, tc.expr, ":", MatchGlob)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestMatch_RegexAndExact(t *testing.T) {
	t.Parallel()

	nav := &Navigator{}
	data := testData()

	got, err := nav.Match(data, "os:^deb", ":", MatchRegex)
	require.NoError(t, err)
	assert.True(t, got)

	got, err = nav.Match(data, "os:^ebian", ":", MatchRegex)
	require.NoError(t, err)
	assert.False(t, got)

	got, err = nav.Match(data, "os:bian", ":", MatchRegex) // 非锚定搜索
	require.NoError(t, err)
	assert.True(t, got)

	got, err = nav.Match(data, "os:debian", ":", MatchExact)
	require.NoError(t, err)
	assert.True(t, got)

	got, err = nav.Match(data, "os:deb*", ":", MatchExact)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestMatch_CustomDelimiter(t *testing.T) {
	t.Parallel()

	nav := &Navigator{}
	got, err := nav.Match(testData(), "deep%a%b", "%", MatchGlob)
	require.NoError(t, err)
	assert.True(t, got)
}
