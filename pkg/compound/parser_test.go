package compound

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"miniontgt/pkg/target"
)

func debianWeb() *target.Candidate {
	return &target.Candidate{
		ID:     "webserver1",
		Grains: map[string]interface{}{"os": "Debian"},
	}
}

func redhatDB() *target.Candidate {
	return &target.Candidate{
		ID:     "db1",
		Grains: map[string]interface{}{"os": "RedHat"},
	}
}

func redhatApp() *target.Candidate {
	return &target.Candidate{
		ID:     "app1",
		Grains: map[string]interface{}{"os": "RedHat"},
	}
}

func mustEval(t *testing.T, expr string, groups map[string]string, c *target.Candidate) bool {
	t.Helper()
	node, err := Parse(expr, groups, ":")
	require.NoError(t, err)
	got, err := Evaluate(node, c)
	require.NoError(t, err)
	return got
}

func TestEvaluate_MixedClauses(t *testing.T) {
	t.Parallel()

	expr := "G@os:Debian and webser* or E@db.*"

	assert.True(t, mustEval(t, expr, nil, debianWeb()))
	assert.True(t, mustEval(t, expr, nil, redhatDB()))
	assert.False(t, mustEval(t, expr, nil, redhatApp()))
}

func TestParse_ImplicitAnd(t *testing.T) {
	t.Parallel()

	node, err := Parse("G@os:Debian webser*", nil, ":")
	require.NoError(t, err)

	bin, ok := node.(*BinaryNode)
	require.True(t, ok)
	assert.Equal(t, OpAnd, bin.Op)

	assert.True(t, mustEval(t, "G@os:Debian webser*", nil, debianWeb()))
	assert.False(t, mustEval(t, "G@os:Debian webser*", nil, redhatDB()))
}

func TestParse_LeftToRightFold(t *testing.T) {
	t.Parallel()

	// 没有优先级爬升：a or b and c 求值为 (a or b) and c
	expr := "webser* or G@os:RedHat and db*"

	node, err := Parse(expr, nil, ":")
	require.NoError(t, err)

	root, ok := node.(*BinaryNode)
	require.True(t, ok)
	assert.Equal(t, OpAnd, root.Op)
	left, ok := root.Left.(*BinaryNode)
	require.True(t, ok)
	assert.Equal(t, OpOr, left.Op)

	// webserver1 命中 or 的左支，但整体还要 and db* —— 传统优先级下会是 true
	assert.False(t, mustEval(t, expr, nil, debianWeb()))
	assert.True(t, mustEval(t, expr, nil, redhatDB()))
	assert.False(t, mustEval(t, expr, nil, redhatApp()))
}

func TestParse_NotPlacement(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		expr     string
		c        *target.Candidate
		expected bool
	}{
		{"leading not", "not G@os:Debian", redhatDB(), true},
		{"leading not no match", "not G@os:Debian", debianWeb(), false},
		{"not after and", "db* and not G@os:Debian", redhatDB(), true},
		{"not after or", "webser* or not db*", redhatApp(), true},
		{"not binds next operand only", "not db* and G@os:Debian", debianWeb(), true},
		{"not binds next operand only rhs", "not db* and G@os:Debian", redhatApp(), false},
		{"not before group", "not ( webser* or db* )", redhatApp(), true},
		{"not before group no match", "not ( webser* or db* )", debianWeb(), false},
		{"implicit and before not", "G@os:Debian not db*", debianWeb(), true},
		{"double not", "not not webser*", debianWeb(), true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, mustEval(t, tc.expr, nil, tc.c))
		})
	}
}

func TestParse_Parentheses(t *testing.T) {
	t.Parallel()

	// 括号组整体作为一个操作数参与折叠
	expr := "webser* or ( G@os:RedHat and db* )"

	assert.True(t, mustEval(t, expr, nil, debianWeb()))
	assert.True(t, mustEval(t, expr, nil, redhatDB()))
	assert.False(t, mustEval(t, expr, nil, redhatApp()))
}

func TestParse_CaseInsensitiveKeywords(t *testing.T) {
	t.Parallel()

	assert.True(t, mustEval(t, "G@os:Debian AND webser*", nil, debianWeb()))
	assert.True(t, mustEval(t, "db* OR webser*", nil, debianWeb()))
	assert.True(t, mustEval(t, "NOT db*", nil, debianWeb()))
}

func TestParse_Malformed(t *testing.T) {
	t.Parallel()

	var mee *MalformedExpressionError

	testCases := []string{
		"",
		"   ",
		"and web*",
		"or web*",
		"web* and",
		"web* or",
		"web* and and db*",
		"web* or and db*",
		"not",
		"web* and not",
		"( web*",
		"web* )",
		"( )",
	}

	for _, expr := range testCases {
		t.Run(expr, func(t *testing.T) {
			_, err := Parse(expr, nil, ":")
			require.ErrorAs(t, err, &mee, "expr %q", expr)
		})
	}
}

func TestParse_UnknownPrefix(t *testing.T) {
	t.Parallel()

	var upe *target.UnknownPrefixError
	_, err := Parse("X@foo and web*", nil, ":")
	require.ErrorAs(t, err, &upe)
}

func TestParse_NodeGroups(t *testing.T) {
	t.Parallel()

	groups := map[string]string{
		"debs":     "G@os:Debian",
		"frontend": "N@debs or webser*",
	}

	assert.True(t, mustEval(t, "N@frontend", groups, debianWeb()))
	assert.False(t, mustEval(t, "N@frontend", groups, redhatDB()))
	assert.True(t, mustEval(t, "N@frontend or db*", groups, redhatDB()))
}

func TestParse_UndefinedNodeGroup(t *testing.T) {
	t.Parallel()

	var unge *UndefinedNodeGroupError
	_, err := Parse("N@nope", map[string]string{}, ":")
	require.ErrorAs(t, err, &unge)
	assert.Equal(t, "nope", unge.Name)
}

func TestParse_NodeGroupCycle(t *testing.T) {
	t.Parallel()

	var ce *CycleError

	groups := map[string]string{"a": "N@b", "b": "N@a"}
	_, err := Parse("N@a", groups, ":")
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, []string{"a", "b", "a"}, ce.Chain)

	_, err = Parse("N@self", map[string]string{"self": "N@self"}, ":")
	require.ErrorAs(t, err, &ce)
}

func TestParseGroup(t *testing.T) {
	t.Parallel()

	groups := map[string]string{"debs": "G@os:Debian"}

	node, err := ParseGroup("debs", groups, ":")
	require.NoError(t, err)
	got, err := Evaluate(node, debianWeb())
	require.NoError(t, err)
	assert.True(t, got)

	var unge *UndefinedNodeGroupError
	_, err = ParseGroup("nope", groups, ":")
	require.ErrorAs(t, err, &unge)

	// -N 入口也要能发现自引用环
	var ce *CycleError
	_, err = ParseGroup("self", map[string]string{"self": "N@self"}, ":")
	require.ErrorAs(t, err, &ce)
}

func TestParse_Idempotent(t *testing.T) {
	t.Parallel()

	first, err := Parse("G@os:Debian and not ( web* or db* )", nil, ":")
	require.NoError(t, err)
	second, err := Parse("G@os:Debian and not ( web* or db* )", nil, ":")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
