package compound

import (
	"fmt"
	"strings"

	"miniontgt/pkg/target"
)

// Parser 把复合表达式解析成语法树
type Parser struct {
	lexer     *Lexer
	current   Token
	expr      string
	groups    map[string]string
	delimiter string
	// visiting 记录正在展开的节点组链，用于环检测
	visiting []string
}

// Parse 解析复合表达式
// groups 是节点组表（名字 -> 复合表达式串），N@ 记号在解析期原地展开
func Parse(expr string, groups map[string]string, delimiter string) (Node, error) {
	return parse(expr, groups, delimiter, nil)
}

// ParseGroup 从一个节点组名开始解析（-N 的入口）
func ParseGroup(name string, groups map[string]string, delimiter string) (Node, error) {
	expr, ok := groups[name]
	if !ok {
		return nil, &UndefinedNodeGroupError{Name: name}
	}
	return parse(expr, groups, delimiter, []string{name})
}

func parse(expr string, groups map[string]string, delimiter string, visiting []string) (Node, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, &MalformedExpressionError{Expr: expr, Detail: "empty expression"}
	}

	p := &Parser{
		lexer:     NewLexer(expr),
		expr:      expr,
		groups:    groups,
		delimiter: delimiter,
		visiting:  visiting,
	}
	p.advance()
	return p.parseExpr(false)
}

func (p *Parser) advance() {
	p.current = p.lexer.NextToken()
}

// parseExpr 自左向右折叠操作数
// 相邻操作数之间没有关键字时隐式为 and；不做优先级爬升，
// a or b and c 求值为 (a or b) and c
func (p *Parser) parseExpr(inGroup bool) (Node, error) {
	left, err := p.parseOperand()
	if err != nil {
		return nil, err
	}

	for {
		switch p.current.Type {
		case TokenEOF:
			if inGroup {
				return nil, p.errf("missing closing parenthesis")
			}
			return left, nil
		case TokenRParen:
			if !inGroup {
				return nil, p.errf("unexpected ')'")
			}
			p.advance()
			return left, nil
		}

		op := OpAnd
		switch p.current.Type {
		case TokenAnd:
			p.advance()
		case TokenOr:
			op = OpOr
			p.advance()
		}

		right, err := p.parseOperand()
		if err != nil {
			return nil, err
		}
		left = &BinaryNode{Op: op, Left: left, Right: right}
	}
}

// parseOperand 解析单个操作数
// not 只绑定紧随其后的操作数或括号组
func (p *Parser) parseOperand() (Node, error) {
	switch p.current.Type {
	case TokenNot:
		p.advance()
		inner, err := p.parseOperand()
		if err != nil {
			return nil, err
		}
		return &NotNode{Expr: inner}, nil

	case TokenLParen:
		p.advance()
		return p.parseExpr(true)

	case TokenTarget:
		token := p.current.Value
		p.advance()
		if strings.HasPrefix(token, "N@") {
			return p.expandNodeGroup(token[2:])
		}
		spec, err := target.ParsePrefixed(token, p.delimiter)
		if err != nil {
			return nil, err
		}
		return &TargetNode{Spec: spec}, nil

	case TokenAnd, TokenOr:
		return nil, p.errf("operator '%s' where an operand is required", p.current.Value)

	case TokenRParen:
		return nil, p.errf("')' where an operand is required")

	default:
		return nil, p.errf("expression ends where an operand is required")
	}
}

// expandNodeGroup 递归展开节点组，原地替换为其子树
func (p *Parser) expandNodeGroup(name string) (Node, error) {
	for _, seen := range p.visiting {
		if seen == name {
			chain := make([]string, 0, len(p.visiting)+1)
			chain = append(chain, p.visiting...)
			chain = append(chain, name)
			return nil, &CycleError{Chain: chain}
		}
	}

	sub, ok := p.groups[name]
	if !ok {
		return nil, &UndefinedNodeGroupError{Name: name}
	}

	visiting := make([]string, 0, len(p.visiting)+1)
	visiting = append(visiting, p.visiting...)
	visiting = append(visiting, name)
	return parse(sub, p.groups, p.delimiter, visiting)
}

func (p *Parser) errf(format string, args ...interface{}) error {
	return &MalformedExpressionError{Expr: p.expr, Detail: fmt.Sprintf(format, args...)}
}
