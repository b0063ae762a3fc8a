package compound

import "strings"

// TokenType 表示词法记号的类型
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenTarget
	TokenLParen
	TokenRParen
	TokenAnd
	TokenOr
	TokenNot
)

// Token 表示一个词法记号
type Token struct {
	Type  TokenType
	Value string
}

// Lexer 把复合表达式切成记号流
// 表达式按空白切词，括号必须独立成词，
// 这样目标模式内部的括号（如 E@web(1|2)）不会被拆开
type Lexer struct {
	words []string
	pos   int
}

// NewLexer 创建词法器
func NewLexer(input string) *Lexer {
	return &Lexer{words: strings.Fields(input)}
}

// NextToken 返回下一个记号
func (l *Lexer) NextToken() Token {
	if l.pos >= len(l.words) {
		return Token{Type: TokenEOF}
	}

	word := l.words[l.pos]
	l.pos++

	switch word {
	case "(":
		return Token{Type: TokenLParen, Value: word}
	case ")":
		return Token{Type: TokenRParen, Value: word}
	}

	// 关键字大小写不敏感
	switch strings.ToLower(word) {
	case "and":
		return Token{Type: TokenAnd, Value: word}
	case "or":
		return Token{Type: TokenOr, Value: word}
	case "not":
		return Token{Type: TokenNot, Value: word}
	}

	return Token{Type: TokenTarget, Value: word}
}
