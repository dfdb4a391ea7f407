package syntax

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gahag/hush/source"
	"github.com/gahag/hush/symbol"
)

type lexer struct {
	input string
	path  symbol.Symbol

	offset int
	width  int

	line   int
	column int

	ch rune
}

func newLexer(input string, path symbol.Symbol) *lexer {
	l := &lexer{input: input, path: path, line: 1, column: 0}
	l.readRune()
	return l
}

func (l *lexer) readRune() {
	if l.offset >= len(l.input) {
		l.width = 0
		l.ch = 0
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.offset:])
	l.width = w
	l.offset += w

	if l.ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}

	l.ch = r
}

func (l *lexer) peekRune() rune {
	if l.offset >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.offset:])
	return r
}

func (l *lexer) atEOF() bool {
	return l.ch == 0 && l.offset >= len(l.input) && l.width == 0
}

func (l *lexer) pos() source.Pos {
	return source.Pos{Path: l.path, Line: l.line, Column: l.column}
}

// NextToken scans the next token. Malformed input yields tokenIllegal with a
// description of the problem as its literal; scanning always makes progress.
func (l *lexer) NextToken() Token {
	l.skipWhitespaceAndComments()

	tok := Token{Pos: l.pos()}

	if l.atEOF() {
		tok.Type = tokenEOF
		return tok
	}

	switch l.ch {
	case '+':
		if l.peekRune() == '+' {
			tok = l.twoCharToken(tokenConcat)
		} else {
			tok = l.oneCharToken(tokenPlus)
		}
	case '-':
		tok = l.oneCharToken(tokenMinus)
	case '*':
		tok = l.oneCharToken(tokenAsterisk)
	case '/':
		tok = l.oneCharToken(tokenSlash)
	case '%':
		tok = l.oneCharToken(tokenPercent)
	case '(':
		tok = l.oneCharToken(tokenLParen)
	case ')':
		tok = l.oneCharToken(tokenRParen)
	case '[':
		tok = l.oneCharToken(tokenLBracket)
	case ']':
		tok = l.oneCharToken(tokenRBracket)
	case ',':
		tok = l.oneCharToken(tokenComma)
	case ':':
		tok = l.oneCharToken(tokenColon)
	case '.':
		tok = l.oneCharToken(tokenDot)
	case '@':
		if l.peekRune() == '[' {
			tok = l.twoCharToken(tokenDictOpen)
		} else {
			tok.Type = tokenIllegal
			tok.Literal = "expected '[' after '@'"
			l.readRune()
		}
	case '=':
		if l.peekRune() == '=' {
			tok = l.twoCharToken(tokenEQ)
		} else {
			tok = l.oneCharToken(tokenAssign)
		}
	case '!':
		if l.peekRune() == '=' {
			tok = l.twoCharToken(tokenNotEQ)
		} else {
			tok.Type = tokenIllegal
			tok.Literal = "unexpected '!', use 'not' for negation"
			l.readRune()
		}
	case '>':
		if l.peekRune() == '=' {
			tok = l.twoCharToken(tokenGTE)
		} else {
			tok = l.oneCharToken(tokenGT)
		}
	case '<':
		if l.peekRune() == '=' {
			tok = l.twoCharToken(tokenLTE)
		} else {
			tok = l.oneCharToken(tokenLT)
		}
	case '"':
		literal, err := l.readString()
		if err != "" {
			tok.Type = tokenIllegal
			tok.Literal = err
		} else {
			tok.Type = tokenString
			tok.Literal = literal
		}
	case '\'':
		literal, err := l.readByte()
		if err != "" {
			tok.Type = tokenIllegal
			tok.Literal = err
		} else {
			tok.Type = tokenByte
			tok.Literal = literal
		}
	default:
		switch {
		case isIdentifierStart(l.ch):
			literal := l.readIdentifier()
			tok.Type = lookupIdent(literal)
			tok.Literal = literal
		case isDigit(l.ch):
			literal, isFloat := l.readNumber()
			tok.Literal = literal
			if isFloat {
				tok.Type = tokenFloat
			} else {
				tok.Type = tokenInt
			}
		default:
			tok.Type = tokenIllegal
			tok.Literal = "unexpected character " + quoteRune(l.ch)
			l.readRune()
		}
	}

	return tok
}

func (l *lexer) oneCharToken(tt TokenType) Token {
	tok := Token{Type: tt, Literal: string(tt), Pos: l.pos()}
	l.readRune()
	return tok
}

func (l *lexer) twoCharToken(tt TokenType) Token {
	tok := Token{Type: tt, Literal: string(tt), Pos: l.pos()}
	l.readRune()
	l.readRune()
	return tok
}

func (l *lexer) currentOffset() int {
	return l.offset - l.width
}

func (l *lexer) skipWhitespaceAndComments() {
	for {
		switch l.ch {
		case ' ', '\t', '\r', '\n':
			l.readRune()
			continue
		case '#':
			l.skipComment()
			continue
		default:
			return
		}
	}
}

func (l *lexer) skipComment() {
	for !l.atEOF() && l.ch != '\n' {
		l.readRune()
	}
}

func (l *lexer) readIdentifier() string {
	start := l.currentOffset()
	for isIdentifierRune(l.peekRune()) {
		l.readRune()
	}
	literal := l.input[start:l.offset]
	l.readRune()
	return literal
}

func (l *lexer) readNumber() (string, bool) {
	var sb strings.Builder
	hasDot := false

	sb.WriteRune(l.ch)

	for {
		r := l.peekRune()
		switch {
		case r == '.' && !hasDot && isDigit(l.peekRuneAfterNext()):
			hasDot = true
			l.readRune()
			sb.WriteRune('.')
		case isDigit(r):
			l.readRune()
			sb.WriteRune(r)
		default:
			l.readRune()
			return sb.String(), hasDot
		}
	}
}

func (l *lexer) peekRuneAfterNext() rune {
	if l.offset >= len(l.input) {
		return 0
	}
	_, w := utf8.DecodeRuneInString(l.input[l.offset:])
	if l.offset+w >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.offset+w:])
	return r
}

func (l *lexer) readString() (string, string) {
	var sb strings.Builder
	problem := ""

	for {
		l.readRune()
		switch {
		case l.atEOF(), l.ch == '\n':
			return "", "unterminated string literal"
		case l.ch == '"':
			l.readRune()
			if problem != "" {
				return "", problem
			}
			return sb.String(), ""
		case l.ch == '\\':
			l.readRune()
			escaped, ok := unescape(l.ch)
			if !ok && problem == "" {
				problem = "invalid escape sequence \\" + string(l.ch)
			}
			sb.WriteByte(escaped)
		default:
			// Raw source bytes, so invalid UTF-8 survives as written.
			sb.WriteString(l.input[l.currentOffset():l.offset])
		}
	}
}

func (l *lexer) readByte() (string, string) {
	l.readRune()
	var value byte
	switch {
	case l.atEOF(), l.ch == '\n':
		return "", "unterminated byte literal"
	case l.ch == '\'':
		l.readRune()
		return "", "empty byte literal"
	case l.ch == '\\':
		l.readRune()
		escaped, ok := unescape(l.ch)
		if !ok {
			return "", "invalid escape sequence \\" + string(l.ch)
		}
		value = escaped
	case l.ch >= utf8.RuneSelf:
		return "", "byte literal must be a single ASCII character"
	default:
		value = byte(l.ch)
	}
	l.readRune()
	if l.ch != '\'' {
		return "", "unterminated byte literal"
	}
	l.readRune()
	return string([]byte{value}), ""
}

func unescape(r rune) (byte, bool) {
	switch r {
	case 'n':
		return '\n', true
	case 't':
		return '\t', true
	case 'r':
		return '\r', true
	case '0':
		return 0, true
	case '\\', '"', '\'':
		return byte(r), true
	default:
		return 0, false
	}
}

func quoteRune(r rune) string {
	return "'" + string(r) + "'"
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentifierStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentifierRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
