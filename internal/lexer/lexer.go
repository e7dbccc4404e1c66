package lexer

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/funvibe/funamb/internal/token"
)

const (
	unterminatedString  = "unterminated string literal"
	unterminatedComment = "unterminated block comment"
)

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int  // current line number
	column       int  // current column number
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
		l.ch = r
		l.position = l.readPosition
		l.readPosition += w
		l.column++
		return
	}

	l.position = l.readPosition
	l.readPosition++
	l.column++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) NextToken() token.Token {
	var tok token.Token

	if msg := l.skipWhitespaceAndComments(); msg != "" {
		return token.Token{Type: token.ILLEGAL, Lexeme: "/*", Literal: msg, Line: l.line, Column: l.column}
	}

	line, col := l.line, l.column

	switch l.ch {
	case '=':
		// =, ===, =>
		if l.peekChar() == '=' {
			l.readChar()
			if l.peekChar() == '=' {
				l.readChar()
				tok = op(token.EQ, "===", line, col)
			} else {
				tok = token.Token{Type: token.ILLEGAL, Lexeme: "==", Literal: "use === for equality", Line: line, Column: col}
			}
		} else if l.peekChar() == '>' {
			l.readChar()
			tok = op(token.ARROW, "=>", line, col)
		} else {
			tok = op(token.ASSIGN, "=", line, col)
		}
	case '!':
		// !, !==
		if l.peekChar() == '=' {
			l.readChar()
			if l.peekChar() == '=' {
				l.readChar()
				tok = op(token.NOT_EQ, "!==", line, col)
			} else {
				tok = token.Token{Type: token.ILLEGAL, Lexeme: "!=", Literal: "use !== for inequality", Line: line, Column: col}
			}
		} else {
			tok = op(token.BANG, "!", line, col)
		}
	case '<':
		if l.peekChar() == '=' {
			l.readChar()
			tok = op(token.LTE, "<=", line, col)
		} else {
			tok = op(token.LT, "<", line, col)
		}
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			tok = op(token.GTE, ">=", line, col)
		} else {
			tok = op(token.GT, ">", line, col)
		}
	case '&':
		if l.peekChar() == '&' {
			l.readChar()
			tok = op(token.AND, "&&", line, col)
		} else {
			tok = token.Token{Type: token.ILLEGAL, Lexeme: "&", Literal: "unexpected character '&'", Line: line, Column: col}
		}
	case '|':
		if l.peekChar() == '|' {
			l.readChar()
			tok = op(token.OR, "||", line, col)
		} else {
			tok = token.Token{Type: token.ILLEGAL, Lexeme: "|", Literal: "unexpected character '|'", Line: line, Column: col}
		}
	case '+':
		tok = op(token.PLUS, "+", line, col)
	case '-':
		tok = op(token.MINUS, "-", line, col)
	case '*':
		tok = op(token.ASTERISK, "*", line, col)
	case '/':
		tok = op(token.SLASH, "/", line, col)
	case '%':
		tok = op(token.PERCENT, "%", line, col)
	case '?':
		tok = op(token.QUESTION, "?", line, col)
	case ':':
		tok = op(token.COLON, ":", line, col)
	case ',':
		tok = op(token.COMMA, ",", line, col)
	case ';':
		tok = op(token.SEMICOLON, ";", line, col)
	case '(':
		tok = op(token.LPAREN, "(", line, col)
	case ')':
		tok = op(token.RPAREN, ")", line, col)
	case '{':
		tok = op(token.LBRACE, "{", line, col)
	case '}':
		tok = op(token.RBRACE, "}", line, col)
	case '"', '\'':
		content, ok := l.readString(l.ch)
		if !ok {
			return token.Token{Type: token.ILLEGAL, Lexeme: content, Literal: unterminatedString, Line: line, Column: col}
		}
		tok = token.Token{Type: token.STRING, Lexeme: strconv.Quote(content), Literal: content, Line: line, Column: col}
	case 0:
		return token.Token{Type: token.EOF, Lexeme: "", Literal: "", Line: line, Column: col}
	default:
		if isLetter(l.ch) {
			ident := l.readIdentifier()
			return token.Token{Type: token.LookupIdent(ident), Lexeme: ident, Literal: ident, Line: line, Column: col}
		} else if isDigit(l.ch) {
			return l.readNumber(line, col)
		}
		tok = token.Token{Type: token.ILLEGAL, Lexeme: string(l.ch), Literal: "unexpected character '" + string(l.ch) + "'", Line: line, Column: col}
	}

	l.readChar()
	return tok
}

func op(t token.TokenType, lexeme string, line, col int) token.Token {
	return token.Token{Type: t, Lexeme: lexeme, Literal: lexeme, Line: line, Column: col}
}

// skipWhitespaceAndComments returns a non-empty message if a block comment is not closed.
func (l *Lexer) skipWhitespaceAndComments() string {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r':
			l.readChar()
		case l.ch == '/' && l.peekChar() == '/':
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
		case l.ch == '/' && l.peekChar() == '*':
			l.readChar()
			l.readChar()
			for !(l.ch == '*' && l.peekChar() == '/') {
				if l.ch == 0 {
					return unterminatedComment
				}
				l.readChar()
			}
			l.readChar()
			l.readChar()
		default:
			return ""
		}
	}
}

func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[position:l.position]
}

// readNumber reads 12, 1.5, 2e10, 1.5e-3.
func (l *Lexer) readNumber(line, col int) token.Token {
	position := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		next := l.peekChar()
		if isDigit(next) || next == '+' || next == '-' {
			l.readChar()
			if l.ch == '+' || l.ch == '-' {
				l.readChar()
			}
			for isDigit(l.ch) {
				l.readChar()
			}
		}
	}
	lexeme := l.input[position:l.position]
	value, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		return token.Token{Type: token.ILLEGAL, Lexeme: lexeme, Literal: "malformed number " + lexeme, Line: line, Column: col}
	}
	return token.Token{Type: token.NUMBER, Lexeme: lexeme, Literal: value, Line: line, Column: col}
}

// readString reads a quoted string starting at the opening quote. On return
// l.ch is the closing quote. The bool is false if the input ended first.
func (l *Lexer) readString(quote rune) (string, bool) {
	var out strings.Builder
	for {
		l.readChar()
		switch l.ch {
		case 0:
			return out.String(), false
		case quote:
			return out.String(), true
		case '\\':
			l.readChar()
			switch l.ch {
			case 'n':
				out.WriteRune('\n')
			case 't':
				out.WriteRune('\t')
			case 'r':
				out.WriteRune('\r')
			case '0':
				out.WriteRune(0)
			case 0:
				return out.String(), false
			default:
				out.WriteRune(l.ch)
			}
		default:
			out.WriteRune(l.ch)
		}
	}
}

func isLetter(ch rune) bool {
	return ch == '_' || ch == '$' || unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

// IsUnterminated reports whether an ILLEGAL token was produced because the
// input ended inside a string or comment.
func IsUnterminated(tok token.Token) bool {
	if tok.Type != token.ILLEGAL {
		return false
	}
	msg, _ := tok.Literal.(string)
	return msg == unterminatedString || msg == unterminatedComment
}
