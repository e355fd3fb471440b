// Package reader turns s-expression text into expression trees. It exists
// for the CLI and for tests; the kernel itself never parses anything.
package reader

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/opalcas/opal/internal/expr"
)

var (
	ErrUnexpectedEOF      = errors.New("unexpected end of input")
	ErrUnbalanced         = errors.New("unbalanced parenthesis")
	ErrTrailingInput      = errors.New("trailing input after expression")
	ErrBadNumber          = errors.New("malformed number")
	ErrUnterminatedString = errors.New("unterminated string")
)

// Reader scans one input string. It is single-use.
type Reader struct {
	input    string
	position int
	ch       rune
	width    int
}

func New(input string) *Reader {
	r := &Reader{input: input}
	r.readChar()
	return r
}

// Read parses exactly one expression and requires nothing but whitespace
// after it.
func Read(input string) (expr.Node, error) {
	r := New(input)
	node, err := r.ReadNode()
	if err != nil {
		return nil, err
	}
	r.skipWhitespace()
	if r.ch != 0 {
		return nil, fmt.Errorf("%w at byte %d", ErrTrailingInput, r.position)
	}
	return node, nil
}

// ReadNode parses the next expression from the stream.
func (r *Reader) ReadNode() (expr.Node, error) {
	r.skipWhitespace()
	switch {
	case r.ch == 0:
		return nil, ErrUnexpectedEOF
	case r.ch == '(':
		return r.readList()
	case r.ch == ')':
		return nil, fmt.Errorf("%w at byte %d", ErrUnbalanced, r.position)
	case r.ch == '"':
		return r.readString()
	case r.ch == '-' && isDigit(r.peekChar()), isDigit(r.ch):
		return r.readNumber()
	default:
		return r.readSymbol(), nil
	}
}

func (r *Reader) readList() (expr.Node, error) {
	r.readChar() // consume '('
	list := expr.List{}
	for {
		r.skipWhitespace()
		if r.ch == 0 {
			return nil, fmt.Errorf("%w: missing ')'", ErrUnexpectedEOF)
		}
		if r.ch == ')' {
			r.readChar()
			return list, nil
		}
		el, err := r.ReadNode()
		if err != nil {
			return nil, err
		}
		list = append(list, el)
	}
}

func (r *Reader) readString() (expr.Node, error) {
	r.readChar() // consume opening quote
	var sb strings.Builder
	for {
		switch r.ch {
		case 0:
			return nil, ErrUnterminatedString
		case '"':
			r.readChar()
			return expr.String(sb.String()), nil
		case '\\':
			r.readChar()
			switch r.ch {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case '"', '\\':
				sb.WriteRune(r.ch)
			default:
				return nil, fmt.Errorf("unknown escape \\%c", r.ch)
			}
			r.readChar()
		default:
			sb.WriteRune(r.ch)
			r.readChar()
		}
	}
}

func (r *Reader) readNumber() (expr.Node, error) {
	start := r.position
	if r.ch == '-' {
		r.readChar()
	}
	isFloat := false
	for isDigit(r.ch) || r.ch == '.' || r.ch == 'e' || r.ch == 'E' ||
		((r.ch == '+' || r.ch == '-') && isFloat) {
		if r.ch == '.' || r.ch == 'e' || r.ch == 'E' {
			isFloat = true
		}
		r.readChar()
	}
	text := r.input[start:r.position]
	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrBadNumber, text)
		}
		return expr.Float(f), nil
	}
	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrBadNumber, text)
	}
	return expr.Int(i), nil
}

func (r *Reader) readSymbol() expr.Node {
	start := r.position
	for r.ch != 0 && !unicode.IsSpace(r.ch) && r.ch != '(' && r.ch != ')' && r.ch != '"' {
		r.readChar()
	}
	return expr.Symbol(r.input[start:r.position])
}

func (r *Reader) readChar() {
	r.position += r.width
	if r.position >= len(r.input) {
		r.ch = 0
		r.width = 0
		return
	}
	ch, w := utf8.DecodeRuneInString(r.input[r.position:])
	r.ch = ch
	r.width = w
}

func (r *Reader) peekChar() rune {
	next := r.position + r.width
	if next >= len(r.input) {
		return 0
	}
	ch, _ := utf8.DecodeRuneInString(r.input[next:])
	return ch
}

func (r *Reader) skipWhitespace() {
	for {
		for unicode.IsSpace(r.ch) {
			r.readChar()
		}
		if r.ch == ';' { // comment to end of line
			for r.ch != 0 && r.ch != '\n' {
				r.readChar()
			}
			continue
		}
		return
	}
}

func isDigit(ch rune) bool { return ch >= '0' && ch <= '9' }
