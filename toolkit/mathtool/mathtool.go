// Package mathtool provides a calculator tool that evaluates arithmetic
// expressions without touching the host environment.
package mathtool

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/skosovsky/reagent"
)

type args struct {
	Expression string `json:"expression" description:"The mathematical expression to evaluate (e.g., '2 + 2', '3.14 * 2', '10 ** 2')"`
}

// New builds the calculator tool.
func New() (*reagent.Tool, error) {
	return reagent.NewTool(
		"calculator",
		"Safely evaluate a mathematical expression. Supports basic arithmetic operations (+, -, *, /, **, %).",
		func(_ context.Context, a args) (float64, error) {
			return Eval(a.Expression)
		},
	)
}

// Eval evaluates an arithmetic expression: + - * / % ** with parentheses and
// unary minus. Invalid expressions return a reagent.ClientError so the model
// can correct itself.
func Eval(expression string) (float64, error) {
	p := &parser{input: expression}
	v, err := p.expr()
	if err != nil {
		return 0, invalid(err)
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		return 0, invalid(fmt.Errorf("unexpected %q at position %d", p.input[p.pos], p.pos))
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, invalid(fmt.Errorf("result is not a finite number"))
	}
	return v, nil
}

func invalid(err error) error {
	return &reagent.ClientError{Reason: "invalid mathematical expression: " + err.Error()}
}

// parser is a recursive-descent evaluator over the grammar
// expr := term (('+'|'-') term)* ; term := power (('*'|'/'|'%') power)* ;
// power := unary ('**' power)? ; unary := '-' unary | primary ;
// primary := number | '(' expr ')'.
type parser struct {
	input string
	pos   int
}

func (p *parser) expr() (float64, error) {
	v, err := p.term()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpace()
		switch {
		case p.accept("+"):
			r, err := p.term()
			if err != nil {
				return 0, err
			}
			v += r
		case p.accept("-"):
			r, err := p.term()
			if err != nil {
				return 0, err
			}
			v -= r
		default:
			return v, nil
		}
	}
}

func (p *parser) term() (float64, error) {
	v, err := p.power()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpace()
		switch {
		case p.accept("*"):
			r, err := p.power()
			if err != nil {
				return 0, err
			}
			v *= r
		case p.accept("/"):
			r, err := p.power()
			if err != nil {
				return 0, err
			}
			if r == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			v /= r
		case p.accept("%"):
			r, err := p.power()
			if err != nil {
				return 0, err
			}
			if r == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			v = math.Mod(v, r)
		default:
			return v, nil
		}
	}
}

func (p *parser) power() (float64, error) {
	v, err := p.unary()
	if err != nil {
		return 0, err
	}
	p.skipSpace()
	if p.accept("**") {
		r, err := p.power() // right-associative
		if err != nil {
			return 0, err
		}
		return math.Pow(v, r), nil
	}
	return v, nil
}

func (p *parser) unary() (float64, error) {
	p.skipSpace()
	if p.accept("-") {
		v, err := p.unary()
		if err != nil {
			return 0, err
		}
		return -v, nil
	}
	return p.primary()
}

func (p *parser) primary() (float64, error) {
	p.skipSpace()
	if p.accept("(") {
		v, err := p.expr()
		if err != nil {
			return 0, err
		}
		p.skipSpace()
		if !p.accept(")") {
			return 0, fmt.Errorf("missing closing parenthesis")
		}
		return v, nil
	}
	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if (c >= '0' && c <= '9') || c == '.' {
			p.pos++
			continue
		}
		break
	}
	if start == p.pos {
		if p.pos >= len(p.input) {
			return 0, fmt.Errorf("unexpected end of expression")
		}
		return 0, fmt.Errorf("unexpected %q at position %d", p.input[p.pos], p.pos)
	}
	v, err := strconv.ParseFloat(p.input[start:p.pos], 64)
	if err != nil {
		return 0, fmt.Errorf("bad number %q", p.input[start:p.pos])
	}
	return v, nil
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t') {
		p.pos++
	}
}

func (p *parser) peek(tok string) bool {
	return strings.HasPrefix(p.input[p.pos:], tok)
}

func (p *parser) accept(tok string) bool {
	if p.peek(tok) {
		p.pos += len(tok)
		return true
	}
	return false
}
