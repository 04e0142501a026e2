// Package parser turns a textual function of x into a gosymbol expression.
// It only tokenizes and orders; all algebra belongs to the symbolic library.
package parser

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	gosymbol "github.com/njchilds90/gosymbol"
)

const maxInputLength = 500

type TokenType int

const (
	Number TokenType = iota
	Ident
	Function
	Operator
	LeftParen
	RightParen
)

type Token struct {
	Type  TokenType
	Value string
}

// unaryMinus is the internal operator emitted for a leading '-'.
const unaryMinus = "u-"

var functions = map[string]func(gosymbol.Expr) gosymbol.Expr{
	"sin":   gosymbol.SinOf,
	"cos":   gosymbol.CosOf,
	"tan":   gosymbol.TanOf,
	"asin":  gosymbol.AsinOf,
	"acos":  gosymbol.AcosOf,
	"atan":  gosymbol.AtanOf,
	"sinh":  gosymbol.SinhOf,
	"cosh":  gosymbol.CoshOf,
	"tanh":  gosymbol.TanhOf,
	"exp":   gosymbol.ExpOf,
	"ln":    gosymbol.LnOf,
	"log":   gosymbol.LnOf, // natural log, as the client expects
	"sqrt":  gosymbol.SqrtOf,
	"abs":   gosymbol.AbsOf,
	"floor": gosymbol.FloorOf,
	"ceil":  gosymbol.CeilOf,
}

var constants = map[string]func() gosymbol.Expr{
	"pi": func() gosymbol.Expr { return gosymbol.NFloat(math.Pi) },
	"e":  func() gosymbol.Expr { return gosymbol.NFloat(math.E) },
}

type Parser struct {
	tokens []Token
}

func NewParser() *Parser {
	return &Parser{}
}

// Parse is the one-shot entry point: tokenize, order, build.
func Parse(input string) (gosymbol.Expr, error) {
	p := NewParser()
	if err := p.Tokenize(input); err != nil {
		return nil, err
	}
	rpn, err := p.ToRPN()
	if err != nil {
		return nil, err
	}
	return build(rpn)
}

func (p *Parser) Tokenize(input string) error {
	input = strings.TrimSpace(input)
	input = strings.ReplaceAll(input, "**", "^")

	if input == "" {
		return errors.New("empty expression")
	}
	if len(input) > maxInputLength {
		return fmt.Errorf("expression too long (max %d characters)", maxInputLength)
	}

	p.tokens = p.tokens[:0]
	runes := []rune(input)

	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case unicode.IsDigit(r) || r == '.':
			start := i
			dots := 0
			for i < len(runes) && (unicode.IsDigit(runes[i]) || runes[i] == '.') {
				if runes[i] == '.' {
					dots++
				}
				i++
			}
			if dots > 1 {
				return fmt.Errorf("invalid number: %s", string(runes[start:i]))
			}
			p.tokens = append(p.tokens, Token{Type: Number, Value: string(runes[start:i])})
		case unicode.IsLetter(r):
			start := i
			for i < len(runes) && (unicode.IsLetter(runes[i]) || unicode.IsDigit(runes[i])) {
				i++
			}
			p.tokens = append(p.tokens, Token{Type: Ident, Value: string(runes[start:i])})
		case r == '+' || r == '-' || r == '*' || r == '/' || r == '^':
			p.tokens = append(p.tokens, Token{Type: Operator, Value: string(r)})
			i++
		case r == '(':
			p.tokens = append(p.tokens, Token{Type: LeftParen, Value: "("})
			i++
		case r == ')':
			p.tokens = append(p.tokens, Token{Type: RightParen, Value: ")"})
			i++
		default:
			return fmt.Errorf("invalid character: %q", r)
		}
	}

	p.classify()
	return nil
}

// classify resolves idents into functions and rewrites unary signs.
func (p *Parser) classify() {
	out := make([]Token, 0, len(p.tokens))
	for i, tok := range p.tokens {
		switch tok.Type {
		case Ident:
			if i+1 < len(p.tokens) && p.tokens[i+1].Type == LeftParen {
				tok.Type = Function
			}
		case Operator:
			if tok.Value == "-" || tok.Value == "+" {
				unary := i == 0 ||
					p.tokens[i-1].Type == Operator ||
					p.tokens[i-1].Type == LeftParen
				if unary {
					if tok.Value == "+" {
						continue // unary plus is a no-op
					}
					tok.Value = unaryMinus
				}
			}
		}
		out = append(out, tok)
	}
	p.tokens = out
}

func precedence(op string) int {
	switch op {
	case "^":
		return 4
	case unaryMinus:
		return 3
	case "*", "/":
		return 2
	default:
		return 1
	}
}

func rightAssociative(op string) bool {
	return op == "^" || op == unaryMinus
}

// ToRPN converts the token stream to reverse polish notation
// (shunting-yard, with function tokens riding the operator stack).
func (p *Parser) ToRPN() ([]Token, error) {
	var output []Token
	var stack []Token

	for _, tok := range p.tokens {
		switch tok.Type {
		case Number, Ident:
			output = append(output, tok)
		case Function:
			stack = append(stack, tok)
		case Operator:
			// A unary operator has no left operand, so it never pops.
			if tok.Value != unaryMinus {
				for len(stack) > 0 {
					top := stack[len(stack)-1]
					if top.Type != Operator {
						break
					}
					if precedence(top.Value) > precedence(tok.Value) ||
						(precedence(top.Value) == precedence(tok.Value) && !rightAssociative(tok.Value)) {
						output = append(output, top)
						stack = stack[:len(stack)-1]
						continue
					}
					break
				}
			}
			stack = append(stack, tok)
		case LeftParen:
			stack = append(stack, tok)
		case RightParen:
			found := false
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if top.Type == LeftParen {
					found = true
					break
				}
				output = append(output, top)
			}
			if !found {
				return nil, errors.New("mismatched parentheses")
			}
			if len(stack) > 0 && stack[len(stack)-1].Type == Function {
				output = append(output, stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}
		}
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.Type == LeftParen {
			return nil, errors.New("mismatched parentheses")
		}
		output = append(output, top)
	}

	if len(output) == 0 {
		return nil, errors.New("empty expression")
	}
	return output, nil
}

func build(rpn []Token) (gosymbol.Expr, error) {
	var stack []gosymbol.Expr

	pop := func() (gosymbol.Expr, bool) {
		if len(stack) == 0 {
			return nil, false
		}
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return e, true
	}

	for _, tok := range rpn {
		switch tok.Type {
		case Number:
			if !strings.Contains(tok.Value, ".") {
				n, err := strconv.ParseInt(tok.Value, 10, 64)
				if err != nil {
					return nil, fmt.Errorf("invalid number: %s", tok.Value)
				}
				stack = append(stack, gosymbol.N(n))
				continue
			}
			f, err := strconv.ParseFloat(tok.Value, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid number: %s", tok.Value)
			}
			stack = append(stack, gosymbol.NFloat(f))
		case Ident:
			if c, ok := constants[tok.Value]; ok {
				stack = append(stack, c())
				continue
			}
			if tok.Value != "x" {
				return nil, fmt.Errorf("unknown identifier: %s", tok.Value)
			}
			stack = append(stack, gosymbol.S("x"))
		case Function:
			fn, ok := functions[tok.Value]
			if !ok {
				return nil, fmt.Errorf("unknown function: %s", tok.Value)
			}
			arg, ok := pop()
			if !ok {
				return nil, errors.New("invalid expression")
			}
			stack = append(stack, fn(arg))
		case Operator:
			if tok.Value == unaryMinus {
				arg, ok := pop()
				if !ok {
					return nil, errors.New("invalid expression")
				}
				stack = append(stack, gosymbol.MulOf(gosymbol.N(-1), arg))
				continue
			}
			right, ok1 := pop()
			left, ok2 := pop()
			if !ok1 || !ok2 {
				return nil, errors.New("invalid expression")
			}
			switch tok.Value {
			case "+":
				stack = append(stack, gosymbol.AddOf(left, right))
			case "-":
				stack = append(stack, gosymbol.AddOf(left, gosymbol.MulOf(gosymbol.N(-1), right)))
			case "*":
				stack = append(stack, gosymbol.MulOf(left, right))
			case "/":
				stack = append(stack, gosymbol.MulOf(left, gosymbol.PowOf(right, gosymbol.N(-1))))
			case "^":
				stack = append(stack, gosymbol.PowOf(left, right))
			default:
				return nil, fmt.Errorf("unknown operator: %s", tok.Value)
			}
		}
	}

	if len(stack) != 1 {
		return nil, errors.New("invalid expression")
	}
	return stack[0], nil
}
