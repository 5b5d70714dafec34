// Package parser builds the AST from a token stream via recursive descent.
package parser

import (
	"fmt"
	"io"
	"strconv"

	"github.com/lox-lang/golox/lang/ast"
	"github.com/lox-lang/golox/lang/token"
)

const maxArgs = 255

// ParseError is returned (and, internally, used to unwind the recursive
// descent) when the token stream does not match the grammar. Parse errors
// are fatal for the whole program: the parser does not attempt
// statement-boundary recovery.
type ParseError struct {
	Token   token.Token
	Message string
}

func (e *ParseError) Error() string {
	if e.Token.Type == token.EOF {
		return fmt.Sprintf("[line %d] Error at end: %s", e.Token.Line, e.Message)
	}
	return fmt.Sprintf("[line %d] Error at '%s': %s", e.Token.Line, e.Token.Lexeme, e.Message)
}

// Parser is a recursive-descent parser over a fixed token slice.
type Parser struct {
	tokens  []token.Token
	current int
	errOut  io.Writer
}

// Option configures a Parser.
type Option func(*Parser)

// WithErrorWriter routes the fatal parse error message to w before it is
// also returned as an error.
func WithErrorWriter(w io.Writer) Option {
	return func(p *Parser) { p.errOut = w }
}

// New creates a Parser over tokens (which must end with an EOF token).
func New(tokens []token.Token, opts ...Option) *Parser {
	p := &Parser{tokens: tokens}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse runs the full `program` production and returns the statement list.
func (p *Parser) Parse() (stmts []ast.Stmt, err error) {
	defer func() {
		if r := recover(); r != nil {
			pe, ok := r.(*ParseError)
			if !ok {
				panic(r)
			}
			err = pe
		}
	}()

	for !p.atEnd() {
		stmts = append(stmts, p.declaration())
	}
	return stmts, nil
}

// ParseExpression parses a single expression, used by the `parse` and
// `evaluate` CLI commands which operate on one bare expression rather than
// a full program.
func (p *Parser) ParseExpression() (expr ast.Expr, err error) {
	defer func() {
		if r := recover(); r != nil {
			pe, ok := r.(*ParseError)
			if !ok {
				panic(r)
			}
			err = pe
		}
	}()

	return p.expression(), nil
}

// ---- declarations ----

func (p *Parser) declaration() ast.Stmt {
	switch {
	case p.match(token.Class):
		return p.classDecl()
	case p.match(token.Fun):
		return &ast.Function{Data: p.function("function")}
	case p.match(token.Var):
		return p.varDecl()
	default:
		return p.statement()
	}
}

func (p *Parser) classDecl() ast.Stmt {
	name := p.consume(token.Identifier, "Expect class name.")

	var superclass *ast.Variable
	if p.match(token.Less) {
		superName := p.consume(token.Identifier, "Expect superclass name.")
		superclass = &ast.Variable{ID: ast.NextID(), Name: superName}
	}

	p.consume(token.LeftBrace, "Expect '{' before class body.")

	var methods []ast.FunctionData
	for !p.check(token.RightBrace) && !p.atEnd() {
		methods = append(methods, p.function("method"))
	}

	p.consume(token.RightBrace, "Expect '}' after class body.")

	return &ast.Class{Name: name, Superclass: superclass, Methods: methods}
}

func (p *Parser) function(kind string) ast.FunctionData {
	name := p.consume(token.Identifier, "Expect "+kind+" name.")
	p.consume(token.LeftParen, "Expect '(' after "+kind+" name.")

	var params []token.Token
	if !p.check(token.RightParen) {
		for {
			if len(params) >= maxArgs {
				p.errorAt(p.peek(), "Can't have more than 255 parameters.")
			}
			params = append(params, p.consume(token.Identifier, "Expect parameter name."))
			if !p.match(token.Comma) {
				break
			}
		}
	}
	p.consume(token.RightParen, "Expect ')' after parameters.")

	p.consume(token.LeftBrace, "Expect '{' before "+kind+" body.")
	body := p.blockStatements()

	return ast.FunctionData{Name: name, Params: params, Body: body}
}

func (p *Parser) varDecl() ast.Stmt {
	name := p.consume(token.Identifier, "Expect variable name.")

	var init ast.Expr
	if p.match(token.Equal) {
		init = p.expression()
	}
	p.consume(token.Semicolon, "Expect ';' after variable declaration.")
	return &ast.Var{Name: name, Initializer: init}
}

// ---- statements ----

func (p *Parser) statement() ast.Stmt {
	switch {
	case p.match(token.For):
		return p.forStmt()
	case p.match(token.If):
		return p.ifStmt()
	case p.match(token.Print):
		return p.printStmt()
	case p.match(token.Return):
		return p.returnStmt()
	case p.match(token.While):
		return p.whileStmt()
	case p.match(token.LeftBrace):
		return &ast.Block{Statements: p.blockStatements()}
	default:
		return p.exprStmt()
	}
}

func (p *Parser) blockStatements() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.check(token.RightBrace) && !p.atEnd() {
		stmts = append(stmts, p.declaration())
	}
	p.consume(token.RightBrace, "Expect '}' after block.")
	return stmts
}

func (p *Parser) exprStmt() ast.Stmt {
	expr := p.expression()
	p.consume(token.Semicolon, "Expect ';' after expression.")
	return &ast.ExpressionStmt{Expression: expr}
}

func (p *Parser) printStmt() ast.Stmt {
	expr := p.expression()
	p.consume(token.Semicolon, "Expect ';' after value.")
	return &ast.Print{Expression: expr}
}

func (p *Parser) returnStmt() ast.Stmt {
	keyword := p.previous()
	var value ast.Expr
	if !p.check(token.Semicolon) {
		value = p.expression()
	}
	p.consume(token.Semicolon, "Expect ';' after return value.")
	return &ast.Return{Keyword: keyword, Value: value}
}

func (p *Parser) ifStmt() ast.Stmt {
	p.consume(token.LeftParen, "Expect '(' after 'if'.")
	cond := p.expression()
	p.consume(token.RightParen, "Expect ')' after if condition.")

	then := p.statement()
	var elseBranch ast.Stmt
	if p.match(token.Else) {
		elseBranch = p.statement()
	}
	return &ast.If{Condition: cond, Then: then, Else: elseBranch}
}

func (p *Parser) whileStmt() ast.Stmt {
	p.consume(token.LeftParen, "Expect '(' after 'while'.")
	cond := p.expression()
	p.consume(token.RightParen, "Expect ')' after condition.")
	body := p.statement()
	return &ast.While{Condition: cond, Body: body}
}

// forStmt desugars `for (init; cond; incr) body` into
// `{ init; while (cond) { body; incr; } }`.
func (p *Parser) forStmt() ast.Stmt {
	p.consume(token.LeftParen, "Expect '(' after 'for'.")

	var initializer ast.Stmt
	switch {
	case p.match(token.Semicolon):
		initializer = nil
	case p.match(token.Var):
		initializer = p.varDecl()
	default:
		initializer = p.exprStmt()
	}

	var condition ast.Expr
	if !p.check(token.Semicolon) {
		condition = p.expression()
	}
	p.consume(token.Semicolon, "Expect ';' after loop condition.")

	var increment ast.Expr
	if !p.check(token.RightParen) {
		increment = p.expression()
	}
	p.consume(token.RightParen, "Expect ')' after for clauses.")

	body := p.statement()

	if increment != nil {
		body = &ast.Block{Statements: []ast.Stmt{body, &ast.ExpressionStmt{Expression: increment}}}
	}

	if condition == nil {
		condition = &ast.Literal{Value: true}
	}
	body = &ast.While{Condition: condition, Body: body}

	if initializer != nil {
		body = &ast.Block{Statements: []ast.Stmt{initializer, body}}
	}

	return body
}

// ---- expressions ----

func (p *Parser) expression() ast.Expr {
	return p.assignment()
}

func (p *Parser) assignment() ast.Expr {
	expr := p.or()

	if p.match(token.Equal) {
		equals := p.previous()
		value := p.assignment()

		switch target := expr.(type) {
		case *ast.Variable:
			return &ast.Assign{ID: ast.NextID(), Name: target.Name, Value: value}
		case *ast.Get:
			return &ast.Set{Object: target.Object, Name: target.Name, Value: value}
		default:
			p.errorAt(equals, "Invalid assignment target.")
		}
	}

	return expr
}

func (p *Parser) or() ast.Expr {
	expr := p.and()
	for p.match(token.Or) {
		op := p.previous()
		right := p.and()
		expr = &ast.Logical{Left: expr, Operator: op, Right: right}
	}
	return expr
}

func (p *Parser) and() ast.Expr {
	expr := p.equality()
	for p.match(token.And) {
		op := p.previous()
		right := p.equality()
		expr = &ast.Logical{Left: expr, Operator: op, Right: right}
	}
	return expr
}

func (p *Parser) equality() ast.Expr {
	expr := p.comparison()
	for p.match(token.BangEqual, token.EqualEqual) {
		op := p.previous()
		right := p.comparison()
		expr = &ast.Binary{Left: expr, Operator: op, Right: right}
	}
	return expr
}

func (p *Parser) comparison() ast.Expr {
	expr := p.term()
	for p.match(token.Greater, token.GreaterEqual, token.Less, token.LessEqual) {
		op := p.previous()
		right := p.term()
		expr = &ast.Binary{Left: expr, Operator: op, Right: right}
	}
	return expr
}

func (p *Parser) term() ast.Expr {
	expr := p.factor()
	for p.match(token.Minus, token.Plus) {
		op := p.previous()
		right := p.factor()
		expr = &ast.Binary{Left: expr, Operator: op, Right: right}
	}
	return expr
}

func (p *Parser) factor() ast.Expr {
	expr := p.unary()
	for p.match(token.Slash, token.Star) {
		op := p.previous()
		right := p.unary()
		expr = &ast.Binary{Left: expr, Operator: op, Right: right}
	}
	return expr
}

func (p *Parser) unary() ast.Expr {
	if p.match(token.Bang, token.Minus) {
		op := p.previous()
		right := p.unary()
		return &ast.Unary{Operator: op, Right: right}
	}
	return p.call()
}

func (p *Parser) call() ast.Expr {
	expr := p.primary()

	for {
		switch {
		case p.match(token.LeftParen):
			expr = p.finishCall(expr)
		case p.match(token.Dot):
			name := p.consume(token.Identifier, "Expect property name after '.'.")
			expr = &ast.Get{Object: expr, Name: name}
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if !p.check(token.RightParen) {
		for {
			if len(args) >= maxArgs {
				p.errorAt(p.peek(), "Can't have more than 255 arguments.")
			}
			args = append(args, p.expression())
			if !p.match(token.Comma) {
				break
			}
		}
	}
	paren := p.consume(token.RightParen, "Expect ')' after arguments.")
	return &ast.Call{Callee: callee, Paren: paren, Args: args}
}

func (p *Parser) primary() ast.Expr {
	switch {
	case p.match(token.False):
		return &ast.Literal{Value: false}
	case p.match(token.True):
		return &ast.Literal{Value: true}
	case p.match(token.Nil):
		return &ast.Literal{Value: nil}
	case p.match(token.Number):
		return &ast.Literal{Value: mustParseFloat(p.previous().Literal)}
	case p.match(token.String):
		return &ast.Literal{Value: p.previous().Literal}
	case p.match(token.Super):
		keyword := p.previous()
		p.consume(token.Dot, "Expect '.' after 'super'.")
		method := p.consume(token.Identifier, "Expect superclass method name.")
		return &ast.Super{ID: ast.NextID(), Keyword: keyword, Method: method}
	case p.match(token.This):
		return &ast.This{ID: ast.NextID(), Keyword: p.previous()}
	case p.match(token.Identifier):
		return &ast.Variable{ID: ast.NextID(), Name: p.previous()}
	case p.match(token.LeftParen):
		expr := p.expression()
		p.consume(token.RightParen, "Expect ')' after expression.")
		return &ast.Grouping{Expression: expr}
	default:
		p.errorAt(p.peek(), "Expect expression.")
		panic("unreachable")
	}
}

// ---- token stream helpers ----

func (p *Parser) match(types ...token.Type) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) check(t token.Type) bool {
	return !p.atEnd() && p.peek().Type == t
}

func (p *Parser) advance() token.Token {
	if !p.atEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) atEnd() bool { return p.peek().Type == token.EOF }

func (p *Parser) peek() token.Token { return p.tokens[p.current] }

func (p *Parser) previous() token.Token { return p.tokens[p.current-1] }

func (p *Parser) consume(t token.Type, message string) token.Token {
	if p.check(t) {
		return p.advance()
	}
	p.errorAt(p.peek(), message)
	panic("unreachable")
}

func (p *Parser) errorAt(tok token.Token, message string) {
	err := &ParseError{Token: tok, Message: message}
	if p.errOut != nil {
		fmt.Fprintln(p.errOut, err.Error())
	}
	panic(err)
}

func mustParseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
