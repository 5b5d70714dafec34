// Package ast defines the expression and statement tree produced by the
// parser and walked by the resolver and interpreter.
package ast

import "github.com/lox-lang/golox/lang/token"

// idCounter hands out unique expression ids at parse time. Ids are the
// handshake between the resolver's locals table and the interpreter's
// variable lookups; they must never be reused across a parse.
var idCounter int

// NextID returns a fresh, globally unique expression id. Only Variable,
// Assign, This and Super nodes carry one, since those are the only nodes
// the resolver needs to bind to a scope depth.
func NextID() int {
	idCounter++
	return idCounter
}

// ResetIDs restarts the id counter. Exposed for tests that parse multiple
// independent programs and want predictable ids; production code never
// needs to call it since ids only need to be unique within one parse.
func ResetIDs() { idCounter = 0 }

// Expr is the common interface implemented by every expression node.
type Expr interface {
	exprNode()
}

// Literal is a constant nil, boolean, number, or string value.
type Literal struct {
	Value any // nil, bool, float64, or string
}

// Grouping is a parenthesized expression, kept distinct so sexpr printing
// can render "(group ...)".
type Grouping struct {
	Expression Expr
}

// Unary is a prefix operator application: !e or -e.
type Unary struct {
	Operator token.Token
	Right    Expr
}

// Binary is an infix arithmetic or comparison expression.
type Binary struct {
	Left     Expr
	Operator token.Token
	Right    Expr
}

// Logical is "and"/"or", kept distinct from Binary because both
// short-circuit instead of always evaluating both operands.
type Logical struct {
	Left     Expr
	Operator token.Token
	Right    Expr
}

// Variable is a bare name reference, e.g. `x`.
type Variable struct {
	ID   int
	Name token.Token
}

// Assign is `name = value`.
type Assign struct {
	ID    int
	Name  token.Token
	Value Expr
}

// Call is `callee(args...)`. Paren is the closing ')' token, kept for
// error reporting (arity mismatches, non-callable callees).
type Call struct {
	Callee Expr
	Paren  token.Token
	Args   []Expr
}

// Get is property access, `object.name`.
type Get struct {
	Object Expr
	Name   token.Token
}

// Set is property assignment, `object.name = value`.
type Set struct {
	Object Expr
	Name   token.Token
	Value  Expr
}

// This is the `this` keyword occurrence inside a method body.
type This struct {
	ID      int
	Keyword token.Token
}

// Super is a `super.method` occurrence inside a subclass method body.
type Super struct {
	ID      int
	Keyword token.Token
	Method  token.Token
}

func (*Literal) exprNode()  {}
func (*Grouping) exprNode() {}
func (*Unary) exprNode()    {}
func (*Binary) exprNode()   {}
func (*Logical) exprNode()  {}
func (*Variable) exprNode() {}
func (*Assign) exprNode()   {}
func (*Call) exprNode()     {}
func (*Get) exprNode()      {}
func (*Set) exprNode()      {}
func (*This) exprNode()     {}
func (*Super) exprNode()    {}
