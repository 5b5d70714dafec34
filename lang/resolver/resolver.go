// Package resolver performs the static lexical-scope pre-pass that binds
// each variable/assignment/this/super occurrence to a scope depth, so the
// interpreter never has to search an environment chain at run time.
package resolver

import (
	"fmt"
	"io"

	"github.com/lox-lang/golox/lang/ast"
	"github.com/lox-lang/golox/lang/token"
)

type functionType int

const (
	funcNone functionType = iota
	funcFunction
	funcInitializer
	funcMethod
)

type classType int

const (
	classNone classType = iota
	classClass
	classSubclass
)

// ResolveError marks a scoping violation (bad return, self-inheriting
// class, reading a local in its own initializer, ...). The resolver uses
// the same "[line L] Error at '<lex>': <msg>" rendering as the parser.
type ResolveError struct {
	Token   token.Token
	Message string
}

func (e *ResolveError) Error() string {
	if e.Token.Type == token.EOF {
		return fmt.Sprintf("[line %d] Error at end: %s", e.Token.Line, e.Message)
	}
	return fmt.Sprintf("[line %d] Error at '%s': %s", e.Token.Line, e.Token.Lexeme, e.Message)
}

// Resolver walks a parsed program and produces a Locals side-table mapping
// expression id to scope depth. Unresolved names are left out of Locals
// entirely; the interpreter treats a missing id as a global lookup.
type Resolver struct {
	scopes    []map[string]bool
	funcType  functionType
	classType classType
	locals    map[int]int
	errOut    io.Writer
	HadError  bool
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithErrorWriter routes resolver diagnostics to w.
func WithErrorWriter(w io.Writer) Option {
	return func(r *Resolver) { r.errOut = w }
}

// New creates a Resolver.
func New(opts ...Option) *Resolver {
	r := &Resolver{locals: make(map[int]int)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve walks every statement in the program and returns the completed
// locals side-table. The returned map should be treated as read-only by
// the interpreter; it is invalidated by any subsequent parse since
// expression ids are only unique within a single parse.
func (r *Resolver) Resolve(stmts []ast.Stmt) map[int]int {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
	return r.locals
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[name.Lexeme]; ok {
		r.reportError(name, "Already a variable with this name in this scope.")
	}
	scope[name.Lexeme] = false
}

func (r *Resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

// declareDefineName is used for synthetic bindings ("this", "super") which
// have no source token of their own.
func (r *Resolver) declareDefineName(name string) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name] = true
}

func (r *Resolver) resolveLocal(id int, name string) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			r.locals[id] = len(r.scopes) - 1 - i
			return
		}
	}
	// unresolved: treated as a global, no entry recorded.
}

func (r *Resolver) reportError(tok token.Token, message string) {
	r.HadError = true
	err := &ResolveError{Token: tok, Message: message}
	if r.errOut != nil {
		fmt.Fprintln(r.errOut, err.Error())
	}
}

// ---- statements ----

func (r *Resolver) resolveStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.Block:
		r.beginScope()
		for _, stmt := range n.Statements {
			r.resolveStmt(stmt)
		}
		r.endScope()

	case *ast.Var:
		r.declare(n.Name)
		if n.Initializer != nil {
			r.resolveExpr(n.Initializer)
		}
		r.define(n.Name)

	case *ast.Function:
		r.declare(n.Data.Name)
		r.define(n.Data.Name)
		r.resolveFunction(n.Data, funcFunction)

	case *ast.ExpressionStmt:
		r.resolveExpr(n.Expression)

	case *ast.If:
		r.resolveExpr(n.Condition)
		r.resolveStmt(n.Then)
		if n.Else != nil {
			r.resolveStmt(n.Else)
		}

	case *ast.Print:
		r.resolveExpr(n.Expression)

	case *ast.Return:
		if r.funcType == funcNone {
			r.reportError(n.Keyword, "Can't return from top-level code.")
		}
		if n.Value != nil {
			if r.funcType == funcInitializer {
				r.reportError(n.Keyword, "Can't return a value from an initializer.")
			}
			r.resolveExpr(n.Value)
		}

	case *ast.While:
		r.resolveExpr(n.Condition)
		r.resolveStmt(n.Body)

	case *ast.Class:
		r.resolveClass(n)

	default:
		panic(fmt.Sprintf("resolver: unhandled statement %T", s))
	}
}

func (r *Resolver) resolveClass(c *ast.Class) {
	enclosingClass := r.classType
	r.classType = classClass

	r.declare(c.Name)
	r.define(c.Name)

	if c.Superclass != nil {
		if c.Superclass.Name.Lexeme == c.Name.Lexeme {
			r.reportError(c.Superclass.Name, "A class can't inherit from itself.")
		}
		r.classType = classSubclass
		r.resolveExpr(c.Superclass)

		r.beginScope()
		r.declareDefineName("super")
	}

	r.beginScope()
	r.declareDefineName("this")

	for _, method := range c.Methods {
		fnType := funcMethod
		if method.Name.Lexeme == "init" {
			fnType = funcInitializer
		}
		r.resolveFunction(method, fnType)
	}

	r.endScope()

	if c.Superclass != nil {
		r.endScope()
	}

	r.classType = enclosingClass
}

func (r *Resolver) resolveFunction(fn ast.FunctionData, fnType functionType) {
	enclosingFn := r.funcType
	r.funcType = fnType

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	for _, stmt := range fn.Body {
		r.resolveStmt(stmt)
	}
	r.endScope()

	r.funcType = enclosingFn
}

// ---- expressions ----

func (r *Resolver) resolveExpr(e ast.Expr) {
	switch n := e.(type) {
	case *ast.Variable:
		if len(r.scopes) > 0 {
			if defined, declared := r.scopes[len(r.scopes)-1][n.Name.Lexeme]; declared && !defined {
				r.reportError(n.Name, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(n.ID, n.Name.Lexeme)

	case *ast.Assign:
		r.resolveExpr(n.Value)
		r.resolveLocal(n.ID, n.Name.Lexeme)

	case *ast.Binary:
		r.resolveExpr(n.Left)
		r.resolveExpr(n.Right)

	case *ast.Logical:
		r.resolveExpr(n.Left)
		r.resolveExpr(n.Right)

	case *ast.Call:
		r.resolveExpr(n.Callee)
		for _, arg := range n.Args {
			r.resolveExpr(arg)
		}

	case *ast.Grouping:
		r.resolveExpr(n.Expression)

	case *ast.Literal:
		// nothing to resolve

	case *ast.Unary:
		r.resolveExpr(n.Right)

	case *ast.Get:
		r.resolveExpr(n.Object)

	case *ast.Set:
		r.resolveExpr(n.Value)
		r.resolveExpr(n.Object)

	case *ast.This:
		if r.classType == classNone {
			r.reportError(n.Keyword, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(n.ID, "this")

	case *ast.Super:
		switch r.classType {
		case classNone:
			r.reportError(n.Keyword, "Can't use 'super' outside of a class.")
			return
		case classClass:
			r.reportError(n.Keyword, "Can't use 'super' in a class with no superclass.")
			return
		}
		r.resolveLocal(n.ID, "super")

	default:
		panic(fmt.Sprintf("resolver: unhandled expression %T", e))
	}
}
