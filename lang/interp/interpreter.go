// Package interp walks the AST produced by the parser, using the
// resolver's locals side-table to resolve variable references to a scope
// depth instead of searching the environment chain at run time.
package interp

import (
	"fmt"
	"io"
	"os"

	"github.com/lox-lang/golox/lang/ast"
	"github.com/lox-lang/golox/lang/token"
)

// Interpreter holds everything needed to execute a program: the root
// globals frame, the frame top-level code runs in, and the locals
// side-table produced by the resolver. The frame active during execution
// is passed through the exec/eval calls rather than stored here.
type Interpreter struct {
	globals *Environment
	env     *Environment
	locals  map[int]int
	stdout  io.Writer
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithStdout overrides where `print` writes; defaults to os.Stdout.
func WithStdout(w io.Writer) Option {
	return func(it *Interpreter) { it.stdout = w }
}

// WithLocals supplies the resolver's output. Omitting it (or passing nil)
// makes every variable reference resolve against globals, which is how
// the `evaluate` command runs a bare expression with no resolve pass.
func WithLocals(locals map[int]int) Option {
	return func(it *Interpreter) { it.locals = locals }
}

// New creates an Interpreter with a fresh globals frame pre-populated
// with the language's native functions.
func New(opts ...Option) *Interpreter {
	globals := NewEnvironment(nil)
	defineNatives(globals)

	it := &Interpreter{
		globals: globals,
		env:     globals,
		locals:  map[int]int{},
		stdout:  os.Stdout,
	}
	for _, opt := range opts {
		opt(it)
	}
	return it
}

// Interpret executes a full program (the `run` command). Statements run
// directly against globals, not a nested block, matching the semantics of
// top-level declarations.
func (it *Interpreter) Interpret(stmts []ast.Stmt) error {
	for _, s := range stmts {
		if _, _, err := it.execStmt(s, it.env); err != nil {
			return err
		}
	}
	return nil
}

// EvaluateExpression evaluates a single bare expression (the `evaluate`
// command). No resolver pass runs over it, so every Variable/Assign/This
// reference falls back to a direct globals lookup, and a Super reference
// reports "Undefined variable 'super'.".
func (it *Interpreter) EvaluateExpression(expr ast.Expr) (Value, error) {
	return it.evalExpr(expr, it.env)
}

// ---- statement execution ----
//
// Every exec method returns (retVal, isReturn, err): isReturn signals that
// a Return statement unwound through it, carrying retVal upward; it is the
// control-flow channel for `return` and is never conflated with err, the
// diagnostic channel for runtime errors.

func (it *Interpreter) execBlockBody(stmts []ast.Stmt, env *Environment) (Value, bool, error) {
	for _, s := range stmts {
		retVal, isReturn, err := it.execStmt(s, env)
		if err != nil {
			return nil, false, err
		}
		if isReturn {
			return retVal, true, nil
		}
	}
	return nil, false, nil
}

func (it *Interpreter) execStmt(s ast.Stmt, env *Environment) (Value, bool, error) {
	switch n := s.(type) {
	case *ast.ExpressionStmt:
		_, err := it.evalExpr(n.Expression, env)
		return nil, false, err

	case *ast.Print:
		v, err := it.evalExpr(n.Expression, env)
		if err != nil {
			return nil, false, err
		}
		fmt.Fprintln(it.stdout, Display(v))
		return nil, false, nil

	case *ast.Var:
		var v Value
		if n.Initializer != nil {
			var err error
			v, err = it.evalExpr(n.Initializer, env)
			if err != nil {
				return nil, false, err
			}
		}
		env.Define(n.Name.Lexeme, v)
		return nil, false, nil

	case *ast.Block:
		return it.execBlockBody(n.Statements, NewEnvironment(env))

	case *ast.If:
		cond, err := it.evalExpr(n.Condition, env)
		if err != nil {
			return nil, false, err
		}
		switch {
		case IsTruthy(cond):
			return it.execStmt(n.Then, env)
		case n.Else != nil:
			return it.execStmt(n.Else, env)
		default:
			return nil, false, nil
		}

	case *ast.While:
		for {
			cond, err := it.evalExpr(n.Condition, env)
			if err != nil {
				return nil, false, err
			}
			if !IsTruthy(cond) {
				return nil, false, nil
			}
			retVal, isReturn, err := it.execStmt(n.Body, env)
			if err != nil || isReturn {
				return retVal, isReturn, err
			}
		}

	case *ast.Return:
		var v Value
		if n.Value != nil {
			var err error
			v, err = it.evalExpr(n.Value, env)
			if err != nil {
				return nil, false, err
			}
		}
		return v, true, nil

	case *ast.Function:
		fn := NewUserFunction(&n.Data, env, false)
		env.Define(n.Data.Name.Lexeme, fn)
		return nil, false, nil

	case *ast.Class:
		return nil, false, it.execClass(n, env)

	default:
		panic(fmt.Sprintf("interp: unhandled statement %T", s))
	}
}

func (it *Interpreter) execClass(c *ast.Class, env *Environment) error {
	var superclass *Class
	if c.Superclass != nil {
		superVal, err := it.evalExpr(c.Superclass, env)
		if err != nil {
			return err
		}
		sc, ok := superVal.(*Class)
		if !ok {
			return newRuntimeError(c.Superclass.Name, "Superclass must be a class.")
		}
		superclass = sc
	}

	env.Define(c.Name.Lexeme, nil)

	methodEnv := env
	if c.Superclass != nil {
		methodEnv = NewEnvironment(env)
		methodEnv.Define("super", superclass)
	}

	methods := make(map[string]*Function, len(c.Methods))
	for i := range c.Methods {
		m := &c.Methods[i]
		methods[m.Name.Lexeme] = NewUserFunction(m, methodEnv, m.Name.Lexeme == "init")
	}

	class := NewClass(c.Name.Lexeme, superclass, methods)

	env.Assign(c.Name.Lexeme, class)
	return nil
}

// ---- expression evaluation ----

func (it *Interpreter) evalExpr(e ast.Expr, env *Environment) (Value, error) {
	switch n := e.(type) {
	case *ast.Literal:
		return n.Value, nil

	case *ast.Grouping:
		return it.evalExpr(n.Expression, env)

	case *ast.Unary:
		right, err := it.evalExpr(n.Right, env)
		if err != nil {
			return nil, err
		}
		switch n.Operator.Type {
		case token.Bang:
			return !IsTruthy(right), nil
		case token.Minus:
			num, ok := right.(float64)
			if !ok {
				return nil, newRuntimeError(n.Operator, "Operand must be a number.")
			}
			return -num, nil
		}
		panic("interp: unreachable unary operator")

	case *ast.Binary:
		return it.evalBinary(n, env)

	case *ast.Logical:
		left, err := it.evalExpr(n.Left, env)
		if err != nil {
			return nil, err
		}
		if n.Operator.Type == token.Or {
			if IsTruthy(left) {
				return left, nil
			}
		} else {
			if !IsTruthy(left) {
				return left, nil
			}
		}
		return it.evalExpr(n.Right, env)

	case *ast.Variable:
		return it.lookupVariable(n.ID, n.Name, env)

	case *ast.Assign:
		val, err := it.evalExpr(n.Value, env)
		if err != nil {
			return nil, err
		}
		if distance, ok := it.locals[n.ID]; ok {
			env.AssignAt(distance, n.Name.Lexeme, val)
		} else if !it.globals.Assign(n.Name.Lexeme, val) {
			return nil, newRuntimeError(n.Name, "Undefined variable '%s'.", n.Name.Lexeme)
		}
		return val, nil

	case *ast.Call:
		return it.evalCall(n, env)

	case *ast.Get:
		obj, err := it.evalExpr(n.Object, env)
		if err != nil {
			return nil, err
		}
		instance, ok := obj.(*Instance)
		if !ok {
			return nil, newRuntimeError(n.Name, "Only instances have properties.")
		}
		v, ok := instance.Get(n.Name.Lexeme)
		if !ok {
			return nil, newRuntimeError(n.Name, "Undefined property '%s'.", n.Name.Lexeme)
		}
		return v, nil

	case *ast.Set:
		obj, err := it.evalExpr(n.Object, env)
		if err != nil {
			return nil, err
		}
		instance, ok := obj.(*Instance)
		if !ok {
			return nil, newRuntimeError(n.Name, "Only instances have fields.")
		}
		val, err := it.evalExpr(n.Value, env)
		if err != nil {
			return nil, err
		}
		instance.Set(n.Name.Lexeme, val)
		return val, nil

	case *ast.This:
		return it.lookupVariable(n.ID, n.Keyword, env)

	case *ast.Super:
		return it.evalSuper(n, env)

	default:
		panic(fmt.Sprintf("interp: unhandled expression %T", e))
	}
}

func (it *Interpreter) lookupVariable(id int, name token.Token, env *Environment) (Value, error) {
	if distance, ok := it.locals[id]; ok {
		return env.GetAt(distance, name.Lexeme), nil
	}
	v, ok := it.globals.Get(name.Lexeme)
	if !ok {
		return nil, newRuntimeError(name, "Undefined variable '%s'.", name.Lexeme)
	}
	return v, nil
}

func (it *Interpreter) evalSuper(n *ast.Super, env *Environment) (Value, error) {
	distance, ok := it.locals[n.ID]
	if !ok {
		return nil, newRuntimeError(n.Keyword, "Undefined variable 'super'.")
	}
	superclass := env.GetAt(distance, "super").(*Class)
	instance := env.GetAt(distance-1, "this").(*Instance)

	method, ok := superclass.FindMethod(n.Method.Lexeme)
	if !ok {
		return nil, newRuntimeError(n.Method, "Undefined property '%s'.", n.Method.Lexeme)
	}
	return method.bind(instance), nil
}

func (it *Interpreter) evalCall(n *ast.Call, env *Environment) (Value, error) {
	callee, err := it.evalExpr(n.Callee, env)
	if err != nil {
		return nil, err
	}

	args := make([]Value, 0, len(n.Args))
	for _, a := range n.Args {
		v, err := it.evalExpr(a, env)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	arity, callable := callArity(callee)
	if !callable {
		return nil, newRuntimeError(n.Paren, "Can only call functions and classes.")
	}
	if len(args) != arity {
		return nil, newRuntimeError(n.Paren, "Expected %d arguments but got %d.", arity, len(args))
	}

	return it.invoke(callee, args, n.Paren)
}

func (it *Interpreter) evalBinary(n *ast.Binary, env *Environment) (Value, error) {
	left, err := it.evalExpr(n.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := it.evalExpr(n.Right, env)
	if err != nil {
		return nil, err
	}

	switch n.Operator.Type {
	case token.Plus:
		if ls, ok := left.(string); ok {
			if rs, ok := right.(string); ok {
				return ls + rs, nil
			}
		}
		if lf, ok := left.(float64); ok {
			if rf, ok := right.(float64); ok {
				return lf + rf, nil
			}
		}
		return nil, newRuntimeError(n.Operator, "Operands must be two numbers or two strings.")

	case token.Minus:
		lf, rf, err := requireNumbers(left, right, n.Operator)
		if err != nil {
			return nil, err
		}
		return lf - rf, nil

	case token.Star:
		lf, rf, err := requireNumbers(left, right, n.Operator)
		if err != nil {
			return nil, err
		}
		return lf * rf, nil

	case token.Slash:
		lf, rf, err := requireNumbers(left, right, n.Operator)
		if err != nil {
			return nil, err
		}
		return lf / rf, nil

	case token.Greater:
		lf, rf, err := requireNumbers(left, right, n.Operator)
		if err != nil {
			return nil, err
		}
		return lf > rf, nil

	case token.GreaterEqual:
		lf, rf, err := requireNumbers(left, right, n.Operator)
		if err != nil {
			return nil, err
		}
		return lf >= rf, nil

	case token.Less:
		lf, rf, err := requireNumbers(left, right, n.Operator)
		if err != nil {
			return nil, err
		}
		return lf < rf, nil

	case token.LessEqual:
		lf, rf, err := requireNumbers(left, right, n.Operator)
		if err != nil {
			return nil, err
		}
		return lf <= rf, nil

	case token.EqualEqual:
		return IsEqual(left, right), nil

	case token.BangEqual:
		return !IsEqual(left, right), nil
	}

	panic("interp: unreachable binary operator")
}

func requireNumbers(left, right Value, op token.Token) (float64, float64, error) {
	lf, lok := left.(float64)
	rf, rok := right.(float64)
	if !lok || !rok {
		return 0, 0, newRuntimeError(op, "Operands must be numbers.")
	}
	return lf, rf, nil
}
