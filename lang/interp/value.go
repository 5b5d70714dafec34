package interp

import (
	"fmt"
	"strconv"

	"github.com/dolthub/swiss"

	"github.com/lox-lang/golox/lang/ast"
)

// Value is any runtime value the interpreter can produce or operate on.
// Nil, booleans, numbers, and strings are plain Go values (nil, bool,
// float64, string); Function, Class, and Instance are shared references
// (pointers), since closures, method tables, and instances all need
// reference semantics for closures and shared mutation to work.
type Value any

// Function is a callable value: either a user-defined function/method or a
// native builtin. Exactly one of the two constructors below is used to
// build a given instance; callFunction dispatches on which.
type Function struct {
	Name          string
	Decl          *ast.FunctionData
	Closure       *Environment
	IsInitializer bool

	// Native, when non-nil, makes this a builtin such as clock(). Decl is
	// nil for native functions.
	Native     func(interp *Interpreter, args []Value) (Value, error)
	NativeName string
	arity      int
}

// NewUserFunction wraps a declaration with the environment active at
// declaration time; isInitializer marks methods named "init", whose call
// always yields the bound instance regardless of their own `return`.
func NewUserFunction(decl *ast.FunctionData, closure *Environment, isInitializer bool) *Function {
	return &Function{
		Name:          decl.Name.Lexeme,
		Decl:          decl,
		Closure:       closure,
		IsInitializer: isInitializer,
	}
}

// NewNative wraps a Go function as a Lox builtin.
func NewNative(name string, arity int, fn func(interp *Interpreter, args []Value) (Value, error)) *Function {
	return &Function{NativeName: name, Native: fn, arity: arity}
}

func (f *Function) Arity() int {
	if f.Native != nil {
		return f.arity
	}
	return len(f.Decl.Params)
}

func (f *Function) String() string {
	if f.Native != nil {
		return fmt.Sprintf("<native fn %s>", f.NativeName)
	}
	return fmt.Sprintf("<fn %s>", f.Name)
}

// bind returns a new Function whose closure is extended with a frame
// defining "this" as instance. This is the entirety of method binding:
// calling the result later behaves exactly like calling the unbound
// function, just with `this` already resolved.
func (f *Function) bind(instance *Instance) *Function {
	env := NewEnvironment(f.Closure)
	env.Define("this", instance)
	return &Function{
		Name:          f.Name,
		Decl:          f.Decl,
		Closure:       env,
		IsInitializer: f.IsInitializer,
	}
}

// Class is a shared reference to a class's method table and optional
// superclass. Method lookup checks the class's own methods first, then
// walks the superclass chain.
type Class struct {
	Name       string
	Superclass *Class
	Methods    *swiss.Map[string, *Function]
}

// NewClass builds a class from a name → method map.
func NewClass(name string, superclass *Class, methods map[string]*Function) *Class {
	m := swiss.NewMap[string, *Function](uint32(len(methods) + 1))
	for k, v := range methods {
		m.Put(k, v)
	}
	return &Class{Name: name, Superclass: superclass, Methods: m}
}

func (c *Class) String() string { return c.Name }

// FindMethod looks up name in this class's own methods, then recursively
// in its superclass chain.
func (c *Class) FindMethod(name string) (*Function, bool) {
	if fn, ok := c.Methods.Get(name); ok {
		return fn, true
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil, false
}

func (c *Class) Arity() int {
	if init, ok := c.FindMethod("init"); ok {
		return init.Arity()
	}
	return 0
}

// Instance is a shared reference to a class's runtime object: a class
// pointer plus a mutable field map. Fields shadow methods of the same
// name on Get.
type Instance struct {
	Class  *Class
	Fields *swiss.Map[string, Value]
}

// NewInstance allocates an instance of class.
func NewInstance(class *Class) *Instance {
	return &Instance{Class: class, Fields: swiss.NewMap[string, Value](4)}
}

func (i *Instance) String() string { return i.Class.Name + " instance" }

// Get implements property access: fields win over methods, and a method
// hit is returned bound to this instance.
func (i *Instance) Get(name string) (Value, bool) {
	if v, ok := i.Fields.Get(name); ok {
		return v, true
	}
	if method, ok := i.Class.FindMethod(name); ok {
		return method.bind(i), true
	}
	return nil, false
}

// Set assigns (creating if absent) a field on the instance.
func (i *Instance) Set(name string, value Value) {
	i.Fields.Put(name, value)
}

// IsTruthy implements the language's truthiness rule: only nil and false
// are falsey, everything else (including 0, "", functions) is truthy.
func IsTruthy(v Value) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

// IsEqual implements Value equality: numbers/strings/booleans compare by
// value, nil equals nil, and functions/classes/instances compare by
// shared-reference identity. Mixed-type comparisons are always false —
// deliberately, even between Instance and Function, unlike a stray case in
// some original implementations that conflated the two.
func IsEqual(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch av := a.(type) {
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case *Function:
		bv, ok := b.(*Function)
		return ok && av == bv
	case *Class:
		bv, ok := b.(*Class)
		return ok && av == bv
	case *Instance:
		bv, ok := b.(*Instance)
		return ok && av == bv
	default:
		return false
	}
}

// Display renders a Value the way `print` and `evaluate` do. Integral
// numbers print with no decimal point; this is intentionally distinct
// from the scanner's NUMBER-literal column, which always keeps one.
func Display(v Value) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case bool:
		if val {
			return "true"
		}
		return "false"
	case float64:
		return formatNumber(val)
	case string:
		return val
	case *Function:
		return val.String()
	case *Class:
		return val.String()
	case *Instance:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}

func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
