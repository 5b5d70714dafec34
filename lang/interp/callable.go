package interp

import "github.com/lox-lang/golox/lang/token"

// callArity reports how many arguments callee expects, for the arity
// check performed uniformly by Call expressions before dispatch.
func callArity(callee Value) (int, bool) {
	switch c := callee.(type) {
	case *Function:
		return c.Arity(), true
	case *Class:
		return c.Arity(), true
	default:
		return 0, false
	}
}

// invoke dispatches a Call expression's callee: a *Function runs its body
// (native or user-defined), a *Class constructs and initializes a new
// *Instance. Any other value is not callable.
func (it *Interpreter) invoke(callee Value, args []Value, paren token.Token) (Value, error) {
	switch c := callee.(type) {
	case *Function:
		return it.callFunction(c, args)
	case *Class:
		return it.instantiate(c, args)
	default:
		return nil, newRuntimeError(paren, "Can only call functions and classes.")
	}
}

func (it *Interpreter) callFunction(fn *Function, args []Value) (Value, error) {
	if fn.Native != nil {
		return fn.Native(it, args)
	}

	env := NewEnvironment(fn.Closure)
	for i, param := range fn.Decl.Params {
		env.Define(param.Lexeme, args[i])
	}

	retVal, isReturn, err := it.execBlockBody(fn.Decl.Body, env)
	if err != nil {
		return nil, err
	}

	if fn.IsInitializer {
		return fn.Closure.GetAt(0, "this"), nil
	}
	if isReturn {
		return retVal, nil
	}
	return nil, nil
}

func (it *Interpreter) instantiate(class *Class, args []Value) (Value, error) {
	instance := NewInstance(class)
	if init, ok := class.FindMethod("init"); ok {
		if _, err := it.callFunction(init.bind(instance), args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}
