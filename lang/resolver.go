package lang

import "github.com/cbarrick/gogp/value"

// PrimitiveFunc is an invocable primitive backing one function entry's name.
// It is never called with the wrong arity or mismatched types — the static
// type system of Language guarantees that by construction.
type PrimitiveFunc func(args []value.Value) value.Value

// Resolver is the external operator-symbol resolver of spec §6: used only
// by the compiler to turn a function entry's name into an invocable
// primitive. It is immutable for a run, same as Language.
type Resolver map[string]PrimitiveFunc

// Resolve looks up the primitive behind name.
func (r Resolver) Resolve(name string) (PrimitiveFunc, bool) {
	f, ok := r[name]
	return f, ok
}
