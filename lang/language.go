// Package lang implements the operator vocabulary consumed by every genome
// variant: an immutable set of function and constant specs over a type
// system supplied by the caller (see Type).
package lang

import (
	"math/rand"

	"github.com/cbarrick/gogp/gperr"
	"github.com/cbarrick/gogp/value"
)

// Type is any comparable value drawn from a caller-supplied type hierarchy.
// Subtyping is resolved entirely through the Language's Subtype predicate;
// gogp never inspects a Type's internal shape.
type Type interface{}

// SubtypeFunc reports whether a is a subtype of b (or equal to b). Concrete
// types are leaves of this relation; abstract tags may have sub-variants.
type SubtypeFunc func(a, b Type) bool

// Func is a function entry in the language: a named operator with a
// declared return type and argument types. Arity is len(Args).
type Func struct {
	Name string
	Ret  Type
	Args []Type
}

// Const is a constant entry in the language: a fixed value of a declared
// type, always available to variation as a leaf node.
type Const struct {
	Value value.Value
	Type  Type
}

// Entry is one vocabulary entry: exactly one of Func or Const is set.
type Entry struct {
	Func  *Func
	Const *Const
}

// IsFunc reports whether the entry is a function spec.
func (e Entry) IsFunc() bool { return e.Func != nil }

// RetType returns the entry's return type regardless of its kind.
func (e Entry) RetType() Type {
	if e.Func != nil {
		return e.Func.Ret
	}
	return e.Const.Type
}

// Arity returns the number of arguments, zero for constants.
func (e Entry) Arity() int {
	if e.Func == nil {
		return 0
	}
	return len(e.Func.Args)
}

// Language is an immutable operator vocabulary plus the subtyping relation
// it is interpreted under.
type Language struct {
	entries []Entry
	subtype SubtypeFunc
}

// New validates entries and constructs a Language. An entry is malformed if
// it sets neither or both of Func/Const, a Func has a nil Ret or any nil Arg
// type, or a Const has a nil Type. Returns gperr.ErrInvalidLanguage wrapped
// with detail on the first violation found.
func New(subtype SubtypeFunc, entries ...Entry) (*Language, error) {
	if len(entries) == 0 {
		return nil, gperr.Wrap(gperr.ErrInvalidLanguage, "empty language")
	}
	if subtype == nil {
		return nil, gperr.Wrap(gperr.ErrInvalidLanguage, "nil subtype predicate")
	}
	for i, e := range entries {
		if e.IsFunc() == (e.Const != nil) {
			return nil, gperr.Wrapf(gperr.ErrInvalidLanguage, "entry %d: must be exactly one of func or const", i)
		}
		if e.Func != nil {
			if e.Func.Ret == nil {
				return nil, gperr.Wrapf(gperr.ErrInvalidLanguage, "entry %d: func %q has nil return type", i, e.Func.Name)
			}
			for j, a := range e.Func.Args {
				if a == nil {
					return nil, gperr.Wrapf(gperr.ErrInvalidLanguage, "entry %d: func %q arg %d has nil type", i, e.Func.Name, j)
				}
			}
		} else {
			if e.Const.Type == nil {
				return nil, gperr.Wrapf(gperr.ErrInvalidLanguage, "entry %d: const has nil type", i)
			}
		}
	}
	l := &Language{
		entries: append([]Entry(nil), entries...),
		subtype: subtype,
	}
	return l, nil
}

// Entries returns the language's entries. The returned slice must not be
// mutated by the caller.
func (l *Language) Entries() []Entry { return l.entries }

// Subtype reports whether a is a subtype of (or equal to) b.
func (l *Language) Subtype(a, b Type) bool { return l.subtype(a, b) }

// Random returns a uniformly random entry from the language.
func (l *Language) Random() Entry {
	return l.entries[rand.Intn(len(l.entries))]
}

// RandomReturning returns a uniformly random entry whose return type is a
// subtype of want, and true. If no such entry exists, ok is false.
func (l *Language) RandomReturning(want Type) (entry Entry, ok bool) {
	var candidates []Entry
	for _, e := range l.entries {
		if l.subtype(e.RetType(), want) {
			candidates = append(candidates, e)
		}
	}
	if len(candidates) == 0 {
		return Entry{}, false
	}
	return candidates[rand.Intn(len(candidates))], true
}
