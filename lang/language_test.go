package lang_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbarrick/gogp/gperr"
	"github.com/cbarrick/gogp/lang"
	"github.com/cbarrick/gogp/value"
)

func eq(a, b lang.Type) bool { return a == b }

func TestNewRejectsEmpty(t *testing.T) {
	_, err := lang.New(eq)
	require.Error(t, err)
	assert.ErrorIs(t, err, gperr.ErrInvalidLanguage)
}

func TestNewRejectsMalformedEntry(t *testing.T) {
	_, err := lang.New(eq, lang.Entry{})
	require.Error(t, err)
	assert.ErrorIs(t, err, gperr.ErrInvalidLanguage)
}

func TestNewRejectsNilArgType(t *testing.T) {
	_, err := lang.New(eq, lang.Entry{Func: &lang.Func{
		Name: "add",
		Ret:  "float",
		Args: []lang.Type{"float", nil},
	}})
	require.Error(t, err)
}

func TestRandomReturning(t *testing.T) {
	l, err := lang.New(eq,
		lang.Entry{Const: &lang.Const{Value: value.OfFloat(0), Type: "float"}},
		lang.Entry{Func: &lang.Func{Name: "add", Ret: "float", Args: []lang.Type{"float", "float"}}},
		lang.Entry{Func: &lang.Func{Name: "and", Ret: "bool", Args: []lang.Type{"bool", "bool"}}},
	)
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		e, ok := l.RandomReturning("float")
		require.True(t, ok)
		assert.Equal(t, lang.Type("float"), e.RetType())
	}

	_, ok := l.RandomReturning("nonexistent")
	assert.False(t, ok)
}

func TestArity(t *testing.T) {
	f := lang.Entry{Func: &lang.Func{Name: "add", Ret: "float", Args: []lang.Type{"float", "float"}}}
	c := lang.Entry{Const: &lang.Const{Value: value.OfFloat(1), Type: "float"}}
	assert.Equal(t, 2, f.Arity())
	assert.Equal(t, 0, c.Arity())
}
