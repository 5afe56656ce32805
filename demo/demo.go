// Package demo wires a tiny symbolic-regression problem against the genome
// packages: just enough of a language and a fitness function to exercise the
// compiler and the population/coevolution drivers end to end, in tests and
// from cmd/gogp. It is deliberately not a benchmark suite.
package demo

import (
	"math"

	"github.com/cbarrick/gogp/lang"
	"github.com/cbarrick/gogp/value"
)

// FloatType is the sole type of the demo language: every input, constant,
// and function operates on floats.
const FloatType = "float"

func floatSubtype(a, b lang.Type) bool { return a == b }

// Language returns the demo arithmetic vocabulary: +, -, *, safe-div,
// safe-mod over a single input "x", plus the constant 1.0.
func Language() (*lang.Language, error) {
	return lang.New(floatSubtype,
		lang.Entry{Func: &lang.Func{Name: "add", Ret: FloatType, Args: []lang.Type{FloatType, FloatType}}},
		lang.Entry{Func: &lang.Func{Name: "sub", Ret: FloatType, Args: []lang.Type{FloatType, FloatType}}},
		lang.Entry{Func: &lang.Func{Name: "mul", Ret: FloatType, Args: []lang.Type{FloatType, FloatType}}},
		lang.Entry{Func: &lang.Func{Name: "div", Ret: FloatType, Args: []lang.Type{FloatType, FloatType}}},
		lang.Entry{Func: &lang.Func{Name: "mod", Ret: FloatType, Args: []lang.Type{FloatType, FloatType}}},
		lang.Entry{Const: &lang.Const{Value: value.OfFloat(1), Type: FloatType}},
	)
}

// Resolver binds the demo vocabulary's names to the value package's
// pathological-value-safe numeric ops.
func Resolver() lang.Resolver {
	return lang.Resolver{
		"add": func(args []value.Value) value.Value { return value.OfFloat(args[0].Float + args[1].Float) },
		"sub": func(args []value.Value) value.Value { return value.OfFloat(args[0].Float - args[1].Float) },
		"mul": func(args []value.Value) value.Value { return value.OfFloat(args[0].Float * args[1].Float) },
		"div": func(args []value.Value) value.Value { return value.OfFloat(value.DivFloat(args[0].Float, args[1].Float)) },
		"mod": func(args []value.Value) value.Value { return value.OfFloat(value.ModFloat(args[0].Float, args[1].Float)) },
	}
}

// InputNames and InputTypes declare the demo language's single input "x".
var (
	InputNames = []string{"x"}
	InputTypes = []lang.Type{FloatType}
	OutTypes   = []lang.Type{FloatType}
)

// Target is the polynomial the demo task asks evolution to rediscover:
// f(x) = x^2 + x + 1.
func Target(x float64) float64 {
	return x*x + x + 1
}

// Samples returns n evenly spaced points in [-1, 1] paired with Target(x).
func Samples(n int) [][2]float64 {
	pts := make([][2]float64, n)
	for i := 0; i < n; i++ {
		x := -1 + 2*float64(i)/float64(n-1)
		pts[i] = [2]float64{x, Target(x)}
	}
	return pts
}

// Fitness scores a compiled callable by how closely it matches Target over
// Samples(n): 1/(1+MSE), so a perfect fit scores 1 and fitness increases
// monotonically as error shrinks.
func Fitness(callable func(args ...value.Value) ([]value.Value, error), n int) (float64, error) {
	samples := Samples(n)
	var sumSq float64
	for _, s := range samples {
		out, err := callable(value.OfFloat(s[0]))
		if err != nil {
			return 0, err
		}
		got := out[0].Float
		if math.IsNaN(got) || math.IsInf(got, 0) {
			return 0, nil
		}
		d := got - s[1]
		sumSq += d * d
	}
	mse := sumSq / float64(len(samples))
	return 1 / (1 + mse), nil
}
