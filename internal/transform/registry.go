package transform

import (
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

type factory struct {
	arity int
	build func(args []float64) (Transform, error)
}

func singleton[T Transform](get func() T) factory {
	return factory{build: func([]float64) (Transform, error) { return get(), nil }}
}

var registry = map[string]factory{
	KindLog.String():           singleton(Log),
	KindLogExpM1.String():      singleton(LogExpM1),
	KindLogOdds.String():       singleton(LogOdds),
	KindOrdered.String():       singleton(Ordered),
	KindSumTo1.String():        singleton(SumTo1),
	KindStickBreaking.String(): singleton(StickBreaking),
	KindCircular.String():      singleton(Circular),
	KindInterval.String(): {arity: 2, build: func(args []float64) (Transform, error) {
		return NewInterval(args[0], args[1])
	}},
	KindLowerBound.String(): {arity: 1, build: func(args []float64) (Transform, error) {
		return NewLowerBound(args[0])
	}},
	KindUpperBound.String(): {arity: 1, build: func(args []float64) (Transform, error) {
		return NewUpperBound(args[0])
	}},
	KindCholeskyCovPacked.String(): {arity: 1, build: func(args []float64) (Transform, error) {
		n := args[0]
		if n != math.Trunc(n) || n > math.MaxInt32 {
			return nil, errors.Wrapf(ErrBadArguments, "cholesky-cov-packed: n must be an integer, got %v", n)
		}
		return NewCholeskyCovPacked(int(n))
	}},
}

// Names returns the registered transform names in sorted order.
func Names() []string {
	return slices.Sorted(maps.Keys(registry))
}

// Arity returns the number of numeric arguments name takes.
func Arity(name string) (int, error) {
	f, ok := registry[name]
	if !ok {
		return 0, errors.Wrapf(ErrUnknownTransform, "%q", name)
	}
	return f.arity, nil
}

// Lookup builds the transform registered under name with the given arguments.
func Lookup(name string, args ...float64) (Transform, error) {
	f, ok := registry[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownTransform, "%q", name)
	}
	if len(args) != f.arity {
		return nil, errors.Wrapf(ErrBadArguments, "%s takes %d arguments, got %d", name, f.arity, len(args))
	}
	return f.build(args)
}

// Parse builds a transform from its textual form:
//
//	spec = term { "+" term }
//	term = name [ "(" number { "," number } ")" ]
//
// For example "stickbreaking", "interval(0, 1)" or "ordered+lowerbound(-1)".
// A single term yields that transform, several yield a Chain.
func Parse(spec string) (Transform, error) {
	terms, err := splitTerms(spec)
	if err != nil {
		return nil, err
	}
	transforms := make([]Transform, 0, len(terms))
	for _, term := range terms {
		t, err := parseTerm(term)
		if err != nil {
			return nil, err
		}
		transforms = append(transforms, t)
	}
	if len(transforms) == 1 {
		return transforms[0], nil
	}
	return NewChain(transforms...)
}

// splitTerms splits spec on top-level "+" so that "1e+3" inside an argument
// list stays intact.
func splitTerms(spec string) ([]string, error) {
	var terms []string
	depth, start := 0, 0
	for i, r := range spec {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return nil, errors.Wrapf(ErrBadArguments, "unbalanced ')' at offset %d in %q", i, spec)
			}
		case '+':
			if depth == 0 {
				terms = append(terms, spec[start:i])
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, errors.Wrapf(ErrBadArguments, "unbalanced '(' in %q", spec)
	}
	terms = append(terms, spec[start:])
	for i, term := range terms {
		terms[i] = strings.TrimSpace(term)
		if terms[i] == "" {
			return nil, errors.Wrapf(ErrEmptyChain, "empty term in %q", spec)
		}
	}
	return terms, nil
}

func parseTerm(term string) (Transform, error) {
	name, rest, hasArgs := strings.Cut(term, "(")
	name = strings.ToLower(strings.TrimSpace(name))
	if !hasArgs {
		return Lookup(name)
	}
	if !strings.HasSuffix(rest, ")") {
		return nil, errors.Wrapf(ErrBadArguments, "%q: missing closing parenthesis", term)
	}
	body := strings.TrimSpace(strings.TrimSuffix(rest, ")"))
	var args []float64
	if body != "" {
		for _, field := range strings.Split(body, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, errors.Wrapf(ErrBadArguments, "%q: %v", term, err)
			}
			args = append(args, v)
		}
	}
	return Lookup(name, args...)
}
