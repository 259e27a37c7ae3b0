// Package functions exposes the pricing kernel as named, self-describing
// functions so that thin front ends (HTTP, CLI) can discover and call them
// without knowing their Go signatures.
package functions

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/jwaldner/bsm/bsm_lib/normal"
	"github.com/jwaldner/bsm/bsm_lib/option"
)

var (
	ErrUnknownFunction = errors.New("unknown function")
	ErrMissingArgument = errors.New("missing argument")
	ErrInvalidOrder    = errors.New("derivative order must be a non-negative integer")
)

// Arg describes one positional argument of a catalog function.
type Arg struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Default     *float64 `json:"default,omitempty"`
	Integer     bool     `json:"integer,omitempty"`
}

// Function is a named kernel entry point.
type Function struct {
	Name     string `json:"name"`
	Help     string `json:"help"`
	Category string `json:"category"`
	Args     []Arg  `json:"args"`

	eval func(a []float64) float64
}

// Catalog is an immutable set of functions keyed by upper-case name.
type Catalog struct {
	byName map[string]*Function
}

func def(v float64) *float64 { return &v }

// New builds the catalog with every function tagged by category.
func New(category string) *Catalog {
	fns := []*Function{
		{
			Name: "NORMAL.CDF",
			Help: "Standard normal cumulative distribution or its derivative. Orders above 1 return NaN.",
			Args: []Arg{
				{Name: "x", Description: "is the value at which to evaluate the distribution."},
				{Name: "n", Description: "is the derivative order. Default is 0.", Default: def(0), Integer: true},
			},
			eval: func(a []float64) float64 { return normal.CDF(a[0], int(a[1])) },
		},
		{
			Name: "NORMAL.CDF.SHIFTED",
			Help: "Share-measure normal distribution P(X <= x - s) and its derivatives in x and s.",
			Args: []Arg{
				{Name: "x", Description: "is the value at which to evaluate the distribution."},
				{Name: "s", Description: "is the measure shift."},
				{Name: "nx", Description: "is the derivative order in x. Default is 0.", Default: def(0), Integer: true},
				{Name: "ns", Description: "is the derivative order in s. Default is 0.", Default: def(0), Integer: true},
			},
			eval: func(a []float64) float64 { return normal.ShiftedCDF(a[0], a[1], int(a[2]), int(a[3])) },
		},
		{
			Name: "NORMAL.CUMULANT",
			Help: "Standard normal cumulant kappa(s) = s^2/2 or its derivative.",
			Args: []Arg{
				{Name: "s", Description: "is the cumulant argument."},
				{Name: "n", Description: "is the derivative order. Default is 0.", Default: def(0), Integer: true},
			},
			eval: func(a []float64) float64 { return normal.Cumulant(a[0], int(a[1])) },
		},
		{
			Name: "BSM.MONEYNESS",
			Help: "Black-Scholes/Merton moneyness (log(k/f) + kappa(s))/s.",
			Args: []Arg{
				{Name: "f", Description: "is the forward price."},
				{Name: "s", Description: "is the vol times the square root of time in years."},
				{Name: "k", Description: "is the positive strike."},
			},
			eval: func(a []float64) float64 { return option.Moneyness(a[0], a[1], a[2]) },
		},
		{
			Name: "BSM.VALUE",
			Help: "Black-Scholes/Merton forward put (k < 0) or call (k >= 0) value.",
			Args: optionArgs(),
			eval: func(a []float64) float64 { return option.Value(a[0], a[1], a[2]) },
		},
		{
			Name: "BSM.DELTA",
			Help: "Black-Scholes/Merton forward put (k < 0) or call (k >= 0) delta.",
			Args: optionArgs(),
			eval: func(a []float64) float64 { return option.Delta(a[0], a[1], a[2]) },
		},
	}

	c := &Catalog{byName: make(map[string]*Function, len(fns))}
	for _, fn := range fns {
		fn.Category = category
		c.byName[fn.Name] = fn
	}
	return c
}

func optionArgs() []Arg {
	return []Arg{
		{Name: "f", Description: "is the forward price."},
		{Name: "s", Description: "is the vol times the square root of time in years."},
		{Name: "k", Description: "is the strike. Use negative values for puts."},
	}
}

// List returns the functions sorted by name.
func (c *Catalog) List() []*Function {
	out := make([]*Function, 0, len(c.byName))
	for _, fn := range c.byName {
		out = append(out, fn)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup finds a function by case-insensitive name.
func (c *Catalog) Lookup(name string) (*Function, error) {
	fn, ok := c.byName[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFunction, name)
	}
	return fn, nil
}

// Call evaluates the named function. A NaN result is not an error: it is the
// kernel's signal for inputs outside its domain.
func (c *Catalog) Call(name string, args map[string]float64) (float64, error) {
	fn, err := c.Lookup(name)
	if err != nil {
		return 0, err
	}
	return fn.Call(args)
}

// Call binds named arguments, filling defaults.
func (fn *Function) Call(args map[string]float64) (float64, error) {
	a, err := fn.Bind(args)
	if err != nil {
		return 0, err
	}
	return fn.eval(a), nil
}

// Bind orders named arguments positionally and validates them.
func (fn *Function) Bind(args map[string]float64) ([]float64, error) {
	for name := range args {
		if fn.arg(name) == nil {
			return nil, fmt.Errorf("%s: unexpected argument %q", fn.Name, name)
		}
	}

	a := make([]float64, len(fn.Args))
	for i, arg := range fn.Args {
		v, ok := args[arg.Name]
		switch {
		case ok:
		case arg.Default != nil:
			v = *arg.Default
		default:
			return nil, fmt.Errorf("%s: %w %q", fn.Name, ErrMissingArgument, arg.Name)
		}

		if arg.Integer && (v < 0 || v != math.Trunc(v) || v > math.MaxInt32) {
			return nil, fmt.Errorf("%s: %s=%v: %w", fn.Name, arg.Name, v, ErrInvalidOrder)
		}
		a[i] = v
	}
	return a, nil
}

func (fn *Function) arg(name string) *Arg {
	for i := range fn.Args {
		if fn.Args[i].Name == name {
			return &fn.Args[i]
		}
	}
	return nil
}
