package reporter

import (
	"fmt"
	"math/big"
	"sort"

	"leo/internal/numeric"
	"leo/internal/zeta"
)

// Metric derives the value a reference is compared against.
type Metric interface {
	Name() string
	Eval(c *numeric.Context, ref *big.Float) *big.Float
}

var metrics = map[string]Metric{}

// RegisterMetric makes m available to LookupMetric. Last registration wins.
func RegisterMetric(m Metric) { metrics[m.Name()] = m }

// LookupMetric returns the metric registered under name.
func LookupMetric(name string) (Metric, error) {
	m, ok := metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric %q (known: %v)", name, MetricNames())
	}
	return m, nil
}

// MetricNames lists registered metrics in sorted order.
func MetricNames() []string {
	out := make([]string, 0, len(metrics))
	for n := range metrics {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func init() {
	RegisterMetric(ZetaMetric{})
	RegisterMetric(IdentityMetric{})
}

// ZetaMetric is |ζ(1/2 + i·ref)|, evaluated in float64.
type ZetaMetric struct{}

func (ZetaMetric) Name() string { return "zeta" }

func (ZetaMetric) Eval(c *numeric.Context, ref *big.Float) *big.Float {
	return c.FromFloat(zeta.AbsCriticalLine(numeric.Float64(ref)))
}

// IdentityMetric compares the state against the reference itself.
type IdentityMetric struct{}

func (IdentityMetric) Name() string { return "identity" }

func (IdentityMetric) Eval(c *numeric.Context, ref *big.Float) *big.Float { return c.Copy(ref) }
