package svg

import (
	"fmt"
	"math"

	"github.com/arloliu/sabdoc/graphics"
)

// style is the resolved :filled/:thickness/:gray-level triple an operation's
// options list carries (spec §4.6).
type style struct {
	filled    bool
	thickness float64
	color     string
}

func resolveStyle(opts graphics.Options) style {
	s := style{filled: true, thickness: 1, color: "black"}

	if v, ok := opts.Get(":filled"); ok {
		if b, ok := v.(bool); ok {
			s.filled = b
		}
	}
	if v, ok := opts.Get(":thickness"); ok {
		s.thickness = toFloat(v)
	}
	if v, ok := opts.Get(":gray-level"); ok {
		g := toFloat(v)
		level := int(math.Round(255 * (1 - g)))
		s.color = fmt.Sprintf("rgb(%d,%d,%d)", level, level, level)
	}

	return s
}

// fillAttrs renders the fill/stroke attribute pair for a fillable shape:
// when filled, stroke is omitted (spec §4.6).
func (s style) fillAttrs() string {
	if s.filled {
		return fmt.Sprintf(`fill="%s" stroke="none"`, s.color)
	}

	return fmt.Sprintf(`fill="none" stroke="%s" stroke-width="%g"`, s.color, s.thickness)
}

// strokeAttrs renders the stroke attributes for a line-like primitive that
// has no fill concept.
func (s style) strokeAttrs() string {
	return fmt.Sprintf(`stroke="%s" stroke-width="%g"`, s.color, s.thickness)
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case int64:
		return float64(n)
	case float64:
		return n
	default:
		return 0
	}
}
