package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// A cases.Caser is stateful, so each goroutine borrows its own.
var lowerPool = sync.Pool{
	New: func() any {
		c := cases.Lower(language.Und)
		return &c
	},
}

// Normalize maps a cell value to lowercase ASCII letters and digits only.
// nil (and NaN) become "". Both the query and every compared cell go through it.
func Normalize(v any) string {
	if v == nil {
		return ""
	}

	c := lowerPool.Get().(*cases.Caser)
	lowered := c.String(formatValue(v))
	lowerPool.Put(c)

	var b strings.Builder
	b.Grow(len(lowered))
	for i := 0; i < len(lowered); i++ {
		ch := lowered[i]
		if (ch >= 'a' && ch <= 'z') || (ch >= '0' && ch <= '9') {
			b.WriteByte(ch)
		}
	}
	return b.String()
}

// formatValue renders a cell value as text.
func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		if math.IsNaN(val) {
			return ""
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
