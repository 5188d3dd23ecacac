package features

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"
)

// valueKind tags the representation held by a Value
type valueKind uint8

const (
	intKind   valueKind = iota // counts
	floatKind                  // computed statistics
	textKind                   // written verbatim
)

type (
	// Value is a single element of a feature vector
	Value struct {
		kind valueKind
		i    int64
		f    float64
		s    string
	}

	// Vector is the ordered concatenation of feature blocks for one trace
	Vector []Value
)

// Unknown marks a feature that could not be computed for a trace,
// such as a statistic over an empty subsequence
var Unknown = Text("X")

// Int creates a count valued feature
func Int(i int) Value {
	return Value{kind: intKind, i: int64(i)}
}

// Float creates a real valued feature
func Float(f float64) Value {
	return Value{kind: floatKind, f: f}
}

// Text creates a verbatim feature
func Text(s string) Value {
	return Value{kind: textKind, s: s}
}

// isUnknown reports whether the value is the Unknown sentinel
func (v Value) isUnknown() bool {
	return v == Unknown
}

// number returns the numeric value. Text values report NaN.
func (v Value) number() float64 {
	switch v.kind {
	case intKind:
		return float64(v.i)
	case floatKind:
		return v.f
	}
	return math.NaN()
}

// String renders the value the way it is written to feature files
func (v Value) String() string {
	switch v.kind {
	case intKind:
		return strconv.FormatInt(v.i, 10)
	case floatKind:
		return formatFloat(v.f)
	}
	return v.s
}

// formatFloat renders the shortest text that reads back as f. Magnitudes in
// [1e-4, 1e16) use fixed notation and always carry a decimal point, anything
// else uses exponent notation.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	abs := math.Abs(f)
	if abs == 0 || (abs >= 1e-4 && abs < 1e16) {
		s := strconv.FormatFloat(f, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	}
	return strconv.FormatFloat(f, 'e', -1, 64)
}

// WriteTo serializes the vector in the feature file format. Every value is
// followed by a single space, except text values that contain a line break,
// which are written with nothing after them.
func (vec Vector) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var written int64
	for _, v := range vec {
		s := v.String()
		if v.kind != textKind || !strings.Contains(s, "\n") {
			s += " "
		}
		n, err := bw.WriteString(s)
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, bw.Flush()
}

// helpers used by the extractors to build blocks

// fill returns a block of n copies of v
func fill(n int, v Value) Vector {
	block := make(Vector, n)
	for i := range block {
		block[i] = v
	}
	return block
}

// floats converts a slice of statistics into a block
func floats(xs []float64) Vector {
	block := make(Vector, len(xs))
	for i, x := range xs {
		block[i] = Float(x)
	}
	return block
}

// ints converts a slice of counts into a block
func ints(xs []int) Vector {
	block := make(Vector, len(xs))
	for i, x := range xs {
		block[i] = Int(x)
	}
	return block
}

// orDefault returns the statistics as floats when ok, otherwise n copies of def
func orDefault(xs []float64, ok bool, n int, def Value) Vector {
	if !ok {
		return fill(n, def)
	}
	return floats(xs)
}

// padded returns the first n values of block, padding with def when it is shorter
func padded(block Vector, n int, def Value) Vector {
	if len(block) >= n {
		return block[:n]
	}
	return append(block, fill(n-len(block), def)...)
}
