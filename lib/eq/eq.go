/*package eq is a simple package for telling whether two arrays are equal to
one another. It's used by tests comparing decoded samples, trace indices, and
header lines.*/
package eq

import (
	"gonum.org/v1/gonum/floats"
)

// Generic returns true if two arrays are the same type and have the same values
// and false otherwise. Only []byte, []int, []string, []float64, and
// [][2]float64 are supported.
func Generic(x, y interface{}) bool {
	switch xx := x.(type) {
	case []byte:
		yy, ok := y.([]byte)
		return ok && Bytes(xx, yy)
	case []int:
		yy, ok := y.([]int)
		return ok && Ints(xx, yy)
	case []string:
		yy, ok := y.([]string)
		return ok && Strings(xx, yy)
	case []float64:
		yy, ok := y.([]float64)
		return ok && Float64s(xx, yy)
	case [][2]float64:
		yy, ok := y.([][2]float64)
		return ok && Points(xx, yy)
	}
	return false
}

// Strings returns true if two []string arrays are the same and false otherwise.
func Strings(x, y []string) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}

// Bytes returns true if two []byte arrays are the same and false otherwise.
func Bytes(x, y []byte) bool { return string(x) == string(y) }

// Ints returns true if two []int arrays are the same and false otherwise.
func Ints(x, y []int) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}

// Float64s returns true if two []float64 arrays are exactly the same and
// false otherwise.
func Float64s(x, y []float64) bool {
	return len(x) == len(y) && floats.Equal(x, y)
}

// Float64sEps returns true if the two []float64 arrays are within eps of one
// another, either absolutely or relatively, and false otherwise.
func Float64sEps(x, y []float64, eps float64) bool {
	return len(x) == len(y) && floats.EqualApprox(x, y, eps)
}

// Points returns true if two arrays of (x, y) points are the same and false
// otherwise.
func Points(x, y [][2]float64) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}
