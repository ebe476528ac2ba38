package geometry

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Epsilon is the tolerance used for every approximate comparison in the engine.
const (
	Epsilon = 1e-9
)

// Vector2D is a position, a velocity or a direction in the simulated plane.
// Fields are exported so literals like Vector2D{X: 1, Y: 2} stay readable.
type Vector2D struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Zero is the null vector returned by every degenerate operation.
var Zero = Vector2D{}

// NewVector returns Vector2D{X: x, Y: y}.
func NewVector(x, y float64) Vector2D {
	return Vector2D{X: x, Y: y}
}

// NewVectorPolar builds a vector of the given length pointing at theta radians.
// Components closer to zero than Epsilon are snapped to zero.
func NewVectorPolar(radius, theta float64) Vector2D {
	x := radius * math.Cos(theta)
	y := radius * math.Sin(theta)
	if math.Abs(x) < Epsilon {
		x = 0
	}
	if math.Abs(y) < Epsilon {
		y = 0
	}
	return Vector2D{X: x, Y: y}
}

// String implements fmt.Stringer.
func (v Vector2D) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", v.X, v.Y)
}

// ---------------------------------------------------------------------
// Arithmetic (value receivers, the receiver is never modified)
// ---------------------------------------------------------------------

// Add returns v + other.
func (v Vector2D) Add(other Vector2D) Vector2D {
	return Vector2D{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vector2D) Sub(other Vector2D) Vector2D {
	return Vector2D{v.X - other.X, v.Y - other.Y}
}

// Mul returns v scaled by scalar.
func (v Vector2D) Mul(scalar float64) Vector2D {
	return Vector2D{v.X * scalar, v.Y * scalar}
}

// Dot returns the dot product of v and other.
func (v Vector2D) Dot(other Vector2D) float64 {
	return v.X*other.X + v.Y*other.Y
}

// ---------------------------------------------------------------------
// Magnitude and direction
// ---------------------------------------------------------------------

// LenSqr is the squared magnitude v·v.
func (v Vector2D) LenSqr() float64 {
	return v.Dot(v)
}

// Len is the magnitude sqrt(x²+y²).
func (v Vector2D) Len() float64 {
	return math.Sqrt(v.LenSqr())
}

// Normalize returns the unit vector with the same direction as v.
// When |v| <= Epsilon the zero vector is returned instead of dividing by (almost) zero.
func (v Vector2D) Normalize() Vector2D {
	l := v.Len()
	if l <= Epsilon {
		return Zero
	}
	return v.Mul(1 / l)
}

// IsZero reports whether both components are within Epsilon of zero.
func (v Vector2D) IsZero() bool {
	return v.Eq(Zero)
}

// Angle is the direction of v in radians, in [-Pi, Pi].
func (v Vector2D) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// ---------------------------------------------------------------------
// Geometric utilities
// ---------------------------------------------------------------------

// DistanceTo returns the Euclidean distance between two points.
func (v Vector2D) DistanceTo(other Vector2D) float64 {
	return v.Sub(other).Len()
}

// Rotate turns v by angle radians around the origin.
func (v Vector2D) Rotate(angle float64) Vector2D {
	cos, sin := math.Cos(angle), math.Sin(angle)
	return Vector2D{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// Clamp restricts both components to [minX, maxX] × [minY, maxY].
func (v Vector2D) Clamp(minX, minY, maxX, maxY float64) Vector2D {
	return Vector2D{
		X: math.Min(math.Max(v.X, minX), maxX),
		Y: math.Min(math.Max(v.Y, minY), maxY),
	}
}

// Eq reports whether both components differ by less than Epsilon.
func (v Vector2D) Eq(other Vector2D) bool {
	return math.Abs(v.X-other.X) < Epsilon && math.Abs(v.Y-other.Y) < Epsilon
}

// ---------------------------------------------------------------------
// Text form
// ---------------------------------------------------------------------

// Format returns the angle-bracket text form "< x, y >" accepted by ParseVector.
func (v Vector2D) Format() string {
	return "< " + strconv.FormatFloat(v.X, 'g', -1, 64) + ", " + strconv.FormatFloat(v.Y, 'g', -1, 64) + " >"
}

// ParseVector reads the angle-bracket text form, for instance "< 3.0, 4.0 >".
// Whitespace around the brackets and the comma is optional.
func ParseVector(s string) (Vector2D, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "<") {
		return Zero, errors.New("parse vector: missing '<' to start vector")
	}
	if !strings.HasSuffix(s, ">") {
		return Zero, errors.New("parse vector: missing '>' to end vector")
	}
	body := strings.TrimSpace(s[1 : len(s)-1])
	xs, ys, found := strings.Cut(body, ",")
	if !found {
		return Zero, errors.New("parse vector: missing comma between X and Y coordinates")
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return Zero, fmt.Errorf("parse vector: invalid X coordinate: %w", err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return Zero, fmt.Errorf("parse vector: invalid Y coordinate: %w", err)
	}
	return Vector2D{X: x, Y: y}, nil
}
