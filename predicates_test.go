package triangulator

import (
	"testing"

	"go.viam.com/test"
)

func TestCircumcircle(t *testing.T) {
	c, ok := Circumcircle(Point{0, 0}, Point{1, 0}, Point{0, 1})
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, c.Center.X, test.ShouldAlmostEqual, 0.5)
	test.That(t, c.Center.Y, test.ShouldAlmostEqual, 0.5)
	test.That(t, c.RadiusSq, test.ShouldAlmostEqual, 0.5)

	// Vertex order does not change the circle.
	c2, ok := Circumcircle(Point{0, 1}, Point{0, 0}, Point{1, 0})
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, c2.Center.X, test.ShouldAlmostEqual, c.Center.X)
	test.That(t, c2.Center.Y, test.ShouldAlmostEqual, c.Center.Y)
	test.That(t, c2.RadiusSq, test.ShouldAlmostEqual, c.RadiusSq)

	t.Run("translated", func(t *testing.T) {
		c, ok := Circumcircle(Point{100, 200}, Point{104, 200}, Point{100, 203})
		test.That(t, ok, test.ShouldBeTrue)
		test.That(t, c.Center.X, test.ShouldAlmostEqual, 102)
		test.That(t, c.Center.Y, test.ShouldAlmostEqual, 201.5)
		test.That(t, c.RadiusSq, test.ShouldAlmostEqual, 6.25)
	})

	t.Run("collinear", func(t *testing.T) {
		_, ok := Circumcircle(Point{0, 0}, Point{1, 1}, Point{2, 2})
		test.That(t, ok, test.ShouldBeFalse)
	})

	t.Run("coincident", func(t *testing.T) {
		_, ok := Circumcircle(Point{3, 4}, Point{3, 4}, Point{5, 1})
		test.That(t, ok, test.ShouldBeFalse)
	})
}

func TestInCircumcircle(t *testing.T) {
	c, ok := Circumcircle(Point{0, 0}, Point{1, 0}, Point{0, 1})
	test.That(t, ok, test.ShouldBeTrue)

	test.That(t, InCircumcircle(Point{0.5, 0.5}, c), test.ShouldBeTrue)
	test.That(t, InCircumcircle(Point{0.9, 0.9}, c), test.ShouldBeTrue)
	test.That(t, InCircumcircle(Point{2, 2}, c), test.ShouldBeFalse)

	// Cocircular points are outside.
	test.That(t, InCircumcircle(Point{1, 1}, c), test.ShouldBeFalse)
	test.That(t, InCircumcircle(Point{0, 0}, c), test.ShouldBeFalse)
}

func TestAreCollinear(t *testing.T) {
	for _, tc := range []struct {
		name     string
		points   []Point
		expected bool
	}{
		{"horizontal", []Point{{0, 0}, {1, 0}, {2, 0}}, true},
		{"vertical", []Point{{5, 0}, {5, 1}, {5, 2}}, true},
		{"diagonal", []Point{{0, 0}, {1, 1}, {-3, -3}, {10, 10}}, true},
		{"triangle", []Point{{0, 0}, {1, 0}, {0.5, 1}}, false},
		{"last point off the line", []Point{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {4, 1}}, false},
		{"too few points", []Point{{0, 0}, {1, 0}}, true},
		// Only the first two points define the reference line, so a very
		// short first segment hides a point that is clearly off the line.
		{"short reference segment", []Point{{0, 0}, {1e-11, 0}, {0, 1}}, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			test.That(t, AreCollinear(tc.points), test.ShouldEqual, tc.expected)
		})
	}
}
