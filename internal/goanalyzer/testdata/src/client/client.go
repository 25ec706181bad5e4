package client

import (
	geo "shapes"
)

func perimeter(s geo.Shape) float64 {
	switch s := s.(type) { // want `Unhandled cases: shapes.Square, shapes.Triangle, \*shapes.Triangle\.`
	case geo.Circle:
		return 6 * s.R
	case *geo.Circle:
		return 6 * s.R
	}
	return 0
}

func all(s geo.Shape) bool {
	switch s.(type) {
	case geo.Circle, *geo.Circle, *geo.Square, geo.Triangle, *geo.Triangle:
		return true
	}
	return false
}
