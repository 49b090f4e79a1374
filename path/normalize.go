package path

import "github.com/gogpu/plotgpu/geom"

// Normalize rewrites every cubic Bezier3 into two quadratic Bezier2 codes
// using the fixed Truong et al. approximation. All other codes are kept
// unchanged and in order.
//
// The approximation is not adaptive: it does not subdivide to meet an
// error bound, so very large curves show visible deviation.
func Normalize[S Space](p Path[S]) Path[S] {
	codes := make([]Code, 0, len(p.codes))
	var p0 geom.Point

	for _, c := range p.codes {
		if c3, ok := c.(Bezier3); ok {
			q0, mid, q1 := cubicToQuads(p0, c3.Ctrl1, c3.Ctrl2, c3.End)
			codes = append(codes,
				Bezier2{Ctrl: q0, End: mid},
				Bezier2{Ctrl: q1, End: c3.End},
			)
		} else {
			codes = append(codes, c)
		}
		p0 = c.Tail()
	}

	return Path[S]{codes: codes}
}

// IsNormalized reports whether the path contains no Bezier3 codes.
func IsNormalized[S Space](p Path[S]) bool {
	for _, c := range p.codes {
		if _, ok := c.(Bezier3); ok {
			return false
		}
	}
	return true
}

func cubicToQuads(p0, p1, p2, p3 geom.Point) (q0, mid, q1 geom.Point) {
	q0 = p0.Add(p1.Sub(p0).Mul(0.75))
	q1 = p3.Add(p2.Sub(p3).Mul(0.75))
	mid = q0.Mid(q1)
	return q0, mid, q1
}
