package collision

import (
	"github.com/arl/math32"
	"github.com/permafrost-go/tilegrid/vmath"
)

// perp2D returns the 2D "perp dot product" (z-component of the 3D cross
// product) of v and w, the determinant test the teacher's
// IntersectSegSeg2D builds on.
func perp2D(v, w vmath.Vec2) float32 {
	return v[0]*w[1] - v[1]*w[0]
}

// LineLine2D intersects two 2D segments (ap,aq) and (bp,bq), following the
// teacher's IntersectSegSeg2D: u = aq-ap, v = bq-bp, w = ap-bp,
// d = perp(u,v); parallel (|d| < eps) is reported as no intersection. s
// and t are the parametric positions along each segment; the caller checks
// they fall in [0,1] for a segment (as opposed to infinite-line)
// intersection.
func LineLine2D(ap, aq, bp, bq vmath.Vec2) (s, t float32, ok bool) {
	u := aq.Sub(ap)
	v := bq.Sub(bp)
	w := ap.Sub(bp)

	d := perp2D(u, v)
	if math32.Abs(d) < 1e-6 {
		return 0, 0, false
	}
	s = perp2D(v, w) / d
	t = perp2D(u, w) / d
	return s, t, true
}

// SegSeg2D reports whether the two segments actually intersect (both
// parametric positions within the segment's extent).
func SegSeg2D(ap, aq, bp, bq vmath.Vec2) (point vmath.Vec2, ok bool) {
	s, t, ok := LineLine2D(ap, aq, bp, bq)
	if !ok {
		return vmath.Vec2{}, false
	}
	if s < 0 || s > 1 || t < 0 || t > 1 {
		return vmath.Vec2{}, false
	}
	return ap.Add(aq.Sub(ap).Mul(s)), true
}

// RayRay2D intersects two 2D rays (origin + t*dir, t >= 0 for both).
func RayRay2D(aOrigin, aDir, bOrigin, bDir vmath.Vec2) (t float32, ok bool) {
	d := perp2D(aDir, bDir)
	if math32.Abs(d) < 1e-6 {
		return 0, false
	}
	w := bOrigin.Sub(aOrigin)
	s := perp2D(w, bDir) / d
	t2 := perp2D(w, aDir) / d
	if s < 0 || t2 < 0 {
		return 0, false
	}
	return s, true
}

// Rect2D is an axis-aligned rectangle in the xz-plane.
type Rect2D struct {
	Min, Max vmath.Vec2
}

// LineBox2D reports whether the segment (p0, p1) intersects the
// axis-aligned rectangle box. Implemented as a 2D specialization of the
// slab method.
func LineBox2D(p0, p1 vmath.Vec2, box Rect2D) bool {
	dir := p1.Sub(p0)
	tmin, tmax := float32(0), float32(1)
	for i := 0; i < 2; i++ {
		if math32.Abs(dir[i]) < 1e-8 {
			if p0[i] < box.Min[i] || p0[i] > box.Max[i] {
				return false
			}
			continue
		}
		inv := 1 / dir[i]
		t1 := (box.Min[i] - p0[i]) * inv
		t2 := (box.Max[i] - p0[i]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return false
		}
	}
	return true
}

// LineBox2DPoints intersects the infinite line through (p0, p1) with box
// and returns its entry and exit points (clamped to the line, not the
// segment), the count of which will be 0, 1 (the line starts inside box)
// or 2.
func LineBox2DPoints(p0, p1 vmath.Vec2, box Rect2D) []vmath.Vec2 {
	dir := p1.Sub(p0)
	tmin, tmax := float32(-math32.MaxFloat32), float32(math32.MaxFloat32)
	for i := 0; i < 2; i++ {
		if math32.Abs(dir[i]) < 1e-8 {
			if p0[i] < box.Min[i] || p0[i] > box.Max[i] {
				return nil
			}
			continue
		}
		inv := 1 / dir[i]
		t1 := (box.Min[i] - p0[i]) * inv
		t2 := (box.Max[i] - p0[i]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return nil
		}
	}
	if tmin == -math32.MaxFloat32 && tmax == math32.MaxFloat32 {
		return nil
	}
	if PointInRect2D(p0, box) {
		return []vmath.Vec2{p0.Add(dir.Mul(tmax))}
	}
	return []vmath.Vec2{p0.Add(dir.Mul(tmin)), p0.Add(dir.Mul(tmax))}
}

// RectRect2D reports whether two axis-aligned rectangles overlap.
func RectRect2D(a, b Rect2D) bool {
	if a.Max[0] < b.Min[0] || a.Min[0] > b.Max[0] {
		return false
	}
	if a.Max[1] < b.Min[1] || a.Min[1] > b.Max[1] {
		return false
	}
	return true
}

// CircleRect2D reports whether a circle (center, radius) intersects an
// axis-aligned rectangle: the classic "clamp the centre into the box, test
// distance" closest-point test.
func CircleRect2D(center vmath.Vec2, radius float32, box Rect2D) bool {
	closest := vmath.Vec2{
		vmath.Clamp(center[0], box.Min[0], box.Max[0]),
		vmath.Clamp(center[1], box.Min[1], box.Max[1]),
	}
	d := center.Sub(closest)
	return d.Dot(d) <= radius*radius
}

// PointInRect2D reports whether p lies inside the rectangle.
func PointInRect2D(p vmath.Vec2, box Rect2D) bool {
	return p[0] >= box.Min[0] && p[0] <= box.Max[0] && p[1] >= box.Min[1] && p[1] <= box.Max[1]
}

// PointInTriangle2D reports whether point lies inside triangle (a, b, c) via
// the standard barycentric-coordinate test.
func PointInTriangle2D(point, a, b, c vmath.Vec2) bool {
	v0 := c.Sub(a)
	v1 := b.Sub(a)
	v2 := point.Sub(a)

	dot00 := v0.Dot(v0)
	dot01 := v0.Dot(v1)
	dot02 := v0.Dot(v2)
	dot11 := v1.Dot(v1)
	dot12 := v1.Dot(v2)

	invDenom := 1 / (dot00*dot11 - dot01*dot01)
	u := (dot11*dot02 - dot01*dot12) * invDenom
	v := (dot00*dot12 - dot01*dot02) * invDenom

	return u >= 0 && v >= 0 && u+v < 1
}

// PointInRotatedRect2D is the standard point-in-rotated-rectangle test via
// AB/AD dot products: a,b,c,d are the rectangle's four corners in order
// (so AB and AD are adjacent edges). p is inside iff its projection onto
// each edge direction falls between 0 and the edge's squared length.
func PointInRotatedRect2D(p, a, b, d vmath.Vec2) bool {
	ab := b.Sub(a)
	ad := d.Sub(a)
	ap := p.Sub(a)

	abDotAp := ab.Dot(ap)
	abDotAb := ab.Dot(ab)
	adDotAp := ad.Dot(ap)
	adDotAd := ad.Dot(ad)

	return abDotAp >= 0 && abDotAp <= abDotAb && adDotAp >= 0 && adDotAp <= adDotAd
}
