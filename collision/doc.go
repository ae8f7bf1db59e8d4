// Package collision implements the ray/volume intersection primitives that
// the tile-grid spatial core is built on: ray-AABB, ray-OBB, ray-triangle,
// ray-plane, ray-trimesh, point-in-OBB, line segment-OBB, frustum
// construction and frustum/AABB/OBB separating-axis tests, plus a handful
// of 2D (xz-plane) primitives used by footprint extraction.
//
// Every routine here is pure and side-effect-free, per spec.md §4.3: on a
// miss it returns a false/zero-value second or single bool return rather
// than an error, since "no intersection" is an expected outcome, not a
// failure.
package collision
