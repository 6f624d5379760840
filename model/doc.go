// Package model provides the shared data model for the outline
// reconstruction pipeline.
//
// This package defines the types that flow between pipeline stages: raw and
// cleaned segments, boundary loops, raster outlines, and the wall plan that
// downstream quantity calculators consume. All detector packages produce and
// accept these types, making them the primary vocabulary of the API.
//
// # Geometry
//
// Coordinates use [github.com/paulmach/orb.Point] throughout, so results
// interoperate directly with the orb ecosystem. A [Segment] is a straight
// wall candidate between two endpoints:
//
//	seg := model.Seg(0, 0, 10000, 0)
//	length := seg.Length()
//
// A [Loop] is a closed polygon stored without repeating the first point:
//
//	loop := model.Loop{{0, 0}, {10000, 0}, {10000, 6000}, {0, 6000}}
//	area := loop.Area()
//
// # CAD Entities
//
// Vector extraction hands the pipeline a flat list of [Entity] values. The
// concrete variants are:
//
//   - [Line] - a single segment, optionally carrying elevations
//   - [Polyline] - an open or closed chain of points
//   - [Arc] - a circular arc, linearized on conversion
//   - [Spline] - a freeform curve, approximated by its control polygon
//   - [Dimension] - a measurement annotation (never geometry)
//
// # Results
//
// The raster path produces an [Outline] of resolution-independent
// [OutlinePoint] fractions. The shared downstream contract is [WallPlan]:
// wall segments, total perimeter, and a building height that is either
// resolved or explicitly unknown. Lengths in a [WallPlan] are always
// millimeters; [Unit] carries the conversion factors from source units.
package model
