// Package mask implements binary raster morphology for floor-plan
// silhouettes.
//
// A [Mask] marks wall or building pixels over a working-resolution image.
// The operations cover what outline extraction needs, in the order a
// pipeline applies them:
//
//	walls := mask.FromGray(binary, 128)
//	grown := walls.Dilate(3)
//	building := grown.Exterior().Invert()
//	solid := building.LargestComponent().FillHoles()
//	contour := solid.Boundary()
//
// # Operations
//
// [Mask.Dilate] grows set regions with a separable box kernel, a
// horizontal sliding-window pass followed by a vertical one, so the cost
// stays proportional to the pixel count regardless of radius.
//
// [Mask.Exterior] floods unset pixels 4-connected from the image border;
// [Mask.Invert] of that is everything a border flood cannot reach.
// [Mask.LargestComponent] keeps the biggest 4-connected set region and
// [Mask.FillHoles] promotes enclosed unset pockets to set.
//
// [Mask.Boundary] walks the outer contour of the set region with
// Moore-neighbor tracing and returns it as pixel coordinates.
//
// Transforming operations return new masks rather than mutating in
// place, so a built mask can be shared across goroutines freely.
package mask
