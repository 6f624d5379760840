// Package cleaner normalizes raw wall-candidate segments before boundary
// detection.
//
// Vector drawings arrive messy: hatching and annotation strokes, small gaps
// where walls meet, the same wall drawn twice, one wall drawn as several
// collinear pieces, and furniture geometry floating away from the structure.
// [Cleaner] repairs all of that with five ordered stages:
//
//  1. Length filter - drop segments shorter than the minimum length.
//  2. Endpoint snapping - cluster endpoints within the snap tolerance and
//     move each endpoint to its cluster centroid, closing corner gaps.
//  3. Collinear merge - fuse segments that share an endpoint and agree in
//     direction within about one degree, repeated to a fixed point.
//  4. Duplicate removal - drop segments whose endpoints pairwise match an
//     already-kept segment within twice the tolerance.
//  5. Fragment removal - keep only the largest connected cluster of
//     segments, discarding detached geometry.
//
// Thresholds adapt to the drawing extent unless set explicitly in [Config];
// see [Config.MinLength] and [Config.SnapTolerance].
//
// Cleaning never fails. An input that cleans down to nothing produces an
// empty [Result]; deciding whether that is fatal belongs to the boundary
// detector. [Result.Stats] reports what each stage removed so callers can
// diagnose surprising drawings.
package cleaner
