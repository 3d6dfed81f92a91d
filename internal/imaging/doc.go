// Package imaging provides the frame-level helpers that sit next to the
// distance estimators: a decode cache, frame dimensions, a bounds check for
// detection boxes and cropping a single detection out of its frame.
//
// It never detects or draws anything. Boxes come from an external detector;
// this package only reads the pixels under them.
//
// # Coordinate System
//
// Pixel coordinates are 0-based with (0,0) at the top-left corner, X
// increasing rightward and Y increasing downward. Detection boxes are
// float [top, left, bottom, right]; they are converted to integer regions by
// flooring the near edges and ceiling the far edges.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. The other functions are stateless.
package imaging
