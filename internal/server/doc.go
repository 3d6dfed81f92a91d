// Package server implements the MCP (Model Context Protocol) server for the
// social-distancing estimators.
//
// An outer pipeline (a video front end, an assistant driving a detector)
// supplies person bounding boxes; this server turns them into pairwise
// distance estimates and the list of pairs standing too close.
//
// # Protocol
//
// The server speaks JSON-RPC 2.0 over stdio through the official Go MCP SDK.
// Input and output schemas for every tool are derived from the Go structs in
// tools.go; schema.go widens box properties to admit the tuple form.
//
// # Available Tools
//
// Distance estimation:
//   - distance_traits: height, width and center of each box
//   - distance_estimate: pairwise matrix by strategy (simple-average, depth-ratio)
//   - distance_count_violations: too-close pairs in a precomputed feet matrix
//   - distance_analyze: estimate + violations for a whole frame
//
// Frame helpers:
//   - image_dimensions: width and height of a frame
//   - image_crop_detection: one detection as base64 PNG
//   - image_cache_evict: release cached frames early
//
// Boxes are accepted as objects or as [top, left, bottom, right] tuples.
// Decoded frames are cached up to cache_frames; the oldest is dropped first.
//
// The resource distance://config reports the reference height, threshold and
// default strategy in effect.
//
// # Error Handling
//
// Handler errors are returned to the client as tool results flagged isError.
// The one exception is distance_analyze on an empty box list, which is a
// normal outcome: it returns detections 0 and the message
// "No detections in this image".
package server
