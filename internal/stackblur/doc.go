// Package stackblur implements the Stack Blur algorithm by Mario Klingemann:
// a separable blur with a triangular kernel that approximates a Gaussian.
//
// Each pass keeps three running sums per channel and a ring of the last 2r+1
// pixels, so moving the window one pixel costs O(1) whatever the radius.
// Sums are divided by (r+1)^2 with integer truncation. Samples outside the
// bitmap are clamped to the nearest edge pixel.
//
// Performance design:
//   - one horizontal pass into a scratch buffer, one vertical pass back
//   - scratch buffers live in the Engine, grow to the largest bitmap seen
//     and are zeroed between calls: 0 allocs/op in steady state
//   - pixels stay packed as ARGB words, alpha in the top byte
package stackblur
