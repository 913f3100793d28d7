// Package interpolate samples compiled timelines: easing curves, value interpolation
// (numbers with units, colours, discrete values) and keyframe bracketing.
package interpolate
