// Package stepper is the manual-stepping driver.
//
// Animations advance on frame callbacks requested from a ports.FrameScheduler and
// write the sampled styles straight into the element's style attribute. The inline
// values the animation overwrites are restored when it finishes or is destroyed.
//
// FrameQueue is a scheduler pumped by the host, one Tick per frame.
package stepper
