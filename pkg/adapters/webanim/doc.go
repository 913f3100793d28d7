// Package webanim is the native-animation-API driver.
//
// Animations follow the Web Animations model: their position is derived from a clock
// and their styles are composited on the element as an effect rather than written to
// the style attribute. Effects fill backwards while pending and are detached once the
// animation finishes or is destroyed, handing the element back to its inline styles.
//
// Nothing runs in the background: the host calls Driver.Update once per frame to
// dispatch finish events for animations whose time has elapsed.
package webanim
