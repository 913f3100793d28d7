// Package htmldom is an in-memory rendering surface for kinetic.
//
// Documents are parsed from HTML. Inline styles live in the style attribute and
// are edited through the ports.Element methods. Heights and widths come from a small
// block layout model: every element is a block, text wraps at a fixed character
// width of half the font size, and an element without an explicit pixel height is as
// tall as its content. Attached animation effects take precedence over inline styles,
// both for ComputedStyle and for the layout of descendants.
//
// Nodes implement ports.Element, ports.Structural and ports.EffectHost. A Document is
// not safe for concurrent use.
package htmldom
