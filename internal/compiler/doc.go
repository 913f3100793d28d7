// Package compiler turns declarative trigger definitions into domain values: it parses
// transition expressions and timings, loads YAML/JSON definitions and compiles step
// sequences into keyframe timelines.
package compiler
