/*
Package ports defines the driven ports (interfaces) of the Kinetic engine.

These interfaces decouple the orchestration core from the rendering surface, the
animation backend and the storage of last-known style values.

# Key Interfaces

  - Driver: turns a compiled Timeline into a native Player for an element.
  - Player: the native handle of one running animation.
  - Element: the capability to read computed styles and read/write inline styles.
  - EffectHost / Structural: optional element capabilities (effect compositing,
    structural mutation for scoped measurement).
  - StyleCache: last-known concrete style values per element.
  - Clock / FrameScheduler: time sources for the drivers.
*/
package ports
