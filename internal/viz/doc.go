// Package viz renders the stellar lifecycle in a terminal. A braille
// canvas gives 2x4 dots per character cell, each cell carrying a color
// class that the active theme maps to a style. The scene projects body
// views through a slowly drifting camera, and the bubbletea model on
// top advances the director one fixed frame at a time while the
// keyboard adjusts speed, theme, layers and camera without touching
// the physics.
package viz
