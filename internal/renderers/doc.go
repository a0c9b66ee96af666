// Package renderers provides the five particle-field renderers and the
// theme registry that maps a theme name to its factory.
//
//   - code-flow: drifting programming symbols
//   - parliament: seats on concentric arcs around a podium
//   - circuit: a wire grid with signals travelling to a central hub
//   - cipher: a hex grid that decodes around the pointer
//   - topography: scroll-revealed contour bands over a noise height-field
//
// Every renderer except topography draws from its own random source, so two
// mounts of the same theme differ slightly. Use [WithRand] to pin it.
package renderers
