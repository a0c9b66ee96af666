// Package ascii defines the core types shared by the canvas animation engine.
//
// A [Renderer] owns one particle-field simulation. The host drives it with a
// fixed call order every frame:
//
//	state := r.CreateState(width, height, dpr)
//	r.Update(state, dt, mouse, scroll)
//	r.Draw(ctx, state, width, height)
//
// Renderers never touch the [Context] outside Draw, and Draw never advances
// the simulation.
//
// # Opacity Buckets
//
// Drawing thousands of glyphs with a fill change per glyph is the dominant
// per-frame cost. [Buckets] quantises opacity into [OpacityLevels] slots with
// precomputed fills so a frame performs at most 51 fill changes.
package ascii
