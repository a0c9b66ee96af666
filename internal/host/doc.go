// Package host drives one renderer on one canvas element.
//
// A [Host] owns the renderer instance, its state and the frame loop around
// it. It is fed by a driver through a small set of entry points that mirror
// the events of a browser page:
//
//   - [Host.NotifyResize]: the element changed size (debounced to one frame)
//   - [Host.SetIntersecting]: the element entered or left the viewport
//   - [Host.SetDocumentHidden]: the whole surface was hidden or shown
//   - [Host.PointerMove], [Host.PointerLeave]: pointer in viewport coordinates
//   - [Host.Scroll]: the page scrolled
//
// # Lifecycle
//
//	Mounted -> Sized -> Running <-> Paused -> Unmounted
//
// The loop runs only while the document is visible, the element intersects
// the viewport and reduced motion was not requested at mount. With reduced
// motion a single static frame is drawn instead.
//
// # Thread Safety
//
// Host is NOT thread-safe. Every entry point and every scheduled frame
// callback must run on the same goroutine; drivers funnel their events into
// one loop to guarantee that.
package host
