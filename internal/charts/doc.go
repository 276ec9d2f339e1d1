// Package charts renders the analytics dashboard as PNG images.
//
// Each chart is drawn on its own gg context with the Go fonts, so a Renderer
// holds no mutable drawing state between calls. Presentation settings travel
// in a Style value.
package charts
