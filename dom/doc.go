// Package dom hosts panzoom widgets on SVG elements in a browser page. It
// is built for GOOS=js GOARCH=wasm; the option parsing and CSS helpers are
// plain Go and build everywhere.
//
// Initialize finds containers, wraps each in a div carrying the
// "svg-zoom-wrapper" class and attaches a widget to the wrapper. Attach
// does the same for a single element without wrapping.
package dom
