// Package imaging rewrites images as fully opaque 8-bit RGBA PNGs.
package imaging
