// Package internal holds embedkit infrastructure that is not part of the public
// API: logging, illustration rasterizing and the renderer texture cache.
package internal
