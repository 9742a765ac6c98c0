// Package server exposes the forms over HTTP. HTML pages post back to
// themselves; a small JSON API validates values and applies patches without
// submitting.
package server
