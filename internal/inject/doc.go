// Package inject rewrites the flyer data block embedded in the weekly
// meeting page.
//
// The page carries one declaration of the form
//
//	const flyersByYear = {
//	    "2024": [ { filename: "1.jpg", ... } ]
//	};
//
// which the browser script reads. Locate finds it by structure rather than
// by regular expression: the open marker is the declaration head, the close
// marker is the balancing brace followed by a semicolon. A missing
// declaration and a repeated one are reported as ErrMarkerNotFound and
// ErrAmbiguousMarker.
//
// Render writes the catalog back in a fixed shape (four-space steps, years
// ascending, ASCII-only string literals), so running the generator twice on
// the same folder leaves the page byte-identical.
package inject
