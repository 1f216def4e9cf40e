// Package imaging handles loading and caching of source photos for the
// pattern pipeline.
//
// Decoding registers PNG, JPEG and GIF. The ImageCache is safe for
// concurrent use; decoded images are immutable and may be shared freely
// between pipeline stages.
package imaging
