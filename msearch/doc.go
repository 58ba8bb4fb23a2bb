// Package msearch defines the slice of the Meilisearch API this module
// consumes, as interfaces the rest of the code (and its tests) work
// against, plus the SDK-backed constructor.
//
// The Index interface mirrors the SDK's index methods exactly, so the
// SDK's own index type satisfies it without wrapping. The Client interface
// needs a thin adapter only because its index-returning methods must
// return the interface.
package msearch
