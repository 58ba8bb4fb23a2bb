// Package mapper binds typed mapper implementations to Meilisearch
// indexes and gives them their operation surface.
//
// The pieces fit together as a startup pipeline:
//
//  1. The meilimap command discovers marked contract interfaces and
//     generates one implementation type per contract (internal/codegen).
//  2. The application builds one Runtime: client, policy options, logger.
//  3. Each generated constructor calls Bind, which validates the entity
//     (index uid, primary key, attribute roles), synchronizes the remote
//     index when the options say so, and registers the index handle under
//     the implementation's concrete type.
//  4. Every operation on Base resolves its handle from the registry at
//     call time and delegates to the remote index.
//
// Binding failures are startup failures: the first error aborts with a
// message naming the entity, and no mapper is left half-bound. Operation
// failures during regular traffic wrap into RemoteError and propagate to
// the caller.
package mapper
