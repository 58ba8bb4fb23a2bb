// Package diagnostic collects the findings of a contract scan as
// structured errors, warnings, and infos.
//
// Key capabilities:
//   - Structural errors that must stop generation (non-interface marked
//     as a contract, indirect embedding, unresolvable entity type)
//   - Warnings for declarations that look like contracts but are skipped
//   - Infos for contract methods whose bodies the user must supply
package diagnostic
