// Package partial implements recursive partial-object containment checks.
//
// A partial is a nested mapping describing the key/value structure a candidate
// object is expected to contain (or not contain). Candidates may carry any
// number of additional keys or array elements; only the keys named by the
// partial are inspected:
//
//   - Contains requires every leaf of the partial to be strictly equal to the
//     candidate's value at the same key path.
//   - Excludes walks the same key paths but requires strict inequality at each
//     leaf. It is not the logical negation of Contains: a nested partial is
//     checked for not containing its own leaves, so a candidate can fail both
//     checks, and a key that is absent from the candidate counts as "does not
//     contain".
//
// Arrays are traversed by index exactly like objects are traversed by key, so
// a shorter expected array is a prefix check against the candidate array.
//
// Inputs pass through a JSON round-trip before comparison, which lets callers
// hand in structs, maps or decoded JSON interchangeably.
package partial
