// Package store provides the member repository: CRUD over the family's
// member list with the relation invariants enforced in one place.
//
// # Architecture
//
// A [Store] owns an in-memory snapshot of the members guarded by a
// sync.RWMutex and persists every mutation through a [Backend]:
//   - [MemoryBackend]: nothing persisted, for tests and dry runs
//   - [FileBackend]: a JSON member array on disk (the interchange format)
//   - store/redis: a Redis key holding the array and a version key
//   - store/mongo: a single MongoDB document replaced atomically
//
// Mutations are computed on a copy of the snapshot and only become visible
// after the backend saved them, so a failed save leaves the store unchanged.
//
// # Relation Invariants
//
// The store keeps both sides of every relation consistent:
//   - Spouses are symmetric. Linking A to B unlinks both previous spouses.
//   - If C.fatherId or C.motherId is P then P.childrenIds contains C, and
//     the reverse.
//   - Deleting a member clears every fatherId, motherId and spouseId that
//     referenced it and removes it from every childrenIds list.
//
// All relation changes go through [Store.SetRelation]. [Store.Add] and
// [Store.Update] route the father, mother and spouse of their argument
// through the same wiring; childrenIds is maintained by the store and
// ignored on input.
//
// # Versions
//
// Every mutation, including [Store.ReplaceAll], increments the layout
// version. The version only signals downstream consumers to recompute.
package store
