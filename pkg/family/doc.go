// Package family defines the genealogy data model shared by the layout
// engine, the member store, and the import/export codecs.
//
// # Members
//
// A [Member] is a person with an immutable ID, a display name, a [Gender],
// optional birth and death dates, and a [Relations] record holding the
// father, mother, spouse and children references:
//
//	m := family.Member{
//	    ID:     family.NewID(),
//	    Name:   "Ada",
//	    Gender: family.Female,
//	    BirthDate: "1815-12-10",
//	}
//
// Dates are free-form strings so that partial precision ("1931", "1931-04")
// survives a round-trip. [BirthYear] extracts the first four-digit run and
// [SortYear] maps a missing or malformed date to [UnknownYear] so that such
// members sort last.
//
// # Consistency
//
// Relations are expected to be symmetric (spouses point at each other,
// parents list their children), but nothing in this package enforces it.
// The store package owns those invariants. Everything that reads members
// must tolerate dangling or asymmetric references; use [Index] for lookups
// that degrade to "not found" instead of panicking.
package family
