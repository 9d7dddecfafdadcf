// Package pkg provides the core libraries for familytree.
//
// # Overview
//
// Familytree keeps a list of people with father, mother, spouse and
// children references and turns it into a generational diagram: every
// member gets a generation band, couples sit side by side above their
// children, and a junction node joins each couple to its children.
//
// # Architecture
//
// The typical data flow:
//
//	[store] (file, memory, redis or mongo backend)
//	         ↓ snapshot
//	    [layout] (generations → grouping → positions → junctions)
//	         ↓
//	    [diagram] (positioned nodes and edges, JSON)
//	         ↓
//	    [render] (SVG, DOT, PNG, PDF)
//
// [pipeline] runs these steps with caching ([cache]) and is what the CLI
// calls.
//
// # Quick Start
//
//	repo := store.NewMemory()
//	repo.Add(ctx, family.Member{ID: "ada", Name: "Ada", Gender: family.Female})
//	repo.Add(ctx, family.Member{ID: "bob", Name: "Bob", Gender: family.Male,
//	    Relations: family.Relations{SpouseID: "ada"}})
//
//	members, _ := repo.All(ctx)
//	res := layout.Compute(members, layout.DefaultConfig())
//	svg := render.SVG(res.Diagram)
//
// # Main Packages
//
// [family] - The Member model, genders, date helpers and id generation.
//
// [layout] - The pure, deterministic layout engine. It never mutates its
// input and reports data problems through a [layout.Reporter] instead of
// failing.
//
// [diagram] - The engine's output: nodes with coordinates and typed edges
// with connection handles.
//
// [store] - The member repository. Relation changes are applied to both
// sides, every mutation bumps the layout version, and saves are
// all-or-nothing. Subpackages store/redis and store/mongo add shared
// backends.
//
// [io] - JSON and YAML import and export with strict validation.
//
// [render] - Native SVG, DOT, and Graphviz/rsvg-convert backed formats.
//
// [pipeline] - Snapshot → layout → render with diagram and artifact caching.
//
// [cache] - File, memory, redis and null caches plus cache key derivation.
//
// [config] - TOML, .env and environment configuration.
//
// [observability] - Hooks for layout, render, cache and store events.
//
// [errors] - Coded errors shared by every package.
//
// # Testing
//
//	go test ./...                    # All tests
//	go test ./pkg/layout/...         # Specific package
//	go test -run Example ./pkg/...   # Examples only
//
// The redis and mongo round-trip tests run when FAMILYTREE_TEST_REDIS_ADDR
// or FAMILYTREE_TEST_MONGO_URI is set.
//
// [family]: https://pkg.go.dev/github.com/matzehuels/familytree/pkg/family
// [layout]: https://pkg.go.dev/github.com/matzehuels/familytree/pkg/layout
// [layout.Reporter]: https://pkg.go.dev/github.com/matzehuels/familytree/pkg/layout#Reporter
// [diagram]: https://pkg.go.dev/github.com/matzehuels/familytree/pkg/diagram
// [store]: https://pkg.go.dev/github.com/matzehuels/familytree/pkg/store
// [io]: https://pkg.go.dev/github.com/matzehuels/familytree/pkg/io
// [render]: https://pkg.go.dev/github.com/matzehuels/familytree/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/familytree/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/familytree/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/familytree/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/familytree/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/familytree/pkg/errors
package pkg
