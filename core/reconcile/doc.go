// Package reconcile writes external records into the taxonomy store.
//
// Records are matched on their name in the default language within a
// vocabulary. A match is overwritten in full; no match creates a new term. Every
// other language in the registry then gets a translation whose name comes from a
// Namer, and the term is saved last.
//
// # Usage
//
//	engine := reconcile.NewEngine(store, registry, namer, "en")
//	outcome, err := engine.CreateOrUpdate(ctx, "country", "France", fields)
//
//	// Dry run
//	plan, err := engine.Plan(ctx, "country", items)
//
// Store failures are returned as *PersistenceError naming the failed step.
package reconcile
