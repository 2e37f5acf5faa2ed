// File: lixenwraith/confstore/doc.go

// Package confstore keeps named configuration documents as files in a single
// directory, validates them against required-key specs, and writes them back
// atomically.
//
// Features:
//   - Crash-safe saves: temp file in the same directory, fsync, atomic rename
//   - Shared/exclusive advisory file locks (flock on unix, LockFileEx on windows)
//   - JSON by default (pretty-printed, unescaped slashes, nesting bounded at 512),
//     TOML and YAML as alternate codecs
//   - Ordered required-key specs with nested specs, "|" key aliases and predicates
//   - Struct-derived specs and mapstructure decoding into typed structs
//   - Typed errors matching sentinel kinds with errors.Is
//
// Quick Start:
//
//	store, err := confstore.NewBuilder().
//	    WithDir("/etc/myapp").
//	    Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	spec := confstore.Spec{
//	    {Key: "db|database", Want: confstore.Nested(confstore.Spec{
//	        {Key: "host", Want: confstore.Type("string")},
//	        {Key: "port", Want: confstore.Type("int")},
//	    })},
//	    {Key: "debug", Want: confstore.Type("bool")},
//	}
//
//	doc, err := store.LoadValidated("app", spec) // reads /etc/myapp/app.json
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	doc.Set("db.port", 5433)
//	if err := store.Save("app", doc); err != nil {
//	    log.Fatal(err)
//	}
//
// Validation:
// Validate checks fields in spec order and returns the first violation as a
// *SchemaError. A key found under an alias is moved to its canonical (first)
// name in the document, so later code only needs the canonical name.
//
// Missing files:
// Load fails with ErrFileMissing by default. WithCreateMissing(true) makes it
// save and return an empty document instead. The directory itself is never
// created.
//
// Concurrency:
// Loads take a shared lock and saves take an exclusive lock on the current
// file, so readers see either the old or the new document. Locks block
// without a timeout; wrap calls if a bounded wait is needed. Cross-process
// safety depends on the filesystem honoring advisory locks.
package confstore
