// Package project holds the entity model of one architecture plan and the
// commands that change it.
//
// A [State] is a snapshot of three collections: schemas, datasets and
// ingestion sources. Commands such as [State.AddSchema] or
// [State.DeleteDataset] return a new State and leave the receiver untouched,
// so callers can keep earlier snapshots (undo) or share one snapshot across
// goroutines without locking.
//
// References between entities are plain ids. Commands never enforce
// referential integrity: deleting a schema that a dataset uses leaves a
// dangling reference, which [Dangling] reports and the graph builder
// tolerates.
//
// # Files
//
// Projects are read and written as JSON, TOML or YAML, chosen by file
// extension:
//
//	st, err := project.ReadFile("plan.toml")
//	err = project.WriteFile(st, "plan.json")
package project
