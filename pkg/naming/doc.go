/*
Package naming issues the identifiers the builder depends on: container IDs and
unique label names.

Container IDs are strictly increasing integers starting at 1. Label names are
de-duplicated by appending a usage counter to repeated base names:

	r := naming.NewRegistry()
	r.UniqueLabelName("db") // "db"
	r.UniqueLabelName("db") // "db2"
	r.UniqueLabelName("db") // "db3"

# Scope

A Registry is shared by everything built from it. Two deployments built from
the same registry share one label namespace, so the second "web" label in the
process is "web2" even when it belongs to a different deployment. The
package-level Default registry backs the stitch package helpers; tests that
need isolation create their own registry or call Reset.
*/
package naming
