// Package sessions owns the map from session identifier to the isolated
// server instance serving that client.
//
// A session is Active while it has an entry in the map and Absent otherwise.
// Acquire moves an unknown identifier to Active by building a fresh engine and
// transport through the BuildFunc; later requests bearing the same identifier
// reuse that pair. A session leaves the map when its transport is closed
// explicitly (Close) or when the background sweep finds it older than the
// configured timeout. Eviction is by age since creation, not idle time.
//
// Requests within one session are not serialized by the Manager. The map is
// the only shared mutable state and is guarded by a mutex.
package sessions
