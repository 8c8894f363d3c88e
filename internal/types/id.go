// README: Opaque identifier type shared by modules.
package types

// ID is an opaque entity identifier.
type ID string
