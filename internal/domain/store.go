package domain

// EntityStore persists normalized entity tables (BoltDB + memory).
// Tables are named after normalization tables ("artists", "tracks", ...)
// and keyed by the string form of the entity identity.
type EntityStore interface {
	// SaveTables merges every entity of every table. Later writes win.
	SaveTables(tables map[string]map[string]any) error

	// Entity decodes one stored entity into dest.
	Entity(table, id string, dest any) (bool, error)

	// Entities returns every stored entity of a table keyed by id.
	Entities(table string) (map[string]map[string]any, error)

	// Tables lists the tables that hold at least one entity.
	Tables() ([]string, error)

	// MarkFresh records the server timestamp a table was synced at.
	MarkFresh(table string, serverTS int64) error

	// IsValid checks if the stored timestamp of table is >= serverTS.
	IsValid(table string, serverTS int64) bool

	InvalidateTable(table string)
	InvalidateEntity(table, id string)
	InvalidateAll()

	Close() error
}
