// Package connect selects and opens a storage backend from a single
// storage.Config.
//
// Exactly one of the config's three backend inputs decides the adapter:
//
//	Path (or nothing) → chromem   (embedded, optionally persistent)
//	URI               → qdrant    (remote vector database)
//	DSN               → postgres  (pgvector over GORM)
//
// Leaving all three empty opens an in-memory chromem database, which is
// the zero-configuration default. Setting more than one is an error.
//
// Example:
//
//	cfg := storage.DefaultConfig()
//	cfg.UserID = "user-1"
//	cfg.Path = "/var/lib/memgpt/archival"
//
//	conn, err := connect.Open(connect.Params{Storage: cfg})
//	if err != nil {
//	    return err
//	}
//	defer conn.Close()
package connect
