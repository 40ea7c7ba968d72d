// Package qdrant implements the storage.Connector interface against a
// remote Qdrant server over gRPC.
//
// The connector addresses the server with a single "host:port" URI, fails
// fast with a health check at construction and ensures its collection
// exists before serving operations. Collections holding embedding-less
// records are created payload-only.
//
// Qdrant payloads are natively typed, so row metadata round-trips without
// the stringification the embedded backend needs. Record ids must be UUIDs;
// Qdrant accepts nothing else as a point id.
//
// Example:
//
//	cfg := qdrant.FromURI("localhost:6334")
//	cfg.Storage.UserID = "user-1"
//	cfg.Storage.AgentID = "agent-1"
//	cfg.Storage.VectorSize = 1536
//
//	conn, err := qdrant.NewConnector(cfg, log)
//	if err != nil {
//	    return err
//	}
//	defer conn.Close()
package qdrant
