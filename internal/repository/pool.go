package repository

import "errors"

// ErrNoDatabase is returned by the Postgres repositories when they were built
// without a connection pool.
var ErrNoDatabase = errors.New("database not configured")
