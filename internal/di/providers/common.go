package providers

import "time"

const (
	// shutdownTimeout is the maximum time to wait for graceful shutdown of services.
	shutdownTimeout = 30 * time.Second

	// storeOpenTimeout bounds connecting to the database and applying the schema.
	storeOpenTimeout = 15 * time.Second
)
