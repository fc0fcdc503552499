package importer

import (
	"context"
	"fmt"

	"github.com/qlpapp/qlp-server/internal/domain"
	"github.com/qlpapp/qlp-server/internal/store"
)

// DefaultBatchSize is the number of records written per upsert call.
const DefaultBatchSize = 500

// Load upserts employees in batches and returns how many were written.
// A failed batch stops the load; earlier batches stay committed.
func Load(ctx context.Context, st store.Store, employees []domain.Employee, batchSize int) (int, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	written := 0
	for start := 0; start < len(employees); start += batchSize {
		end := min(start+batchSize, len(employees))
		if err := st.UpsertEmployees(ctx, employees[start:end]); err != nil {
			return written, fmt.Errorf("upsert rows %d-%d: %w", start+1, end, err)
		}
		written = end
	}
	return written, nil
}
