package pg

import (
	"fmt"

	"github.com/lib/pq"

	"github.com/lagoslakes/flownet/network"
)

// ExportFlowlines selects the flowline rows whose permanent identifier
// appears in ids and materializes them as a new table. Geometry and any
// extra columns carried by the store are copied as-is; projection and output
// validity are the store's responsibility.
func (s *Source) ExportFlowlines(table string, ids []network.ID) error {
	selected := make([]string, 0, len(ids))
	for _, id := range ids {
		if !id.IsNull() {
			selected = append(selected, string(id))
		}
	}

	query := fmt.Sprintf(
		`CREATE TABLE %s AS SELECT * FROM flowlines WHERE permanent_identifier = ANY($1)`,
		pq.QuoteIdentifier(table),
	)
	if _, err := s.db.Exec(query, pq.Array(selected)); err != nil {
		return fmt.Errorf("export flowlines to %q: %w", table, err)
	}
	return nil
}
