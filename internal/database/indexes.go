package database

import (
	"fmt"

	"gorm.io/gorm"
)

// EnsurePairIndexes adds the unordered-pair uniqueness constraint for
// connection requests. The model-level index is directional, so connect(a,b)
// racing connect(b,a) would otherwise be able to insert two rows for the same
// pair. Expression indexes cover this on postgres and sqlite; on other
// drivers the service-level both-direction check is the only guard.
func EnsurePairIndexes(db *gorm.DB) error {
	var stmt string
	switch db.Dialector.Name() {
	case "postgres":
		stmt = `CREATE UNIQUE INDEX IF NOT EXISTS idx_connection_unordered_pair
			ON connection_requests (LEAST(sender_id, receiver_id), GREATEST(sender_id, receiver_id))`
	case "sqlite":
		stmt = `CREATE UNIQUE INDEX IF NOT EXISTS idx_connection_unordered_pair
			ON connection_requests (MIN(sender_id, receiver_id), MAX(sender_id, receiver_id))`
	default:
		return nil
	}

	if err := db.Exec(stmt).Error; err != nil {
		return fmt.Errorf("failed to create unordered pair index: %w", err)
	}
	return nil
}
