package journal

import (
	"path/filepath"
	"time"
)

// entryPath maps a date to its document location: <root>/YYYY-MM/YYYY-MM-DD.json.
// The year-month grouping only keeps directories from accumulating thousands
// of files; it carries no other meaning and is not an index.
func (s *Store) entryPath(date time.Time) string {
	return filepath.Join(s.root, date.Format("2006-01"), date.Format(DateLayout)+".json")
}
