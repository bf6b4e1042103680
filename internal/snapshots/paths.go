package snapshots

import (
	"fmt"
	"path/filepath"
)

const daysDir = "games"

// DaySnapshotPath builds the path to the snapshot of one calendar day.
func DaySnapshotPath(basePath, date string) string {
	return filepath.Join(basePath, daysDir, fmt.Sprintf("%s.json", date))
}
