package ports

import (
	"datasight/domain/profile"
	"datasight/domain/table"
)

// ProfilerPort analyzes a loaded table. It is pure: the same table always
// yields an equal profile.
type ProfilerPort interface {
	ProfileDataset(t *table.Table) *profile.DatasetProfile
}
