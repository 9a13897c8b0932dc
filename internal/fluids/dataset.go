package fluids

import (
	"sort"

	"github.com/hayatotakai/oilprops/pkg/models"
)

// Dataset is an immutable snapshot of the loaded fluid records. It is safe
// for concurrent readers; nothing mutates it after construction.
type Dataset struct {
	records map[string]models.FluidRecord
	names   []string
}

// NewDataset builds a snapshot from the given records. Duplicate names keep
// the last record seen; names are sorted once at construction.
func NewDataset(records []models.FluidRecord) *Dataset {
	byName := make(map[string]models.FluidRecord, len(records))
	for _, r := range records {
		byName[r.Name] = r
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	return &Dataset{records: byName, names: names}
}

// Lookup returns the record for the named fluid
func (d *Dataset) Lookup(name string) (models.FluidRecord, bool) {
	r, ok := d.records[name]
	return r, ok
}

// FluidNames returns all fluid names, lexicographically sorted. The returned
// slice is a copy.
func (d *Dataset) FluidNames() []string {
	names := make([]string, len(d.names))
	copy(names, d.names)
	return names
}

// Len returns the number of fluids in the snapshot
func (d *Dataset) Len() int {
	return len(d.names)
}
