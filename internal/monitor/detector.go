package monitor

import (
	"encoding/json"
	"sort"

	"ipmon/pkg/models"
)

// Changed reports whether current differs from previous as a set of
// interface/address pairs. Enumeration order does not matter.
func Changed(current, previous []models.AddressRecord) bool {
	return canonical(current) != canonical(previous)
}

// canonical sorts a copy by interface then address and encodes it compactly
func canonical(records []models.AddressRecord) string {
	sorted := make([]models.AddressRecord, len(records))
	copy(sorted, records)

	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Interface != sorted[j].Interface {
			return sorted[i].Interface < sorted[j].Interface
		}
		return sorted[i].IPAddress < sorted[j].IPAddress
	})

	// A slice of plain string structs always encodes
	data, _ := json.Marshal(sorted)
	return string(data)
}
