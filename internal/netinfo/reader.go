package netinfo

import (
	"fmt"
	"strings"

	"ipmon/pkg/models"
	"ipmon/pkg/utils"
)

// Address is an assigned IP literal and the index of its owning interface
type Address struct {
	Index int
	IP    string
}

// Source enumerates assigned addresses and resolves interface indexes to names
type Source interface {
	Addresses() ([]Address, error)
	InterfaceName(index int) (string, error)
}

// Reader produces snapshots of reportable addresses
type Reader struct {
	src Source
}

// NewReader creates a reader over src. A nil src uses the platform source.
func NewReader(src Source) *Reader {
	if src == nil {
		src = SystemSource()
	}
	return &Reader{src: src}
}

// Snapshot returns the reportable addresses in enumeration order
func (r *Reader) Snapshot() ([]models.AddressRecord, error) {
	addrs, err := r.src.Addresses()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate addresses: %w", err)
	}

	records := make([]models.AddressRecord, 0, len(addrs))
	for _, addr := range addrs {
		if !utils.IsReportable(addr.IP) {
			continue
		}

		records = append(records, models.AddressRecord{
			Interface: r.resolveName(addr.Index),
			IPAddress: addr.IP,
		})
	}

	return records, nil
}

// resolveName never fails; an adapter that vanished mid-read becomes the sentinel
func (r *Reader) resolveName(index int) string {
	name, err := r.src.InterfaceName(index)
	if err != nil || strings.TrimSpace(name) == "" {
		return models.UnknownInterface
	}
	return name
}
