package display

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"ipmon/pkg/models"
)

// Priorities names the well-known interfaces that sort ahead of the rest
type Priorities struct {
	WLAN     string
	Ethernet string
	Switch   string
}

// DefaultPriorities returns the Windows adapter display names
func DefaultPriorities() Priorities {
	return Priorities{
		WLAN:     "WLAN",
		Ethernet: "Ethernet",
		Switch:   "vEthernet (Default Switch)",
	}
}

// Rank returns the sort bucket for an interface name, lower first
func (p Priorities) Rank(name string) int {
	switch displayName(name) {
	case models.UnknownInterface:
		return 5
	case p.WLAN:
		return 1
	case p.Ethernet:
		return 2
	case p.Switch:
		return 3
	default:
		return 4
	}
}

// Sort returns a copy of records ordered by interface priority.
// Records in the same bucket keep their input order.
func Sort(records []models.AddressRecord, p Priorities) []models.AddressRecord {
	sorted := make([]models.AddressRecord, len(records))
	copy(sorted, records)

	sort.SliceStable(sorted, func(i, j int) bool {
		return p.Rank(sorted[i].Interface) < p.Rank(sorted[j].Interface)
	})
	return sorted
}

// Render writes records as an Interface / IP Address table
func Render(w io.Writer, records []models.AddressRecord, p Priorities) error {
	rows := make([][]string, 0, len(records))
	for _, rec := range Sort(records, p) {
		rows = append(rows, []string{displayName(rec.Interface), rec.IPAddress})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Interface", "IP Address").
		Rows(rows...)

	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return fmt.Errorf("failed to render address table: %w", err)
	}
	return nil
}

func displayName(name string) string {
	if strings.TrimSpace(name) == "" {
		return models.UnknownInterface
	}
	return name
}
