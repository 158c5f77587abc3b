package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ipmon/pkg/models"
)

func TestChangedIgnoresOrder(t *testing.T) {
	a := []models.AddressRecord{
		{Interface: "WLAN", IPAddress: "192.168.1.5"},
		{Interface: "Ethernet", IPAddress: "10.0.0.4"},
		{Interface: "Ethernet", IPAddress: "2001:db8::4"},
	}
	b := []models.AddressRecord{a[2], a[0], a[1]}

	assert.False(t, Changed(a, b))
	assert.Equal(t, "Ethernet", b[0].Interface, "inputs must not be sorted in place")
	assert.Equal(t, "WLAN", a[0].Interface, "inputs must not be sorted in place")
}

func TestChangedDetectsDifferences(t *testing.T) {
	base := []models.AddressRecord{{Interface: "WLAN", IPAddress: "192.168.1.5"}}

	assert.True(t, Changed([]models.AddressRecord{{Interface: "WLAN", IPAddress: "192.168.1.6"}}, base))
	assert.True(t, Changed([]models.AddressRecord{{Interface: "Ethernet", IPAddress: "192.168.1.5"}}, base))
	assert.True(t, Changed(append(base, models.AddressRecord{Interface: "WLAN", IPAddress: "10.0.0.1"}), base))
	assert.True(t, Changed(nil, base))
}

func TestChangedAgainstEmptyHistory(t *testing.T) {
	assert.True(t, Changed([]models.AddressRecord{{Interface: "WLAN", IPAddress: "192.168.1.5"}}, nil))
	assert.False(t, Changed(nil, nil))
	assert.False(t, Changed([]models.AddressRecord{}, nil))
}
