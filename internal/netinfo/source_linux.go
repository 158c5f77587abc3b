//go:build linux
// +build linux

package netinfo

import (
	"context"
	"fmt"

	"github.com/vishvananda/netlink"
)

// netlinkSource reads addresses straight from the kernel
type netlinkSource struct{}

// SystemSource returns the netlink-backed source
func SystemSource() Source {
	return netlinkSource{}
}

func (netlinkSource) Addresses() ([]Address, error) {
	addrs, err := netlink.AddrList(nil, netlink.FAMILY_ALL)
	if err != nil {
		return nil, fmt.Errorf("netlink address list: %w", err)
	}

	result := make([]Address, 0, len(addrs))
	for _, addr := range addrs {
		if addr.IPNet == nil || addr.IP == nil {
			continue
		}
		result = append(result, Address{Index: addr.LinkIndex, IP: addr.IP.String()})
	}
	return result, nil
}

func (netlinkSource) InterfaceName(index int) (string, error) {
	link, err := netlink.LinkByIndex(index)
	if err != nil {
		return "", fmt.Errorf("link %d: %w", index, err)
	}
	attrs := link.Attrs()
	if attrs == nil {
		return "", fmt.Errorf("link %d has no attributes", index)
	}
	return attrs.Name, nil
}

// Subscribe signals on the returned channel whenever an address is added or removed.
// The channel closes when ctx is done.
func Subscribe(ctx context.Context) (<-chan struct{}, error) {
	updates := make(chan netlink.AddrUpdate)
	done := make(chan struct{})

	if err := netlink.AddrSubscribe(updates, done); err != nil {
		return nil, fmt.Errorf("failed to subscribe to address updates: %w", err)
	}

	changes := make(chan struct{}, 1)
	go func() {
		defer close(changes)
		for {
			select {
			case <-ctx.Done():
				close(done)
				return
			case _, ok := <-updates:
				if !ok {
					return
				}
				// Coalesce bursts, one pending signal is enough
				select {
				case changes <- struct{}{}:
				default:
				}
			}
		}
	}()

	return changes, nil
}
