//go:build !linux
// +build !linux

package netinfo

import (
	"context"
	"fmt"
	"net"
)

// stdSource uses the net package, which on Windows reports adapter friendly names
type stdSource struct{}

// SystemSource returns the net-package source
func SystemSource() Source {
	return stdSource{}
}

func (stdSource) Addresses() ([]Address, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("failed to list interfaces: %w", err)
	}

	var result []Address
	for _, iface := range ifaces {
		addrs, err := iface.Addrs()
		if err != nil {
			// Adapter went away between listing and querying
			continue
		}
		for _, addr := range addrs {
			var ip net.IP
			switch v := addr.(type) {
			case *net.IPNet:
				ip = v.IP
			case *net.IPAddr:
				ip = v.IP
			}
			if ip == nil {
				continue
			}
			result = append(result, Address{Index: iface.Index, IP: ip.String()})
		}
	}
	return result, nil
}

func (stdSource) InterfaceName(index int) (string, error) {
	iface, err := net.InterfaceByIndex(index)
	if err != nil {
		return "", err
	}
	return iface.Name, nil
}

// Subscribe is unsupported here; the returned channel only closes when ctx is done
func Subscribe(ctx context.Context) (<-chan struct{}, error) {
	changes := make(chan struct{})
	go func() {
		<-ctx.Done()
		close(changes)
	}()
	return changes, nil
}
