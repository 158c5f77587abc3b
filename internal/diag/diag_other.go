//go:build !unix && !windows

package diag

import "errors"

func openPlatform(string, string) (Sink, error) {
	return nil, errors.New("no diagnostic log on this platform")
}
