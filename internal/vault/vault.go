// Package vault implements ruddit.Vault backends for off-machine database snapshots.
package vault

import (
	"fmt"
	"strings"
)

// snapshotKey joins an install id and snapshot name into a slash-separated key.
// Both parts must be single, non-empty path segments.
func snapshotKey(installID, name string) (string, error) {
	for _, part := range []string{installID, name} {
		if part == "" || part == "." || part == ".." || strings.ContainsAny(part, `/\`) {
			return "", fmt.Errorf("invalid snapshot key segment %q", part)
		}
	}
	return installID + "/" + name, nil
}
