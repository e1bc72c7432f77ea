package analyzer

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
)

// hashFile returns the hex SHA-256 of the file's content, or empty when
// the file cannot be read. Unreadable files skip the cache and surface
// their error through the normal parse path.
func hashFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
