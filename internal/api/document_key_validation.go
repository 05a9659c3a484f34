package api

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// isOwnDocumentKey accepts only well-formed object keys under the caller's
// own prefix. Submission keys have the shape {userID}/{slot}/{ts}_{name}.
func isOwnDocumentKey(userID uint, key string) bool {
	if key == "" || !utf8.ValidString(key) {
		return false
	}
	if !strings.HasPrefix(key, fmt.Sprintf("%d/", userID)) {
		return false
	}
	if strings.Contains(key, "..") || strings.Contains(key, "\\") || strings.Contains(key, "//") {
		return false
	}
	if len(key) > 512 {
		return false
	}
	if strings.Count(key, "/") < 2 {
		return false
	}
	return true
}
