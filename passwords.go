package keyprobe

// DefaultPasswords returns the list of passwords tried by default when
// decrypting password-protected keys and containers. Returns a fresh copy
// each call.
func DefaultPasswords() []string {
	return []string{"", "password", "changeit", "keypassword"}
}

// DeduplicatePasswords merges additional passwords with the defaults and
// removes duplicates while preserving order. Defaults come first, followed
// by any extra passwords not already in the list.
func DeduplicatePasswords(extra []string) []string {
	all := append(DefaultPasswords(), extra...)
	seen := make(map[string]bool, len(all))
	result := make([]string, 0, len(all))
	for _, p := range all {
		if !seen[p] {
			seen[p] = true
			result = append(result, p)
		}
	}
	return result
}
