package device

import "strconv"

// ResolveID maps a client-supplied identifier string to the store's numeric
// key. A malformed identifier is reported as unresolvable, never as an
// error; callers treat unresolvable as not-found.
func ResolveID(raw string) (int, bool) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
