package utils

// HasAnyRole reports whether the two role sets intersect. Role checks are
// additive: holding any one of the required tags is enough.
func HasAnyRole(held, required []string) bool {
	for _, r := range required {
		for _, h := range held {
			if h == r {
				return true
			}
		}
	}
	return false
}
