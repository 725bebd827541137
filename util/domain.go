// util/domain.go

package util

// ValidDomain checks if the logged-in user comes from an allowed domain.
// An empty allow-list denies everyone.
func ValidDomain(domain string, allowedDomains []string) bool {
	for _, allowed := range allowedDomains {
		if domain == allowed {
			return true
		}
	}
	return false
}
