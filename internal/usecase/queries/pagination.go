package queries

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

func ValidateLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

func ValidatePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}
