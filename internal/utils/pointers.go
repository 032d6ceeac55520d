package utils

func StringPtr(s string) *string {
	return &s
}

// NullableString returns nil for the empty string so optional columns land
// as SQL NULL instead of "".
func NullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
