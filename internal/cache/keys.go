package cache

// Session keys
func KeySessionHash(hash string) string {
	return Key("sessions", hash)
}

// User keys
func KeyUserEmail(email string) string {
	return Key("users", "email", email)
}

// Presentation keys. Ownership is immutable for the lifetime of a share, so
// owner lookups can be cached safely. Share rows themselves are never cached:
// single-use redemption must see live state.
func KeyPresentationOwner(presentationID string) string {
	return Key("presentations", "owner", presentationID)
}
