package contextkeys

// Custom key type to avoid collisions with other packages.
type contextKey string

// IdentityIDKey holds the external identity id of the authenticated caller.
const IdentityIDKey = contextKey("identity_id")
