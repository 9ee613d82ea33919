package domain

// Tier is the caller's privilege level for a single request. It is derived
// from the identity lookup at request time and never cached across requests.
type Tier int

const (
	TierAnonymous Tier = iota
	TierUser
	TierAdmin
)

// String returns the tier name.
func (t Tier) String() string {
	switch t {
	case TierAdmin:
		return "admin"
	case TierUser:
		return "user"
	default:
		return "anonymous"
	}
}

// AtLeast reports whether the tier meets the given minimum.
func (t Tier) AtLeast(minimum Tier) bool {
	return t >= minimum
}

// TierFor resolves the tier for a looked-up user. A nil user is anonymous.
// A user whose admin flag could not be confirmed is a plain user; elevation
// is never the fallback (fail closed).
func TierFor(user *User) Tier {
	switch {
	case user == nil:
		return TierAnonymous
	case user.IsAdmin:
		return TierAdmin
	default:
		return TierUser
	}
}
