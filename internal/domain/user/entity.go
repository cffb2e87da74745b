package user

// Role is the authorization role carried in the access token. Tokens are
// issued by the external identity service; this service only reads the claim.
type Role string

const (
	RoleOwner    Role = "owner"    // Company owner - full access
	RoleManager  Role = "manager"  // Can review corrections and edit attendance
	RoleEmployee Role = "employee" // Regular employee
)

// CanReviewAttendance checks whether the role may perform manual entries,
// record edits and correction reviews.
func (r Role) CanReviewAttendance() bool {
	return r == RoleManager || r == RoleOwner
}
