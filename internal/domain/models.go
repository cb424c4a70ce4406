package domain

import "time"

type User struct {
	ID        string
	Email     string
	FullName  string
	IsAdmin   bool
	CreatedAt time.Time
}

type UserWithPassword struct {
	User
	PasswordHash string
}

// Session is an opaque bearer token row. Validity is always a storage
// lookup; the token carries no embedded claims.
type Session struct {
	ID        string
	Token     string
	UserID    string
	ExpiresAt time.Time
}

// PasswordReset is single use: it is deleted on a successful confirm.
type PasswordReset struct {
	ID        string
	Token     string
	UserID    string
	ExpiresAt time.Time
}

type ApplicationRole string

const (
	RoleListener ApplicationRole = "listener"
	RoleSpeaker  ApplicationRole = "speaker"
)

func ValidApplicationRole(r ApplicationRole) bool {
	return r == RoleListener || r == RoleSpeaker
}

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

// ValidApplicationStatus reports whether s is one of the three admin-settable
// states. Transitions among them are unrestricted.
func ValidApplicationStatus(s ApplicationStatus) bool {
	switch s {
	case ApplicationPending, ApplicationApproved, ApplicationRejected:
		return true
	}
	return false
}

// Application is a listener/speaker sign-up. At most one per user.
// Listener applications carry Interests; speaker applications carry
// TalkTitle and TalkThesis. The other role's fields stay empty.
type Application struct {
	ID          string
	UserID      string
	Role        ApplicationRole
	FullName    string
	Email       string
	Contact     string
	Interests   string
	TalkTitle   string
	TalkThesis  string
	Status      ApplicationStatus
	SubmittedAt time.Time
}

type ThesisStatus string

const (
	ThesisSubmitted ThesisStatus = "submitted"
	ThesisAccepted  ThesisStatus = "accepted"
	ThesisRejected  ThesisStatus = "rejected"
)

func ValidThesisStatus(s ThesisStatus) bool {
	switch s {
	case ThesisSubmitted, ThesisAccepted, ThesisRejected:
		return true
	}
	return false
}

// MaxThesesPerUser bounds how many theses one user may have at once.
const MaxThesesPerUser = 5

type Thesis struct {
	ID        string
	UserID    string
	Title     string
	Abstract  string
	Status    ThesisStatus
	CreatedAt time.Time
}
