package domain

type CtxKey string

const (
	KeyUserID    CtxKey = "UserID"
	KeyUserEmail CtxKey = "Email"
	KeyUserRole  CtxKey = "Role"
	KeyRequestID CtxKey = "RequestID"
)

// Roles allowed to request matches
const (
	RoleCandidate = "candidate"
	RoleEmployer  = "employer"
	RoleAgent     = "agent"
	RoleAdmin     = "admin"
)
