package auth

// Role is the caller's access level on the admin surface.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleUploader Role = "UPLOADER"
	RoleViewer   Role = "VIEWER"
)

// Common interface for JWT and API-key callers.
type UserClaims interface {
	Subject() string
	Role() Role
	Source() string
	HasPermission(action string) bool
}

// writeActions need more than viewer access.
var writeActions = map[string]Role{
	"ingest":   RoleUploader,
	"records":  RoleAdmin,
	"schedule": RoleAdmin,
	"share":    RoleAdmin,
}

func allows(role Role, action string) bool {
	required, ok := writeActions[action]
	if !ok {
		return true
	}
	switch role {
	case RoleAdmin:
		return true
	case RoleUploader:
		return required == RoleUploader
	default:
		return false
	}
}

type JWTClaims struct {
	SubjectValue string
	RoleValue    Role
}

func (c *JWTClaims) Subject() string { return c.SubjectValue }
func (c *JWTClaims) Role() Role      { return c.RoleValue }
func (c *JWTClaims) Source() string  { return "JWT" }
func (c *JWTClaims) HasPermission(action string) bool {
	return allows(c.RoleValue, action)
}

type APIKeyClaims struct {
	KeyValue  string
	RoleValue Role
}

func (c *APIKeyClaims) Subject() string { return c.KeyValue }
func (c *APIKeyClaims) Role() Role      { return c.RoleValue }
func (c *APIKeyClaims) Source() string  { return "API_KEY" }
func (c *APIKeyClaims) HasPermission(action string) bool {
	return allows(c.RoleValue, action)
}
