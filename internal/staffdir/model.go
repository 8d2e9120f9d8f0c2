// Package staffdir implements the staff directory: the key-value
// mapping from staff_id to role the engine presupposes but never
// touches directly (spec.md §6). Unlike the reservation ledger, the
// directory is backed by Postgres via GORM, since staff records are
// low-volume, long-lived, and benefit from a real schema and audit
// trail rather than a flat file.
package staffdir

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Role is a staff member's authorization level.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleRegular Role = "REGULAR"
)

// Valid reports whether r is one of the two recognized roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleRegular
}

// Staff is one staff directory entry.
type Staff struct {
	StaffID      string `gorm:"primaryKey;size:64"`
	PasswordHash string `gorm:"not null;size:255"`
	Role         Role   `gorm:"type:varchar(20);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`

	// AuditLog records creation, role changes and resource grants as a
	// JSON array, supplementing user_management.py's flat JSON store
	// with a queryable trail instead of overwriting the record in place.
	// Logins are not recorded.
	AuditLog datatypes.JSON `gorm:"type:jsonb"`

	// PermittedResources lists the resource types this staff member has
	// been granted. Admins are granted every resource at creation;
	// regular staff start with none and are granted resources
	// individually. The reservation handlers do not consult this list.
	PermittedResources pq.StringArray `gorm:"type:text[]"`
}

// TableName returns the table name for Staff.
func (Staff) TableName() string {
	return "staff"
}

// AuditEvent is one entry appended to Staff.AuditLog.
type AuditEvent struct {
	Action    string    `json:"action"`
	ActorID   string    `json:"actor_id"`
	Timestamp time.Time `json:"timestamp"`
}

// allResources names every resource type a staff member can be granted
// authority over, mirroring domain.Resources without importing it, to
// keep the staff directory's schema free of the reservation domain.
var allResources = []string{"workshop", "microvac", "irradiator", "extruder", "hvc", "harvester"}

// defaultPermittedResources grants admins every resource at creation
// and leaves regular staff with none, requiring an explicit grant.
func defaultPermittedResources(role Role) pq.StringArray {
	if role == RoleAdmin {
		return pq.StringArray(allResources)
	}
	return pq.StringArray{}
}
