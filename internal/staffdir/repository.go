package staffdir

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a staff_id has no directory entry.
var ErrNotFound = errors.New("staff: not found")

// ErrDuplicate is returned when a staff_id is already registered,
// mirroring handle_post_user's 409 in
// original_source/server/user_management.py.
var ErrDuplicate = errors.New("staff: staff_id already exists")

// Repository is the contract for staff directory persistence.
type Repository interface {
	Create(staffID, password string, role Role) (Staff, error)
	Get(staffID string) (Staff, error)
	UpdateRole(staffID string, role Role, actorID string) (Staff, error)
	Delete(staffID string, actorID string) error
	VerifyPassword(staffID, password string) (Staff, error)
	GrantResource(staffID, resource string, actorID string) (Staff, error)
}

// GORMRepository implements Repository against a Postgres-backed
// staff table.
type GORMRepository struct {
	db *gorm.DB
}

// NewGORMRepository builds a GORMRepository over db.
func NewGORMRepository(db *gorm.DB) *GORMRepository {
	return &GORMRepository{db: db}
}

// Migrate creates or updates the staff table schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Staff{})
}

func appendAudit(existing []byte, event AuditEvent) ([]byte, error) {
	var events []AuditEvent
	if len(existing) > 0 {
		if err := json.Unmarshal(existing, &events); err != nil {
			return nil, err
		}
	}
	events = append(events, event)
	return json.Marshal(events)
}

// Create registers a new staff member with a bcrypt-hashed password.
func (r *GORMRepository) Create(staffID, password string, role Role) (Staff, error) {
	if !role.Valid() {
		return Staff{}, errors.New("staff: invalid role")
	}
	var existing Staff
	err := r.db.Where("staff_id = ?", staffID).First(&existing).Error
	if err == nil {
		return Staff{}, ErrDuplicate
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return Staff{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Staff{}, err
	}
	audit, err := appendAudit(nil, AuditEvent{Action: "created", ActorID: staffID, Timestamp: time.Now().UTC()})
	if err != nil {
		return Staff{}, err
	}
	staff := Staff{
		StaffID:            staffID,
		PasswordHash:       string(hash),
		Role:               role,
		AuditLog:           audit,
		PermittedResources: defaultPermittedResources(role),
	}
	if err := r.db.Create(&staff).Error; err != nil {
		return Staff{}, err
	}
	return staff, nil
}

// Get returns the staff entry for staffID.
func (r *GORMRepository) Get(staffID string) (Staff, error) {
	var staff Staff
	if err := r.db.Where("staff_id = ?", staffID).First(&staff).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Staff{}, ErrNotFound
		}
		return Staff{}, err
	}
	return staff, nil
}

// UpdateRole changes staffID's role, mirroring handle_put_user in
// original_source/server/user_management.py.
func (r *GORMRepository) UpdateRole(staffID string, role Role, actorID string) (Staff, error) {
	if !role.Valid() {
		return Staff{}, errors.New("staff: invalid role")
	}
	staff, err := r.Get(staffID)
	if err != nil {
		return Staff{}, err
	}
	audit, err := appendAudit(staff.AuditLog, AuditEvent{Action: "role_changed:" + string(role), ActorID: actorID, Timestamp: time.Now().UTC()})
	if err != nil {
		return Staff{}, err
	}
	if err := r.db.Model(&Staff{}).Where("staff_id = ?", staffID).Updates(map[string]interface{}{
		"role":      role,
		"audit_log": audit,
	}).Error; err != nil {
		return Staff{}, err
	}
	staff.Role = role
	staff.AuditLog = audit
	return staff, nil
}

// Delete removes a staff directory entry.
func (r *GORMRepository) Delete(staffID string, actorID string) error {
	result := r.db.Where("staff_id = ?", staffID).Delete(&Staff{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GrantResource adds resource to staffID's permitted resources, if not
// already present, and records the grant in the audit log.
func (r *GORMRepository) GrantResource(staffID, resource string, actorID string) (Staff, error) {
	staff, err := r.Get(staffID)
	if err != nil {
		return Staff{}, err
	}
	for _, existing := range staff.PermittedResources {
		if existing == resource {
			return staff, nil
		}
	}
	granted := append(pq.StringArray{}, staff.PermittedResources...)
	granted = append(granted, resource)

	audit, err := appendAudit(staff.AuditLog, AuditEvent{Action: "resource_granted:" + resource, ActorID: actorID, Timestamp: time.Now().UTC()})
	if err != nil {
		return Staff{}, err
	}
	if err := r.db.Model(&Staff{}).Where("staff_id = ?", staffID).Updates(map[string]interface{}{
		"permitted_resources": granted,
		"audit_log":           audit,
	}).Error; err != nil {
		return Staff{}, err
	}
	staff.PermittedResources = granted
	staff.AuditLog = audit
	return staff, nil
}

// VerifyPassword checks password against staffID's stored hash,
// mirroring the LOGIN branch of handle_user_management_request.
func (r *GORMRepository) VerifyPassword(staffID, password string) (Staff, error) {
	staff, err := r.Get(staffID)
	if err != nil {
		return Staff{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(staff.PasswordHash), []byte(password)); err != nil {
		return Staff{}, errors.New("staff: invalid credentials")
	}
	return staff, nil
}
