// Package auth provides department/org configuration management.
package auth

import (
	"context"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/salescope/sales-backend/database"
	"github.com/salescope/sales-backend/model"
)

// OrgConfig represents the departments YAML structure. Applying it keeps
// the user collection in sync with the org chart: missing users are
// created (inactive, no password until an admin sets one) and department
// and role assignments are updated in place.
type OrgConfig struct {
	Departments []OrgDepartment `yaml:"departments"`
}

// OrgDepartment is one department and its members
type OrgDepartment struct {
	Name    string      `yaml:"name"`
	Manager string      `yaml:"manager,omitempty"` // manager's email
	Members []OrgMember `yaml:"members"`
}

// OrgMember is one member entry in the config
type OrgMember struct {
	Email string `yaml:"email"`
	Name  string `yaml:"name"`
	Role  string `yaml:"role,omitempty"` // defaults to member
}

// OrgApplyResult tracks the outcome of an org config apply operation
type OrgApplyResult struct {
	Created []string
	Updated []string
	Errors  []string
}

// LoadOrgConfig parses the departments YAML
func LoadOrgConfig(yamlContent string) (*OrgConfig, error) {
	var config OrgConfig
	if err := yaml.Unmarshal([]byte(yamlContent), &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateOrgConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

func validateOrgConfig(config *OrgConfig) error {
	validRoles := map[string]bool{"admin": true, "manager": true, "member": true, "": true}

	seenEmails := make(map[string]bool)
	for _, dept := range config.Departments {
		if dept.Name == "" {
			return fmt.Errorf("department name is required")
		}
		for _, m := range dept.Members {
			if m.Email == "" {
				return fmt.Errorf("email is required for members of %s", dept.Name)
			}
			if m.Name == "" {
				return fmt.Errorf("name is required for user %s", m.Email)
			}
			if seenEmails[m.Email] {
				return fmt.Errorf("duplicate email: %s", m.Email)
			}
			seenEmails[m.Email] = true
			if !validRoles[m.Role] {
				return fmt.Errorf("invalid role '%s' for user %s", m.Role, m.Email)
			}
		}
	}
	return nil
}

// ApplyOrgConfig reconciles the user collection with the YAML configuration
func ApplyOrgConfig(db database.DBConnection, config *OrgConfig) (*OrgApplyResult, error) {
	ctx := context.Background()
	result := &OrgApplyResult{
		Created: []string{},
		Updated: []string{},
		Errors:  []string{},
	}

	for _, dept := range config.Departments {
		for _, m := range dept.Members {
			role := m.Role
			if role == "" {
				role = "member"
			}
			if m.Email == dept.Manager && role == "member" {
				role = "manager"
			}

			existing, err := GetUserByEmail(ctx, db, m.Email)
			if err != nil {
				// New user: created inactive until an admin sets a password.
				user := model.NewUser(m.Email, m.Name, role)
				user.Department = dept.Name
				user.IsActive = false
				if err := createUser(ctx, db, user); err != nil {
					result.Errors = append(result.Errors, fmt.Sprintf("create %s: %v", m.Email, err))
					continue
				}
				result.Created = append(result.Created, m.Email)
				continue
			}

			if existing.Department != dept.Name || existing.Role != role || existing.Name != m.Name {
				existing.Department = dept.Name
				existing.Role = role
				existing.Name = m.Name
				existing.UpdatedAt = time.Now()
				if err := updateUser(ctx, db, existing); err != nil {
					result.Errors = append(result.Errors, fmt.Sprintf("update %s: %v", m.Email, err))
					continue
				}
				result.Updated = append(result.Updated, m.Email)
			}
		}
	}

	return result, nil
}

// ApplyOrgConfigFromFile loads and applies the departments YAML from disk.
// Missing path is not an error; org sync is optional.
func ApplyOrgConfigFromFile(db database.DBConnection, path string) (*OrgApplyResult, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path) // #nosec G304 -- operator-supplied config path
	if err != nil {
		return nil, fmt.Errorf("failed to read org config: %w", err)
	}
	config, err := LoadOrgConfig(string(data))
	if err != nil {
		return nil, err
	}
	return ApplyOrgConfig(db, config)
}

// BootstrapAdmin creates the initial admin account when the user
// collection is empty. Skipped when no admin password is configured.
func BootstrapAdmin(db database.DBConnection, email, password string) error {
	if password == "" {
		return nil
	}

	ctx := context.Background()
	count, _, err := database.QueryOne[int](ctx, db, `RETURN LENGTH(users)`, nil)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}

	admin := model.NewUser(email, "Administrator", "admin")
	admin.PasswordHash = hash
	return createUser(ctx, db, admin)
}
