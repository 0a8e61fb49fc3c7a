package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleOrgYAML = `
departments:
  - name: 第一営業部
    manager: sato@example.com
    members:
      - email: sato@example.com
        name: 佐藤
      - email: suzuki@example.com
        name: 鈴木
        role: member
  - name: 第二営業部
    members:
      - email: tanaka@example.com
        name: 田中
        role: admin
`

func TestLoadOrgConfig(t *testing.T) {
	config, err := LoadOrgConfig(sampleOrgYAML)
	require.NoError(t, err)

	require.Len(t, config.Departments, 2)
	assert.Equal(t, "第一営業部", config.Departments[0].Name)
	assert.Equal(t, "sato@example.com", config.Departments[0].Manager)
	require.Len(t, config.Departments[0].Members, 2)
	assert.Equal(t, "admin", config.Departments[1].Members[0].Role)
}

func TestLoadOrgConfigRejectsInvalidYAML(t *testing.T) {
	_, err := LoadOrgConfig("departments: [:::")
	assert.Error(t, err)
}

func TestValidateOrgConfigMissingMemberName(t *testing.T) {
	_, err := LoadOrgConfig(`
departments:
  - name: 営業部
    members:
      - email: a@example.com
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
}

func TestValidateOrgConfigMissingEmail(t *testing.T) {
	_, err := LoadOrgConfig(`
departments:
  - name: 営業部
    members:
      - name: 名無し
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email is required")
}

func TestValidateOrgConfigDuplicateEmail(t *testing.T) {
	_, err := LoadOrgConfig(`
departments:
  - name: 営業部
    members:
      - email: dup@example.com
        name: A
  - name: 管理部
    members:
      - email: dup@example.com
        name: B
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate email")
}

func TestValidateOrgConfigInvalidRole(t *testing.T) {
	_, err := LoadOrgConfig(`
departments:
  - name: 営業部
    members:
      - email: a@example.com
        name: A
        role: superuser
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid role")
}
