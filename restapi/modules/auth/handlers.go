// Package auth provides authentication handlers for Fiber.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/salescope/sales-backend/database"
	"github.com/salescope/sales-backend/model"
)

// ============================================================================
// AUTH HANDLERS
// ============================================================================

// Login handles user login and sets auth cookie
func Login(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req LoginRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}

		if req.Email == "" || req.Password == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email and password are required"})
		}

		ctx := c.Context()
		user, err := GetUserByEmail(ctx, db, req.Email)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
		}

		if !user.IsActive {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Account is inactive"})
		}

		if !CheckPasswordHash(req.Password, user.PasswordHash) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
		}

		token, err := GenerateJWT(user.Key, user.Email, user.Role)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate token"})
		}

		SetAuthCookie(c, token)

		return c.JSON(fiber.Map{
			"message": "Login successful",
			"user": UserResponse{
				Key:        user.Key,
				Email:      user.Email,
				Name:       user.Name,
				Role:       user.Role,
				Department: user.Department,
			},
		})
	}
}

// Logout clears the auth cookie
func Logout() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Cookie(&fiber.Cookie{
			Name:     "auth_token",
			Value:    "",
			Expires:  time.Now().Add(-1 * time.Hour),
			MaxAge:   -1,
			HTTPOnly: true,
			Secure:   false,
			SameSite: "Lax",
			Path:     "/",
		})
		return c.JSON(fiber.Map{"message": "Logged out successfully"})
	}
}

// Me returns current authenticated user info
func Me(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userKey, ok := c.Locals("user_id").(string)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not authenticated"})
		}

		ctx := c.Context()
		user, err := GetUserByKey(ctx, db, userKey)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch user profile"})
		}

		return c.JSON(UserResponse{
			Key:        user.Key,
			Email:      user.Email,
			Name:       user.Name,
			Role:       user.Role,
			Department: user.Department,
		})
	}
}

// ChangePassword handles password change
func ChangePassword(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userKey, ok := c.Locals("user_id").(string)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authentication required"})
		}

		var req struct {
			OldPassword string `json:"old_password"`
			NewPassword string `json:"new_password"`
		}

		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}

		if err := ValidatePasswordStrength(req.NewPassword); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		ctx := c.Context()
		user, err := GetUserByKey(ctx, db, userKey)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to get user"})
		}

		if !CheckPasswordHash(req.OldPassword, user.PasswordHash) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid old password"})
		}

		newHash, err := HashPassword(req.NewPassword)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash password"})
		}

		user.PasswordHash = newHash
		user.UpdatedAt = time.Now()

		if err := updateUser(ctx, db, user); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update password"})
		}

		return c.JSON(fiber.Map{"message": "Password changed successfully"})
	}
}

// RefreshToken refreshes JWT token
func RefreshToken() fiber.Handler {
	return func(c *fiber.Ctx) error {
		oldToken := c.Cookies("auth_token")
		if oldToken == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "No token to refresh"})
		}

		newToken, err := RefreshJWT(oldToken)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		SetAuthCookie(c, newToken)
		return c.JSON(fiber.Map{"message": "Token refreshed successfully"})
	}
}

// ============================================================================
// USER MANAGEMENT (ADMIN)
// ============================================================================

// ListUsers lists all users
func ListUsers(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.Context()
		users, err := database.AllUsers(ctx, db)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list users"})
		}

		userList := make([]fiber.Map, len(users))
		for i, user := range users {
			userList[i] = fiber.Map{
				"_key":       user.Key,
				"email":      user.Email,
				"name":       user.Name,
				"role":       user.Role,
				"department": user.Department,
				"is_active":  user.IsActive,
			}
		}

		return c.JSON(fiber.Map{
			"users": userList,
			"total": len(userList),
		})
	}
}

// CreateUser creates a new user
func CreateUser(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			Email      string `json:"email"`
			Name       string `json:"name"`
			Password   string `json:"password"`
			Role       string `json:"role"`
			Department string `json:"department"`
		}

		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}

		if req.Email == "" || req.Name == "" || req.Password == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email, name, and password are required"})
		}

		if err := ValidatePasswordStrength(req.Password); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		if req.Role == "" {
			req.Role = "member"
		}

		ctx := c.Context()
		if _, err := GetUserByEmail(ctx, db, req.Email); err == nil {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email already exists"})
		}

		passwordHash, err := HashPassword(req.Password)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash password"})
		}

		user := model.NewUser(req.Email, req.Name, req.Role)
		user.PasswordHash = passwordHash
		user.Department = req.Department

		if err := createUser(ctx, db, user); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create user"})
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "User created successfully",
			"user": fiber.Map{
				"email":      user.Email,
				"name":       user.Name,
				"role":       user.Role,
				"department": user.Department,
			},
		})
	}
}

// GetUser retrieves a user by key
func GetUser(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Params("key")
		ctx := c.Context()

		user, err := GetUserByKey(ctx, db, key)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}

		return c.JSON(fiber.Map{
			"user": fiber.Map{
				"_key":       user.Key,
				"email":      user.Email,
				"name":       user.Name,
				"role":       user.Role,
				"department": user.Department,
				"is_active":  user.IsActive,
			},
		})
	}
}

// UpdateUser updates a user
func UpdateUser(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Params("key")

		var req struct {
			Email      string  `json:"email"`
			Name       string  `json:"name"`
			Role       string  `json:"role"`
			Department *string `json:"department"`
			IsActive   *bool   `json:"is_active"`
		}

		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}

		ctx := c.Context()
		user, err := GetUserByKey(ctx, db, key)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}

		if req.Email != "" {
			user.Email = req.Email
		}
		if req.Name != "" {
			user.Name = req.Name
		}
		if req.Role != "" {
			user.Role = req.Role
		}
		if req.Department != nil {
			user.Department = *req.Department
		}
		if req.IsActive != nil {
			user.IsActive = *req.IsActive
		}
		user.UpdatedAt = time.Now()

		if err := updateUser(ctx, db, user); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update user"})
		}

		return c.JSON(fiber.Map{
			"message": "User updated successfully",
			"user": fiber.Map{
				"_key":       user.Key,
				"email":      user.Email,
				"name":       user.Name,
				"role":       user.Role,
				"department": user.Department,
				"is_active":  user.IsActive,
			},
		})
	}
}

// DeleteUser deletes a user
func DeleteUser(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Params("key")
		currentUser, ok := c.Locals("user_id").(string)
		if ok && currentUser == key {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot delete your own account"})
		}

		ctx := c.Context()
		if err := deleteUser(ctx, db, key); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete user"})
		}

		return c.JSON(fiber.Map{"message": "User deleted successfully"})
	}
}

// ============================================================================
// HELPER FUNCTIONS
// ============================================================================

// SetAuthCookie sets the authentication cookie for a user session.
func SetAuthCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     "auth_token",
		Value:    token,
		HTTPOnly: true,
		Secure:   false,
		SameSite: "Lax",
		MaxAge:   86400,
		Path:     "/",
	})
}

// GetUserByEmail looks a user up by email, case-insensitively
func GetUserByEmail(ctx context.Context, db database.DBConnection, email string) (*model.User, error) {
	query := `FOR u IN users FILTER LOWER(u.email) == LOWER(@email) LIMIT 1 RETURN u`
	user, found, err := database.QueryOne[model.User](ctx, db, query, map[string]interface{}{"email": email})
	if err != nil || !found {
		return nil, fmt.Errorf("user not found")
	}
	return &user, nil
}

// GetUserByKey looks a user up by document key
func GetUserByKey(ctx context.Context, db database.DBConnection, key string) (*model.User, error) {
	query := `FOR u IN users FILTER u._key == @key LIMIT 1 RETURN u`
	user, found, err := database.QueryOne[model.User](ctx, db, query, map[string]interface{}{"key": key})
	if err != nil || !found {
		return nil, fmt.Errorf("user not found")
	}
	return &user, nil
}

func createUser(ctx context.Context, db database.DBConnection, user *model.User) error {
	query := `
		INSERT {
			email: @email,
			name: @name,
			password_hash: @password_hash,
			role: @role,
			department: @department,
			is_active: @is_active,
			created_at: @created_at,
			updated_at: @updated_at
		} INTO users
	`
	return database.Exec(ctx, db, query, map[string]interface{}{
		"email":         user.Email,
		"name":          user.Name,
		"password_hash": user.PasswordHash,
		"role":          user.Role,
		"department":    user.Department,
		"is_active":     user.IsActive,
		"created_at":    user.CreatedAt,
		"updated_at":    user.UpdatedAt,
	})
}

func updateUser(ctx context.Context, db database.DBConnection, user *model.User) error {
	query := `
		FOR u IN users
		FILTER u._key == @key
		UPDATE u WITH {
			email: @email,
			name: @name,
			password_hash: @password_hash,
			role: @role,
			department: @department,
			is_active: @is_active,
			updated_at: @updated_at
		} IN users
	`
	return database.Exec(ctx, db, query, map[string]interface{}{
		"key":           user.Key,
		"email":         user.Email,
		"name":          user.Name,
		"password_hash": user.PasswordHash,
		"role":          user.Role,
		"department":    user.Department,
		"is_active":     user.IsActive,
		"updated_at":    user.UpdatedAt,
	})
}

func deleteUser(ctx context.Context, db database.DBConnection, key string) error {
	query := `FOR u IN users FILTER u._key == @key REMOVE u IN users`
	return database.Exec(ctx, db, query, map[string]interface{}{"key": key})
}
