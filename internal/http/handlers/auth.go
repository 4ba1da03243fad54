package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	intconfig "hauler/internal/config"
	"hauler/internal/domain/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a bearer token carrying the user's org.
func Login(env intconfig.Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if !BindJSONOrError(c, &req) {
			return
		}

		var (
			user         models.User
			passwordHash string
		)
		err := intconfig.DB.QueryRow(`
			SELECT id, name, username, email, COALESCE(phone, ''), password_hash,
				COALESCE(role, 'dispatcher'), COALESCE(status, 'active'), org_id
			FROM users
			WHERE email = ? OR username = ?
		`, req.Email, req.Email).Scan(
			&user.ID,
			&user.Name,
			&user.Username,
			&user.Email,
			&user.Phone,
			&passwordHash,
			&user.Role,
			&user.Status,
			&user.OrgID,
		)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				RespondError(c, http.StatusUnauthorized, "wrong email/username or password", nil)
			} else {
				RespondError(c, http.StatusInternalServerError, "user lookup failed", err)
			}
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(req.Password)); err != nil {
			RespondError(c, http.StatusUnauthorized, "wrong email/username or password", nil)
			return
		}

		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id": user.ID,
			"org_id":  user.OrgID,
			"role":    user.Role,
			"exp":     time.Now().Add(24 * time.Hour).Unix(),
		})
		tokenString, err := token.SignedString([]byte(env.JWTSecret))
		if err != nil {
			RespondError(c, http.StatusInternalServerError, "failed to sign token", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"token": tokenString,
			"user":  user,
		})
	}
}

type registerRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	OrgID    int64  `json:"org_id"`
}

// Register creates a user account inside an organization.
func Register(env intconfig.Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if !BindJSONOrError(c, &req) {
			return
		}
		if req.Email == "" || req.Username == "" || req.Password == "" {
			RespondError(c, http.StatusBadRequest, "name, username, email and password are required", nil)
			return
		}
		if req.OrgID <= 0 {
			RespondError(c, http.StatusBadRequest, "org_id is required", nil)
			return
		}

		var exists int
		err := intconfig.DB.QueryRow(`
			SELECT COUNT(*)
			FROM users
			WHERE email = ? OR username = ?
		`, req.Email, req.Username).Scan(&exists)
		if err != nil {
			RespondError(c, http.StatusInternalServerError, "user check failed", err)
			return
		}
		if exists > 0 {
			RespondError(c, http.StatusBadRequest, "email or username already registered", nil)
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			RespondError(c, http.StatusInternalServerError, "failed to hash password", err)
			return
		}

		res, err := intconfig.DB.Exec(`
			INSERT INTO users (name, username, email, phone, password_hash, role, status, org_id)
			VALUES (?, ?, ?, ?, ?, 'dispatcher', 'active', ?)
		`, req.Name, req.Username, req.Email, req.Phone, string(hash), req.OrgID)
		if err != nil {
			RespondError(c, http.StatusInternalServerError, "failed to create user", err)
			return
		}
		id, _ := res.LastInsertId()

		c.JSON(http.StatusCreated, gin.H{
			"id":      id,
			"message": "user registered",
		})
	}
}
