package service

import (
	"context"
	"errors"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/aifolio/backend/internal/models"
	"github.com/aifolio/backend/internal/types"
)

const (
	minPasswordLength = 6
	sessionTokenTTL   = 24 * time.Hour
	verifyTokenTTL    = 24 * time.Hour
	verifyPurpose     = "email_verify"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Mailer sends account mail. Send failures are logged, never surfaced
// to the registering user.
type Mailer interface {
	SendVerificationEmail(user *models.User, token string) error
	SendWelcomeEmail(user *models.User) error
}

type AuthService struct {
	db        *gorm.DB
	jwtSecret string
	mailer    Mailer
}

func NewAuthService(db *gorm.DB, jwtSecret string, mailer Mailer) *AuthService {
	return &AuthService{
		db:        db,
		jwtSecret: jwtSecret,
		mailer:    mailer,
	}
}

// Register validates the input, creates the user and its blank profile
// in one transaction, and returns the new user. The email is stored
// lowercased and trimmed; a duplicate registration for the same
// normalized email fails with ErrEmailTaken.
func (s *AuthService) Register(ctx context.Context, req *types.RegisterRequest) (*models.User, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, validationErr("required", "Missing required fields")
	}
	if len(req.Password) < minPasswordLength {
		return nil, validationErr("password", "Password must be at least %d characters", minPasswordLength)
	}
	if !emailPattern.MatchString(req.Email) {
		return nil, validationErr("email", "Invalid email format")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hash),
	}

	// User and blank profile are one logical unit: a failed profile
	// insert rolls the user back.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			// Lost a race with a concurrent registration for the
			// same email; the unique index is the arbiter.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrEmailTaken
			}
			return err
		}
		profile := models.Profile{
			CreatedBy:  user.ID,
			Name:       user.Name,
			Email:      user.Email,
			Skills:     models.StringArray{},
			Education:  models.EducationList{},
			Experience: models.ExperienceList{},
			Projects:   models.ProjectList{},
		}
		return tx.Create(&profile).Error
	})
	if err != nil {
		return nil, err
	}

	if s.mailer != nil {
		token, err := s.GenerateVerificationToken(user.ID)
		if err == nil {
			err = s.mailer.SendVerificationEmail(&user, token)
		}
		if err != nil {
			log.Printf("[AuthService] verification email for %s not sent: %v", user.Email, err)
		}
	}

	return &user, nil
}

// Login checks the credentials and returns a signed session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	var user models.User
	normalized := strings.ToLower(strings.TrimSpace(email))
	if err := s.db.WithContext(ctx).Where("email = ?", normalized).First(&user).Error; err != nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.GenerateToken(&user)
}

// GenerateToken signs a session token carrying the user's identity.
func (s *AuthService) GenerateToken(user *models.User) (string, error) {
	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// sessionClaims widens TokenClaims with the purpose claim carried by
// verification tokens, so ValidateToken can tell the two kinds apart.
type sessionClaims struct {
	types.TokenClaims
	Purpose string `json:"purpose,omitempty"`
}

// ValidateToken parses and verifies a session token. Verification
// tokens share the signing key but carry a purpose claim; they are not
// session credentials and fail here.
func (s *AuthService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Purpose != "" {
		return nil, ErrInvalidToken
	}
	if claims.UserID == uuid.Nil {
		return nil, ErrInvalidToken
	}
	return &claims.TokenClaims, nil
}

// GenerateVerificationToken issues a short-lived token that proves
// ownership of the registered email address.
func (s *AuthService) GenerateVerificationToken(userID uuid.UUID) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"purpose": verifyPurpose,
		"exp":     time.Now().Add(verifyTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// VerifyEmail consumes a verification token and stamps the user's
// email_verified_at. Verifying an already-verified user is a no-op.
func (s *AuthService) VerifyEmail(ctx context.Context, tokenString string) error {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["purpose"] != verifyPurpose {
		return ErrInvalidToken
	}
	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return ErrInvalidToken
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return ErrInvalidToken
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		return ErrUserNotFound
	}
	if user.EmailVerifiedAt != nil {
		return nil
	}

	now := time.Now()
	if err := s.db.WithContext(ctx).Model(&user).Update("email_verified_at", &now).Error; err != nil {
		return err
	}

	if s.mailer != nil {
		if err := s.mailer.SendWelcomeEmail(&user); err != nil {
			log.Printf("[AuthService] welcome email for %s not sent: %v", user.Email, err)
		}
	}
	return nil
}

// GetUserByID loads a user by id.
func (s *AuthService) GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
