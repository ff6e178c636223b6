package services

import (
	"context"
	"regexp"
	"strings"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Identity is a user vouched for by an external identity provider
type Identity struct {
	UID   string
	Email string
	Name  string
}

// IdentityVerifier checks an external ID token such as a Firebase one
type IdentityVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*Identity, error)
}

// AuthResult is what a successful register or login hands back
type AuthResult struct {
	User   *models.User
	Tokens models.TokenPair
}

type AuthService struct {
	store    repositories.Store
	tokens   *TokenService
	verifier IdentityVerifier
}

// NewAuthService creates an AuthService. verifier may be nil, which disables
// external identity login.
func NewAuthService(store repositories.Store, tokens *TokenService, verifier IdentityVerifier) *AuthService {
	return &AuthService{store: store, tokens: tokens, verifier: verifier}
}

func (s *AuthService) ExternalLoginEnabled() bool { return s.verifier != nil }

func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*AuthResult, error) {
	users := s.store.Users()
	if _, err := users.GetUserByUsername(ctx, req.Username); err == nil {
		return nil, conflictError("Username already exists.")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrap(err, "failed to check username")
	}
	if _, err := users.GetUserByEmail(ctx, req.Email); err == nil {
		return nil, conflictError("Email already exists.")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrap(err, "failed to check email")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}
	user := &models.User{Username: req.Username, Email: req.Email, Password: string(hashed)}
	if err := users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflictError("Username or email already exists.")
		}
		return nil, errors.Wrap(err, "failed to create user")
	}
	return s.issue(user)
}

// Login checks the password against the stored bcrypt hash. Unknown users
// and wrong passwords look the same to the caller.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*AuthResult, error) {
	user, err := s.store.Users().GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, unauthorizedError("Invalid username or password.")
		}
		return nil, errors.Wrap(err, "failed to load user")
	}
	if user.Password == "" || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, unauthorizedError("Invalid username or password.")
	}
	return s.issue(user)
}

func (s *AuthService) Logout(ctx context.Context, actorID uint, refresh string) error {
	return s.tokens.Revoke(ctx, actorID, refresh)
}

func (s *AuthService) Refresh(ctx context.Context, refresh string) (string, error) {
	return s.tokens.Refresh(ctx, refresh)
}

// ExternalLogin signs in with a verified external identity. The account is
// found by provider uid, then by email (linking the uid), and created
// otherwise.
func (s *AuthService) ExternalLogin(ctx context.Context, idToken string) (*AuthResult, error) {
	if s.verifier == nil {
		return nil, notFoundError("External login is not configured")
	}
	identity, err := s.verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, unauthorizedError("Invalid ID token")
	}

	users := s.store.Users()
	user, err := users.GetUserByFirebaseUID(ctx, identity.UID)
	if err == nil {
		return s.issue(user)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrap(err, "failed to load user")
	}

	if identity.Email != "" {
		user, err = users.GetUserByEmail(ctx, identity.Email)
		switch {
		case err == nil:
			uid := identity.UID
			user.FirebaseUID = &uid
			if err := users.UpdateUser(ctx, user); err != nil {
				return nil, errors.Wrap(err, "failed to link external identity")
			}
			return s.issue(user)
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, errors.Wrap(err, "failed to load user")
		}
	}

	uid := identity.UID
	user = &models.User{
		Username:    s.availableUsername(ctx, identity),
		Email:       identity.Email,
		FirebaseUID: &uid,
	}
	if user.Email == "" {
		user.Email = uid + "@users.noreply"
	}
	if err := users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflictError("An account for this identity already exists.")
		}
		return nil, errors.Wrap(err, "failed to create user")
	}
	return s.issue(user)
}

var nonUsernameChars = regexp.MustCompile(`[^\p{L}\p{N}_]+`)

// availableUsername derives a username from the identity and appends a short
// random suffix while the name is taken.
func (s *AuthService) availableUsername(ctx context.Context, identity *Identity) string {
	base := identity.Name
	if base == "" {
		base, _, _ = strings.Cut(identity.Email, "@")
	}
	base = nonUsernameChars.ReplaceAllString(base, "_")
	base = strings.Trim(base, "_")
	if len(base) < 3 {
		base = "user"
	}
	if len(base) > 140 {
		base = base[:140]
	}

	candidate := base
	for i := 0; i < 5; i++ {
		if _, err := s.store.Users().GetUserByUsername(ctx, candidate); errors.Is(err, gorm.ErrRecordNotFound) {
			return candidate
		}
		candidate = base + "_" + uuid.New().String()[:8]
	}
	return candidate
}

func (s *AuthService) issue(user *models.User) (*AuthResult, error) {
	tokens, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Tokens: tokens}, nil
}
