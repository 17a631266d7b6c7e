package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/gigboard/internal/apperror"
	"github.com/sakif/gigboard/internal/auth"
	"github.com/sakif/gigboard/internal/model"
	"github.com/sakif/gigboard/internal/repository"
)

// adminSubject is the single identity behind the shared admin password.
const adminSubject = "admin"

// AuthConfig holds the sign-in policy.
type AuthConfig struct {
	// AdminPasswordHash is a bcrypt hash. Empty disables password sign-in.
	AdminPasswordHash string
	// AllowedGitHubLogins may sign in through GitHub, compared without case.
	// Empty means nobody may.
	AllowedGitHubLogins []string
}

// AuthService signs editors in and resolves their sessions.
//
//	AuthHandler → AuthService → EditorRepository (DB)
//	                          ↘ TokenService (JWT), PasswordService (bcrypt)
type AuthService struct {
	editors   repository.EditorRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	adminHash string
	allowed   map[string]bool
	logger    *slog.Logger
}

func NewAuthService(
	editors repository.EditorRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	cfg AuthConfig,
	logger *slog.Logger,
) *AuthService {
	allowed := make(map[string]bool, len(cfg.AllowedGitHubLogins))
	for _, login := range cfg.AllowedGitHubLogins {
		if login = strings.TrimSpace(login); login != "" {
			allowed[strings.ToLower(login)] = true
		}
	}
	return &AuthService{
		editors:   editors,
		tokens:    tokens,
		passwords: passwords,
		adminHash: cfg.AdminPasswordHash,
		allowed:   allowed,
		logger:    logger,
	}
}

// AuthResult is the signed-in editor and the session token to hand back.
type AuthResult struct {
	Editor *model.Editor
	Token  string
}

// LoginWithPassword checks the shared admin password.
func (s *AuthService) LoginWithPassword(ctx context.Context, password string) (*AuthResult, error) {
	if s.adminHash == "" {
		return nil, apperror.Forbidden("password sign-in is disabled")
	}

	if err := s.passwords.Verify(s.adminHash, password); err != nil {
		if errors.Is(err, auth.ErrInvalidPassword) {
			s.logger.Warn("admin password rejected")
			return nil, apperror.Unauthorized("wrong password")
		}
		return nil, fmt.Errorf("service/auth: checking admin password: %w", err)
	}

	return s.signIn(ctx, &model.Editor{
		Provider: model.ProviderPassword,
		Subject:  adminSubject,
		Login:    adminSubject,
	})
}

// LoginOrRegisterGitHub turns a GitHub account into an editor session. The
// account must be on the allow-list; its profile is refreshed on every
// sign-in.
func (s *AuthService) LoginOrRegisterGitHub(ctx context.Context, ghUser *auth.GitHubUser) (*AuthResult, error) {
	if ghUser == nil {
		return nil, errors.New("service/auth: GitHub user must not be nil")
	}
	if !s.allowed[strings.ToLower(ghUser.Login)] {
		s.logger.Warn("GitHub sign-in refused", slog.String("login", ghUser.Login))
		return nil, apperror.Forbidden("GitHub account " + ghUser.Login + " is not an editor")
	}

	return s.signIn(ctx, &model.Editor{
		Provider:  model.ProviderGitHub,
		Subject:   ghUser.Subject(),
		Login:     ghUser.Login,
		Email:     ghUser.Email,
		AvatarURL: ghUser.AvatarURL,
	})
}

func (s *AuthService) signIn(ctx context.Context, editor *model.Editor) (*AuthResult, error) {
	if err := s.editors.UpsertEditor(ctx, editor); err != nil {
		return nil, fmt.Errorf("service/auth: upserting editor %s/%s: %w", editor.Provider, editor.Login, err)
	}

	token, err := s.tokens.Generate(editor.ID)
	if err != nil {
		return nil, fmt.Errorf("service/auth: generating token for editor %s: %w", editor.ID, err)
	}

	s.logger.Info("editor signed in",
		slog.String("editorID", editor.ID),
		slog.String("provider", editor.Provider),
		slog.String("login", editor.Login),
	)
	return &AuthResult{Editor: editor, Token: token}, nil
}

// GetEditor backs /api/me once the middleware has resolved the session.
func (s *AuthService) GetEditor(ctx context.Context, id string) (*model.Editor, error) {
	if id == "" {
		return nil, apperror.Unauthorized("not signed in")
	}
	editor, err := s.editors.GetEditor(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service/auth: fetching editor %s: %w", id, err)
	}
	return editor, nil
}

// ValidateToken returns the editor id a session token was issued to.
func (s *AuthService) ValidateToken(tokenStr string) (string, error) {
	editorID, err := s.tokens.Validate(tokenStr)
	if err != nil {
		return "", fmt.Errorf("service/auth: %w", err)
	}
	return editorID, nil
}
