package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/yungbote/photoshare-backend/internal/data/repos"
	types "github.com/yungbote/photoshare-backend/internal/domain"
	"github.com/yungbote/photoshare-backend/internal/platform/apierr"
	"github.com/yungbote/photoshare-backend/internal/platform/ctxutil"
	"github.com/yungbote/photoshare-backend/internal/platform/dbctx"
	"github.com/yungbote/photoshare-backend/internal/platform/logger"
)

type JWTClaims struct {
	jwt.RegisteredClaims
}

type LoginResult struct {
	Token     string
	SessionID uuid.UUID
	User      *types.User
}

type AuthService interface {
	LoginUser(dbc dbctx.Context, loginName, password string) (*LoginResult, error)
	LogoutUser(dbc dbctx.Context, tokenString string) error
	RequireSession(dbc dbctx.Context, tokenString string) (*ctxutil.RequestData, error)
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	SessionTTL() time.Duration
}

type authService struct {
	log          *logger.Logger
	userRepo     repos.UserRepo
	sessions     SessionStore
	credentials  CredentialChecker
	jwtSecretKey string
	sessionTTL   time.Duration
	now          func() time.Time
}

func NewAuthService(
	log *logger.Logger,
	userRepo repos.UserRepo,
	sessions SessionStore,
	credentials CredentialChecker,
	jwtSecretKey string,
	sessionTTL time.Duration,
) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		log:          serviceLog,
		userRepo:     userRepo,
		sessions:     sessions,
		credentials:  credentials,
		jwtSecretKey: jwtSecretKey,
		sessionTTL:   sessionTTL,
		now:          time.Now,
	}
}

func (as *authService) LoginUser(dbc dbctx.Context, loginName, password string) (*LoginResult, error) {
	const op = "LoginUser"
	if loginName == "" {
		return nil, apierr.InvalidCredential(op)
	}
	users, err := as.userRepo.GetByLoginNames(dbc, []string{loginName})
	if err != nil {
		return nil, apierr.FromStore(op, err)
	}
	if len(users) == 0 || users[0] == nil {
		as.log.Debug("Login rejected", "reason", "unknown_login")
		return nil, apierr.InvalidCredential(op)
	}
	user := users[0]
	if !as.credentials.Matches(user.Password, password) {
		as.log.Debug("Login rejected", "reason", "credential_mismatch", "user_id", user.ID.String())
		return nil, apierr.InvalidCredential(op)
	}

	now := as.now().UTC()
	session := &types.Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		CreatedAt: now,
	}
	if as.sessionTTL > 0 {
		exp := now.Add(as.sessionTTL)
		session.ExpiresAt = &exp
	}
	tok, err := as.generateToken(session)
	if err != nil {
		return nil, apierr.Internal(op, fmt.Errorf("sign session token: %w", err))
	}
	if err := as.sessions.Put(dbc.Ctx, session); err != nil {
		return nil, apierr.Internal(op, err)
	}
	as.log.Info("User logged in", "user_id", user.ID.String(), "session_id", session.ID.String())
	return &LoginResult{Token: tok, SessionID: session.ID, User: user}, nil
}

func (as *authService) LogoutUser(dbc dbctx.Context, tokenString string) error {
	const op = "LogoutUser"
	claims, err := as.parseToken(tokenString)
	if err != nil {
		return apierr.NotAuthenticated(op)
	}
	removed, err := as.sessions.Delete(dbc.Ctx, claims.sessionID)
	if err != nil {
		return apierr.Internal(op, err)
	}
	if !removed {
		return apierr.NotAuthenticated(op)
	}
	as.log.Info("User logged out", "user_id", claims.userID.String(), "session_id", claims.sessionID.String())
	return nil
}

func (as *authService) RequireSession(dbc dbctx.Context, tokenString string) (*ctxutil.RequestData, error) {
	const op = "RequireSession"
	claims, err := as.parseToken(tokenString)
	if err != nil {
		return nil, apierr.Unauthorized(op, err.Error())
	}
	session, err := as.sessions.Get(dbc.Ctx, claims.sessionID)
	if err != nil {
		return nil, apierr.Internal(op, err)
	}
	if session == nil || session.UserID != claims.userID {
		return nil, apierr.Unauthorized(op, "session is not active")
	}
	return &ctxutil.RequestData{
		TokenString: tokenString,
		SessionID:   session.ID,
		UserID:      session.UserID,
	}, nil
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	rd, err := as.RequireSession(dbctx.Context{Ctx: ctx}, tokenString)
	if err != nil {
		return ctx, err
	}
	return ctxutil.WithRequestData(ctx, rd), nil
}

func (as *authService) SessionTTL() time.Duration {
	return as.sessionTTL
}

func (as *authService) generateToken(session *types.Session) (string, error) {
	claims := JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  session.UserID.String(),
			ID:       session.ID.String(),
			IssuedAt: jwt.NewNumericDate(session.CreatedAt),
		},
	}
	if session.ExpiresAt != nil {
		claims.ExpiresAt = jwt.NewNumericDate(*session.ExpiresAt)
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}

type tokenClaims struct {
	userID    uuid.UUID
	sessionID uuid.UUID
}

var errMissingToken = errors.New("missing token")

// parseToken checks the signature before the session store is consulted.
func (as *authService) parseToken(tokenString string) (*tokenClaims, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, errMissingToken
	}
	parsed, err := jwt.ParseWithClaims(
		tokenString,
		&JWTClaims{},
		func(token *jwt.Token) (interface{}, error) {
			return []byte(as.jwtSecretKey), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	claims, ok := parsed.Claims.(*JWTClaims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("invalid user id in token: %w", err)
	}
	sessionID, err := uuid.Parse(claims.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid session id in token: %w", err)
	}
	return &tokenClaims{userID: userID, sessionID: sessionID}, nil
}
