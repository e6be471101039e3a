package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"firebase.google.com/go/auth"
	"google.golang.org/api/googleapi"
	identitytoolkit "google.golang.org/api/identitytoolkit/v1"
	"google.golang.org/api/option"

	"foodtook_backoffice/pkg/config"
	"foodtook_backoffice/pkg/session"
)

// Auth error codes as reported to clients
const (
	AuthInvalidCredential = "auth/invalid-credential"
	AuthUserNotFound      = "auth/user-not-found"
	AuthTooManyRequests   = "auth/too-many-requests"
	AuthEmailInUse        = "auth/email-already-in-use"
	AuthWeakPassword      = "auth/weak-password"
	AuthUserDisabled      = "auth/user-disabled"
	AuthInvalidToken      = "auth/invalid-id-token"
	AuthUnknown           = "auth/unknown"
)

var authMessages = map[string]string{
	AuthInvalidCredential: "Correo o contraseña incorrectos",
	AuthUserNotFound:      "No existe una cuenta con ese correo",
	AuthTooManyRequests:   "Demasiados intentos. Inténtalo más tarde.",
	AuthEmailInUse:        "Ya existe una cuenta con ese correo",
	AuthWeakPassword:      "La contraseña debe tener al menos 6 caracteres",
	AuthUserDisabled:      "Esta cuenta ha sido deshabilitada",
	AuthInvalidToken:      "Tu sesión expiró. Inicia sesión de nuevo.",
	AuthUnknown:           "Ocurrió un error. Inténtalo de nuevo.",
}

// AuthError is an auth provider failure with a user-facing message
type AuthError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	cause   error
}

func (e *AuthError) Error() string {
	return e.Message
}

func (e *AuthError) Unwrap() error {
	return e.cause
}

// NewAuthError builds an AuthError for a known code; unknown codes get the default message
func NewAuthError(code string, cause error) *AuthError {
	msg, ok := authMessages[code]
	if !ok {
		code, msg = AuthUnknown, authMessages[AuthUnknown]
	}
	return &AuthError{Code: code, Message: msg, cause: cause}
}

// ClassifyAuthError maps Identity Toolkit and Admin SDK errors onto AuthError
func ClassifyAuthError(err error) *AuthError {
	if err == nil {
		return nil
	}
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae
	}
	if auth.IsEmailAlreadyExists(err) {
		return NewAuthError(AuthEmailInUse, err)
	}
	if auth.IsUserNotFound(err) {
		return NewAuthError(AuthUserNotFound, err)
	}

	reason := err.Error()
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		reason = gerr.Message
	}
	switch {
	case strings.HasPrefix(reason, "INVALID_PASSWORD"), strings.HasPrefix(reason, "INVALID_LOGIN_CREDENTIALS"),
		strings.HasPrefix(reason, "INVALID_EMAIL"):
		return NewAuthError(AuthInvalidCredential, err)
	case strings.HasPrefix(reason, "EMAIL_NOT_FOUND"):
		return NewAuthError(AuthUserNotFound, err)
	case strings.HasPrefix(reason, "TOO_MANY_ATTEMPTS_TRY_LATER"):
		return NewAuthError(AuthTooManyRequests, err)
	case strings.HasPrefix(reason, "EMAIL_EXISTS"):
		return NewAuthError(AuthEmailInUse, err)
	case strings.HasPrefix(reason, "WEAK_PASSWORD"), strings.Contains(reason, "at least 6 characters"):
		return NewAuthError(AuthWeakPassword, err)
	case strings.HasPrefix(reason, "USER_DISABLED"):
		return NewAuthError(AuthUserDisabled, err)
	}
	return NewAuthError(AuthUnknown, err)
}

// Identity signs principals in with a password, verifies ID tokens and creates accounts
type Identity struct {
	auth    *auth.Client
	toolkit *identitytoolkit.Service
}

// NewIdentity builds the identity service over the initialized Firebase Auth client
func NewIdentity(ctx context.Context) (*Identity, error) {
	if authClient == nil {
		return nil, fmt.Errorf("firebase auth client not initialized")
	}
	if config.AppConfig.FirebaseAPIKey == "" {
		return nil, fmt.Errorf("FIREBASE_API_KEY not set")
	}
	svc, err := identitytoolkit.NewService(ctx, option.WithAPIKey(config.AppConfig.FirebaseAPIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create identity toolkit client: %w", err)
	}
	return &Identity{auth: authClient, toolkit: svc}, nil
}

// SignIn checks an email/password pair and returns the principal
func (i *Identity) SignIn(ctx context.Context, email, password string) (*session.Principal, error) {
	resp, err := i.toolkit.Accounts.SignInWithPassword(&identitytoolkit.GoogleCloudIdentitytoolkitV1SignInWithPasswordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}).Context(ctx).Do()
	if err != nil {
		return nil, ClassifyAuthError(err)
	}
	// the password response does not say whether the email was verified
	u, err := i.auth.GetUser(ctx, resp.LocalId)
	if err != nil {
		return nil, ClassifyAuthError(err)
	}
	return &session.Principal{UID: resp.LocalId, Email: resp.Email, EmailVerified: u.EmailVerified}, nil
}

// VerifyIDToken checks a client ID token and returns its principal
func (i *Identity) VerifyIDToken(ctx context.Context, idToken string) (*session.Principal, error) {
	tok, err := i.auth.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, NewAuthError(AuthInvalidToken, err)
	}
	email, _ := tok.Claims["email"].(string)
	verified, _ := tok.Claims["email_verified"].(bool)
	return &session.Principal{UID: tok.UID, Email: email, EmailVerified: verified}, nil
}

// EnsureAccount creates an account for email, or signs in when the email is already registered
func (i *Identity) EnsureAccount(ctx context.Context, email, password string) (string, error) {
	params := (&auth.UserToCreate{}).Email(email).Password(password)
	u, err := i.auth.CreateUser(ctx, params)
	if err == nil {
		return u.UID, nil
	}
	if !auth.IsEmailAlreadyExists(err) {
		return "", ClassifyAuthError(err)
	}
	p, err := i.SignIn(ctx, email, password)
	if err != nil {
		return "", err
	}
	return p.UID, nil
}

// MarkEmailVerified flags an existing account's email as verified. It reports false when no
// account uses email.
func MarkEmailVerified(ctx context.Context, email string) (bool, error) {
	if authClient == nil {
		return false, fmt.Errorf("firebase auth client not initialized")
	}
	u, err := authClient.GetUserByEmail(ctx, email)
	if auth.IsUserNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if u.EmailVerified {
		return true, nil
	}
	if _, err := authClient.UpdateUser(ctx, u.UID, (&auth.UserToUpdate{}).EmailVerified(true)); err != nil {
		return false, err
	}
	return true, nil
}
