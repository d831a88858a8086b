package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/rvc-001/planning-sub000/internal/domain/constants"
	"github.com/rvc-001/planning-sub000/internal/domain/entity"
	"github.com/rvc-001/planning-sub000/internal/domain/repository"
)

// ErrInvalidCredentials is returned when the login tab has no matching
// username/password row.
var ErrInvalidCredentials = errors.New("invalid username or password")

// AuthUseCase authenticates against the login tab and manages sessions.
// Every auth initialization is a full-table scan of the tab; there is no
// incremental sync, the sheet is simply small.
type AuthUseCase struct {
	reader   repository.SheetReader
	writer   repository.CommandWriter
	sessions repository.SessionStore
}

func NewAuthUseCase(reader repository.SheetReader, writer repository.CommandWriter, sessions repository.SessionStore) *AuthUseCase {
	return &AuthUseCase{reader: reader, writer: writer, sessions: sessions}
}

func loginID(index int) string {
	return constants.ColumnID(index)
}

// Login scans the login tab for the credentials and issues a session
// token. The password lives as a plain sheet column; hardening it is the
// sheet owner's problem, not this service's.
func (uc *AuthUseCase) Login(ctx context.Context, username, password string) (entity.Session, error) {
	if err := requireFields(map[string]string{
		"username": username,
		"password": password,
	}); err != nil {
		return entity.Session{}, err
	}

	result, err := uc.reader.ReadTab(ctx, constants.TabLogin)
	if err != nil {
		return entity.Session{}, err
	}
	records := NormalizeRows(result)

	for _, rec := range records {
		if rec.Text(loginID(constants.LoginColUsername)) != username {
			continue
		}
		if rec.Text(loginID(constants.LoginColPassword)) != password {
			break
		}
		session := entity.Session{
			Token:     uuid.NewString(),
			User:      buildUser(rec),
			CreatedAt: time.Now(),
		}
		if err := uc.sessions.Save(ctx, session); err != nil {
			return entity.Session{}, err
		}
		return session, nil
	}
	return entity.Session{}, ErrInvalidCredentials
}

// Resolve maps a token to its user, reporting false for unknown or
// expired sessions.
func (uc *AuthUseCase) Resolve(ctx context.Context, token string) (entity.User, bool, error) {
	if token == "" {
		return entity.User{}, false, nil
	}
	session, ok, err := uc.sessions.Get(ctx, token)
	if err != nil || !ok {
		return entity.User{}, false, err
	}
	if time.Since(session.CreatedAt) > constants.SessionTimeoutHours*time.Hour {
		_ = uc.sessions.Delete(ctx, token)
		return entity.User{}, false, nil
	}
	return session.User, true, nil
}

func (uc *AuthUseCase) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return uc.sessions.Delete(ctx, token)
}

// ListUsers returns the login tab without the password column.
func (uc *AuthUseCase) ListUsers(ctx context.Context) ([]entity.User, error) {
	result, err := uc.reader.ReadTab(ctx, constants.TabLogin)
	if err != nil {
		return nil, err
	}
	records := NormalizeRows(result)

	users := make([]entity.User, 0, len(records))
	for _, rec := range records {
		users = append(users, buildUser(rec))
	}
	return users, nil
}

// UserSubmit carries the settings-page user form.
type UserSubmit struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	Password    string   `json:"password"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

func (uc *AuthUseCase) AddUser(ctx context.Context, sub UserSubmit) error {
	if err := requireFields(map[string]string{
		"username": sub.Username,
		"password": sub.Password,
		"role":     sub.Role,
	}); err != nil {
		return err
	}
	user := entity.User{
		ID:          uuid.NewString(),
		Username:    sub.Username,
		Role:        sub.Role,
		Permissions: sub.Permissions,
	}
	return uc.writer.AddUser(ctx, user, sub.Password)
}

func (uc *AuthUseCase) UpdateUser(ctx context.Context, sub UserSubmit) error {
	if err := requireFields(map[string]string{
		"id":       sub.ID,
		"username": sub.Username,
		"role":     sub.Role,
	}); err != nil {
		return err
	}
	user := entity.User{
		ID:          sub.ID,
		Username:    sub.Username,
		Role:        sub.Role,
		Permissions: sub.Permissions,
	}
	return uc.writer.UpdateUser(ctx, user, sub.Password)
}

func (uc *AuthUseCase) DeleteUser(ctx context.Context, userID string) error {
	if err := requireFields(map[string]string{"id": userID}); err != nil {
		return err
	}
	return uc.writer.DeleteUser(ctx, userID)
}

func buildUser(rec entity.Record) entity.User {
	return entity.User{
		ID:          rec.Text(loginID(constants.LoginColID)),
		Username:    rec.Text(loginID(constants.LoginColUsername)),
		Role:        rec.Text(loginID(constants.LoginColRole)),
		Permissions: entity.SplitPermissions(rec.Text(loginID(constants.LoginColPermissions))),
	}
}
