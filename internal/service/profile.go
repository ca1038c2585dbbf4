package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Lo-programmeur/BY-LocationAuto/internal/session"
)

// UserAPI is the slice of the backend client the profile editor needs.
type UserAPI interface {
	UpdateUser(ctx context.Context, u session.User) error
}

// ErrPasswordMismatch blocks a profile update before any network call.
var ErrPasswordMismatch = errors.New("service: les mots de passe ne correspondent pas")

// ProfileEdits carries the editable form fields. NewPassword is applied only
// when non-empty, and then only when it matches its confirmation.
type ProfileEdits struct {
	FirstName          string
	LastName           string
	Email              string
	Phone              string
	BirthDate          string
	Address            string
	NewPassword        string
	ConfirmNewPassword string
}

// Profile updates the account record.
type Profile struct {
	API      UserAPI
	Sessions *session.Store
	Log      *zap.Logger
}

// Update validates, merges the edits into the current record, PUTs the full
// record, and only after the backend acknowledges does it overwrite the
// local session copy. A failed request leaves local state untouched.
func (s *Profile) Update(ctx context.Context, current session.User, edits ProfileEdits) (session.User, error) {
	if edits.NewPassword != "" && edits.NewPassword != edits.ConfirmNewPassword {
		return session.User{}, ErrPasswordMismatch
	}

	updated := current
	updated.FirstName = edits.FirstName
	updated.LastName = edits.LastName
	updated.Email = edits.Email
	updated.Phone = edits.Phone
	updated.BirthDate = edits.BirthDate
	updated.Address = edits.Address
	if edits.NewPassword != "" {
		updated.Password = edits.NewPassword
	}

	if err := s.API.UpdateUser(ctx, updated); err != nil {
		return session.User{}, fmt.Errorf("service: update profile: %w", err)
	}

	if s.Sessions != nil {
		if err := s.Sessions.Save(updated); err != nil {
			return session.User{}, fmt.Errorf("service: persist session: %w", err)
		}
	}
	if s.Log != nil {
		s.Log.Info("profile updated", zap.String("user_id", updated.ID))
	}
	return updated, nil
}
