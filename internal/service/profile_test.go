package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Lo-programmeur/BY-LocationAuto/internal/session"
)

type fakeUserAPI struct {
	puts []session.User
	err  error
}

func (f *fakeUserAPI) UpdateUser(ctx context.Context, u session.User) error {
	f.puts = append(f.puts, u)
	return f.err
}

func currentUser() session.User {
	return session.User{
		ID:        "u1",
		FirstName: "Basile",
		LastName:  "Ndong",
		Email:     "basile@example.ga",
		Password:  "ancien",
	}
}

func edits() ProfileEdits {
	return ProfileEdits{
		FirstName: "Basile",
		LastName:  "Ndong",
		Email:     "nouveau@example.ga",
		Phone:     "+241 06 11 22 33",
		BirthDate: "1990-04-12",
		Address:   "Owendo",
	}
}

func TestUpdateMergesAndPersists(t *testing.T) {
	t.Parallel()

	store, err := session.NewStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Save(currentUser()))

	api := &fakeUserAPI{}
	svc := &Profile{API: api, Sessions: store}

	updated, err := svc.Update(context.Background(), currentUser(), edits())
	require.NoError(t, err)
	require.Equal(t, "nouveau@example.ga", updated.Email)
	require.Equal(t, "Owendo", updated.Address)
	require.Equal(t, "ancien", updated.Password) // unchanged without a new password

	require.Len(t, api.puts, 1)
	require.Equal(t, updated, api.puts[0]) // full record on the wire

	persisted, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, updated, persisted)
}

func TestUpdateChangesPasswordWhenConfirmed(t *testing.T) {
	t.Parallel()

	api := &fakeUserAPI{}
	svc := &Profile{API: api}

	e := edits()
	e.NewPassword = "nouveau-mdp"
	e.ConfirmNewPassword = "nouveau-mdp"

	updated, err := svc.Update(context.Background(), currentUser(), e)
	require.NoError(t, err)
	require.Equal(t, "nouveau-mdp", updated.Password)
}

func TestUpdateMismatchAbortsBeforeNetwork(t *testing.T) {
	t.Parallel()

	store, err := session.NewStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Save(currentUser()))

	api := &fakeUserAPI{}
	svc := &Profile{API: api, Sessions: store}

	e := edits()
	e.NewPassword = "abc"
	e.ConfirmNewPassword = "xyz"

	_, err = svc.Update(context.Background(), currentUser(), e)
	require.ErrorIs(t, err, ErrPasswordMismatch)
	require.Empty(t, api.puts) // no network call happened

	persisted, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, currentUser(), persisted) // session untouched
}

func TestUpdateFailureLeavesSessionUntouched(t *testing.T) {
	t.Parallel()

	store, err := session.NewStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Save(currentUser()))

	api := &fakeUserAPI{err: errors.New("backend down")}
	svc := &Profile{API: api, Sessions: store}

	_, err = svc.Update(context.Background(), currentUser(), edits())
	require.Error(t, err)

	persisted, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, currentUser(), persisted)
}
