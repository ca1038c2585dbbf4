package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	st, err := NewStore(t.TempDir())
	require.NoError(t, err)

	u := User{
		ID:               "u1",
		FirstName:        "Basile",
		LastName:         "Ndong",
		Email:            "basile@example.ga",
		Phone:            "+241 06 00 00 00",
		BirthDate:        "1990-04-12",
		Address:          "Libreville",
		RegistrationDate: "2025-11-02T10:00:00Z",
		Password:         "secret",
	}
	require.NoError(t, st.Save(u))

	got, err := st.Load()
	require.NoError(t, err)
	require.Equal(t, u, got)
	require.Equal(t, "Basile Ndong", got.FullName())
}

func TestLoadMissingIsNoSession(t *testing.T) {
	t.Parallel()

	st, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, err = st.Load()
	require.ErrorIs(t, err, ErrNoSession)
}

func TestCorruptRecordForcesLogout(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	st, err := NewStore(dir)
	require.NoError(t, err)

	path := filepath.Join(dir, "currentUser.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err = st.Load()
	require.ErrorIs(t, err, ErrCorrupt)

	// the broken record is gone: next load reports signed out
	_, err = st.Load()
	require.ErrorIs(t, err, ErrNoSession)
}

func TestRecordWithoutIDIsCorrupt(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	st, err := NewStore(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "currentUser.json"), []byte(`{"email":"x@y.z"}`), 0o600))
	_, err = st.Load()
	require.ErrorIs(t, err, ErrCorrupt)
}

func TestClearIsIdempotent(t *testing.T) {
	t.Parallel()

	st, err := NewStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, st.Save(User{ID: "u1"}))
	require.NoError(t, st.Clear())
	require.NoError(t, st.Clear())

	_, err = st.Load()
	require.ErrorIs(t, err, ErrNoSession)
}
