package credentials

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveFromEnvironment(t *testing.T) {
	t.Setenv("TEST_TRANSPORT_APP_ID", "env-id")
	t.Setenv("TEST_TRANSPORT_APP_KEY", "env-key")

	creds, err := Resolve(
		Source{Name: "app_id", EnvironmentName: "TEST_TRANSPORT_APP_ID", FilePath: filepath.Join(t.TempDir(), "missing")},
		Source{Name: "app_key", EnvironmentName: "TEST_TRANSPORT_APP_KEY"},
	)
	require.NoError(t, err)

	assert.Equal(t, "env-id", creds.AppID)
	assert.Equal(t, "env-key", creds.AppKey)
}

func TestResolveEnvironmentBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".transportAppId")
	require.NoError(t, os.WriteFile(path, []byte("file-id\n"), 0o600))
	t.Setenv("TEST_TRANSPORT_APP_ID", "env-id")

	creds, err := Resolve(
		Source{Name: "app_id", EnvironmentName: "TEST_TRANSPORT_APP_ID", FilePath: path},
		Source{Name: "app_key", FilePath: path},
	)
	require.NoError(t, err)

	assert.Equal(t, "env-id", creds.AppID)
	assert.Equal(t, "file-id", creds.AppKey)
}

func TestResolveFallsBackToFile(t *testing.T) {
	directory := t.TempDir()
	idPath := filepath.Join(directory, ".transportAppId")
	keyPath := filepath.Join(directory, ".transportAppKey")
	require.NoError(t, os.WriteFile(idPath, []byte("  file-id \n"), 0o600))
	require.NoError(t, os.WriteFile(keyPath, []byte("file-key"), 0o600))

	creds, err := Resolve(
		Source{Name: "app_id", EnvironmentName: "TEST_TRANSPORT_APP_ID_UNSET", FilePath: idPath},
		Source{Name: "app_key", EnvironmentName: "TEST_TRANSPORT_APP_KEY_UNSET", FilePath: keyPath},
	)
	require.NoError(t, err)

	assert.Equal(t, "file-id", creds.AppID)
	assert.Equal(t, "file-key", creds.AppKey)
}

func TestResolveMissing(t *testing.T) {
	t.Setenv("TEST_TRANSPORT_APP_ID", "env-id")

	_, err := Resolve(
		Source{Name: "app_id", EnvironmentName: "TEST_TRANSPORT_APP_ID"},
		Source{Name: "app_key", EnvironmentName: "TEST_TRANSPORT_APP_KEY_UNSET", FilePath: filepath.Join(t.TempDir(), "missing")},
	)

	assert.ErrorIs(t, err, ErrMissingCredential)
}

func TestResolveEmptyFileIsMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".transportAppKey")
	require.NoError(t, os.WriteFile(path, []byte("\n"), 0o600))
	t.Setenv("TEST_TRANSPORT_APP_ID", "env-id")

	_, err := Resolve(
		Source{Name: "app_id", EnvironmentName: "TEST_TRANSPORT_APP_ID"},
		Source{Name: "app_key", FilePath: path},
	)

	assert.ErrorIs(t, err, ErrMissingCredential)
}
