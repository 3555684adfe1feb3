package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/yt-audio/internal/model"
)

func TestStoreLoad_MissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "nope", PreferencesFileName))

	assert.Equal(t, model.DefaultPreferences(), store.Load())
}

func TestStoreLoad_MalformedContent(t *testing.T) {
	cases := map[string]string{
		"garbage":      "not json at all",
		"truncated":    `{"last_platform": "Youtube", "input_fo`,
		"wrong types":  `{"last_platform": 7, "input_folder": true}`,
		"array":        `["Youtube"]`,
		"empty":        ``,
		"unknown enum": `{"last_platform": "Vimeo"}`,
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), PreferencesFileName)
			require.NoError(t, os.WriteFile(path, []byte(content), 0644))

			assert.Equal(t, model.DefaultPreferences(), NewStore(path).Load())
		})
	}
}

func TestStoreLoad_MissingKeysDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), PreferencesFileName)
	require.NoError(t, os.WriteFile(path, []byte(`{"input_folder": "/music/mp3"}`), 0644))

	prefs := NewStore(path).Load()
	assert.Equal(t, model.PlatformUnselected, prefs.LastPlatform)
	assert.Equal(t, "/music/mp3", prefs.InputDirectory)
	assert.Equal(t, "", prefs.OutputDirectory)
}

func TestStoreLoad_OriginalFileFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), PreferencesFileName)
	content := `{"last_platform": "SoundCloud", "input_folder": "C:/in", "output_folder": "C:/out"}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	prefs := NewStore(path).Load()
	assert.Equal(t, model.Preferences{
		LastPlatform:    model.PlatformSoundCloud,
		InputDirectory:  "C:/in",
		OutputDirectory: "C:/out",
	}, prefs)
}

func TestStoreSaveLoad_RoundTrip(t *testing.T) {
	values := []model.Preferences{
		model.DefaultPreferences(),
		{LastPlatform: model.PlatformYouTube, InputDirectory: "/tmp/in", OutputDirectory: "/tmp/out"},
		{LastPlatform: model.PlatformSoundCloud, InputDirectory: "/с пробелом/входящие", OutputDirectory: ""},
		{LastPlatform: model.PlatformUnselected, InputDirectory: "", OutputDirectory: `C:\Users\me\wav`},
	}

	for _, prefs := range values {
		store := NewStore(filepath.Join(t.TempDir(), "nested", "dir", PreferencesFileName))
		require.NoError(t, store.Save(prefs))
		assert.Equal(t, prefs, store.Load())
	}
}

func TestStoreSave_OverwritesInFull(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(filepath.Join(dir, PreferencesFileName))

	require.NoError(t, store.Save(model.Preferences{
		LastPlatform:    model.PlatformYouTube,
		InputDirectory:  "/first/in",
		OutputDirectory: "/first/out",
	}))
	require.NoError(t, store.Save(model.Preferences{LastPlatform: model.PlatformSoundCloud}))

	assert.Equal(t, model.Preferences{LastPlatform: model.PlatformSoundCloud}, store.Load())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestStoreSave_ParentIsFile(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	err := NewStore(filepath.Join(blocker, PreferencesFileName)).Save(model.DefaultPreferences())
	assert.Error(t, err)
}

func TestDefaultPreferencesPath(t *testing.T) {
	path := DefaultPreferencesPath()
	assert.Equal(t, PreferencesFileName, filepath.Base(path))
	assert.Equal(t, AppDirName, filepath.Base(filepath.Dir(path)))
}
