package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/piwi3910/AtlasPack/internal/engine"
	"github.com/piwi3910/AtlasPack/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// packedTestPacker returns a packer holding a mix of regular, rotated,
// tagged and oversized sprites.
func packedTestPacker(t *testing.T) *engine.Packer[model.Sprite] {
	t.Helper()
	opts := model.DefaultOptions()
	opts.AllowRotation = true
	opts.Tag = true
	p, err := engine.New[model.Sprite](256, 256, 1, opts)
	require.NoError(t, err)

	hero := model.NewSprite("hero", 100, 40, 3)
	hero.Hash = "h-hero"
	icon := model.NewSprite("icon", 16.5, 16.5, 4)
	icon.Tag = "ui"
	banner := model.NewSprite("banner", 600, 20, 1)

	_, err = p.AddArray(model.ExpandSprites([]model.Sprite{hero, icon, banner}))
	require.NoError(t, err)
	return p
}

func TestFormatForPath(t *testing.T) {
	cases := map[string]string{
		"a.json":         FormatJSON,
		"dir/a.JSON":     FormatJSON,
		"a.json.zst":     FormatJSONZstd,
		"a.cbor":         FormatCBOR,
		"a.cbor.zst":     FormatCBORZstd,
		"a.session.cbor": FormatCBOR,
	}
	for path, want := range cases {
		got, err := FormatForPath(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}

	_, err := FormatForPath("a.zip")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestSaveLoadSession_AllFormats(t *testing.T) {
	p := packedTestPacker(t)
	want := NewSession("atlas", p)

	for _, ext := range []string{".json", ".json.zst", ".cbor", ".cbor.zst"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", "session"+ext)
			require.NoError(t, SaveSession(path, want))

			got, err := LoadSession(path)
			require.NoError(t, err)
			if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("session changed on round trip (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMarshalSession_CBORIsDeterministic(t *testing.T) {
	s := NewSession("atlas", packedTestPacker(t))
	a, err := MarshalSession(s, FormatCBOR)
	require.NoError(t, err)
	b, err := MarshalSession(s, FormatCBOR)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestResumePacker_ContinuesPacking(t *testing.T) {
	p := packedTestPacker(t)
	p.Next()
	s := NewSession("atlas", p)

	path := filepath.Join(t.TempDir(), "atlas.cbor.zst")
	require.NoError(t, SaveSession(path, s))
	loaded, err := LoadSession(path)
	require.NoError(t, err)

	resumed, err := ResumePacker(loaded)
	require.NoError(t, err)
	assert.Equal(t, 0, resumed.Cursor(), "resumed bins are open again")
	assert.Equal(t, p.Config(), resumed.Config())
	assert.Len(t, resumed.Bins(), len(p.Bins()))

	// A small untagged sprite fits into the first untagged bin.
	placed, err := resumed.Add(8, 8, model.NewSprite("dot", 8, 8, 1))
	require.NoError(t, err)
	assert.Len(t, resumed.Bins(), len(p.Bins()))
	assert.False(t, placed.Oversized)
}

func TestResumePacker_RejectsCorruptSession(t *testing.T) {
	s := NewSession("atlas", packedTestPacker(t))
	s.Snapshot.Bins[0].Rects[0].X = 10000

	_, err := ResumePacker(s)
	assert.ErrorIs(t, err, engine.ErrInvalidSnapshot)

	s.Config.MaxWidth = 0
	_, err = ResumePacker(s)
	assert.ErrorIs(t, err, engine.ErrInvalidDimension)
}

func TestLoadSession_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadSession(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	_, err = LoadSession(filepath.Join(dir, "unknown.txt"))
	assert.True(t, errors.Is(err, ErrUnknownFormat))

	bad := filepath.Join(dir, "bad.cbor.zst")
	require.NoError(t, os.WriteFile(bad, []byte("not zstd"), 0644))
	_, err = LoadSession(bad)
	assert.Error(t, err)

	noVersion := filepath.Join(dir, "noversion.json")
	require.NoError(t, os.WriteFile(noVersion, []byte(`{"name":"x"}`), 0644))
	_, err = LoadSession(noVersion)
	assert.Error(t, err)
}
