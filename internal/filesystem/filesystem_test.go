package filesystem

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	testutil "github.com/wizzomafizzo/sortdl/internal/testing"
)

func TestSplitExt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		wantBase string
		wantExt  string
	}{
		{name: "simple", input: "a.txt", wantBase: "a", wantExt: ".txt"},
		{name: "double extension", input: "archive.tar.gz", wantBase: "archive.tar", wantExt: ".gz"},
		{name: "no extension", input: "CSC101", wantBase: "CSC101", wantExt: ""},
		{name: "dot file", input: ".bashrc", wantBase: ".bashrc", wantExt: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			base, ext := SplitExt(tt.input)
			assert.Equal(t, tt.wantBase, base)
			assert.Equal(t, tt.wantExt, ext)
		})
	}
}

func TestExists(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	testutil.WriteTree(t, fs, "/dl", "a.txt")

	exists, err := Exists(fs, "/dl/a.txt")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = Exists(fs, "/dl/missing.txt")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUniqueName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		existing []string
		input    string
		want     string
	}{
		{name: "free name unchanged", existing: nil, input: "a.txt", want: "a.txt"},
		{name: "first collision", existing: []string{"a.txt"}, input: "a.txt", want: "a(1).txt"},
		{name: "skips taken counters", existing: []string{"a.txt", "a(1).txt", "a(2).txt"}, input: "a.txt", want: "a(3).txt"},
		{name: "folder without extension", existing: []string{"CSC101/"}, input: "CSC101", want: "CSC101(1)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fs := afero.NewMemMapFs()
			testutil.WriteTree(t, fs, "/dest", tt.existing...)

			got, err := UniqueName(fs, "/dest", tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCopyTreeFile(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	testutil.WriteTree(t, fs, "/dl", "song.mp3", "Music/")

	require.NoError(t, CopyTree(fs, "/dl/song.mp3", "/dl/Music/song.mp3"))
	assert.Equal(t, "song.mp3", testutil.ReadString(t, fs, "/dl/Music/song.mp3"))
	assert.Equal(t, "song.mp3", testutil.ReadString(t, fs, "/dl/song.mp3"))
}

func TestCopyTreeDirectory(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	testutil.WriteTree(t, fs, "/dl", "MAT137/a.pdf", "MAT137/week2/b.pdf", "Schoolwork/")

	require.NoError(t, CopyTree(fs, "/dl/MAT137", "/dl/Schoolwork/MAT137"))
	assert.Equal(t, "MAT137/a.pdf", testutil.ReadString(t, fs, "/dl/Schoolwork/MAT137/a.pdf"))
	assert.Equal(t, "MAT137/week2/b.pdf", testutil.ReadString(t, fs, "/dl/Schoolwork/MAT137/week2/b.pdf"))
}

func TestCopyTreeRefusesExistingTarget(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	testutil.WriteTree(t, fs, "/dl", "a.txt", "Misc_Documents/a.txt", "MAT137/x.pdf", "Schoolwork/MAT137/y.pdf")

	require.Error(t, CopyTree(fs, "/dl/a.txt", "/dl/Misc_Documents/a.txt"))
	assert.Equal(t, "Misc_Documents/a.txt", testutil.ReadString(t, fs, "/dl/Misc_Documents/a.txt"))

	require.Error(t, CopyTree(fs, "/dl/MAT137", "/dl/Schoolwork/MAT137"))
	assert.Equal(t, "Schoolwork/MAT137/y.pdf", testutil.ReadString(t, fs, "/dl/Schoolwork/MAT137/y.pdf"))
}
