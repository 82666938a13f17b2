package classify

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newDefaultClassifier() *Classifier {
	return New(Rules{Groups: DefaultGroups()})
}

func TestClassifyFiles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		entry      string
		want       Category
		wantReason string
	}{
		{name: "audio lower case", entry: "song.mp3", want: Music, wantReason: "audio file"},
		{name: "audio upper case", entry: "song.MP3", want: Music, wantReason: "audio file"},
		{name: "audio mixed case", entry: "song.Flac", want: Music, wantReason: "audio file"},
		{name: "video", entry: "clip.mp4", want: Videos, wantReason: "video file"},
		{name: "ogg is video", entry: "clip.ogg", want: Videos, wantReason: "video file"},
		{name: "image", entry: "photo.png", want: Images, wantReason: "image file"},
		{name: "image upper case", entry: "IMG_0001.JPG", want: Images, wantReason: "image file"},
		{name: "application", entry: "setup.exe", want: Applications, wantReason: "application file"},
		{name: "application jar", entry: "tool.JAR", want: Applications, wantReason: "application file"},
		{name: "schoolwork document", entry: "report_CSC101.pdf", want: Schoolwork, wantReason: "schoolwork document file"},
		{name: "schoolwork upper extension", entry: "MAT223 notes.DOCX", want: Schoolwork, wantReason: "schoolwork document file"},
		{name: "schoolwork archive", entry: "ECE244-lab1.zip", want: Schoolwork, wantReason: "schoolwork archive"},
		{name: "plain document", entry: "invoice.pdf", want: MiscDocs, wantReason: "misc document file/folder"},
		{name: "plain archive", entry: "archive.zip", want: MiscDocs, wantReason: "misc document file/folder"},
		{name: "unknown extension", entry: "misc.dat", want: MiscDocs, wantReason: "misc document file/folder"},
		{name: "lower case course code is not schoolwork", entry: "csc101.pdf", want: MiscDocs, wantReason: "misc document file/folder"},
		{name: "pattern without document extension", entry: "CSC101.dat", want: MiscDocs, wantReason: "misc document file/folder"},
		{name: "audio wins over pattern", entry: "CSC101 lecture.m4a", want: Music, wantReason: "audio file"},
	}

	classifier := newDefaultClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			decision := classifier.Classify(Entry{Name: tt.entry, Path: "/dl/" + tt.entry})
			assert.Equal(t, tt.want, decision.Category)
			assert.Equal(t, tt.wantReason, decision.Reason)
		})
	}
}

func TestClassifyFolders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		entry string
		want  Category
	}{
		{name: "course folder", entry: "CSC101", want: Schoolwork},
		{name: "course folder with words", entry: "Fall PHY131 labs", want: Schoolwork},
		{name: "plain folder", entry: "stuff", want: MiscDocs},
		{name: "folder with audio-like name", entry: "album.mp3", want: MiscDocs},
		{name: "folder with course code and extension", entry: "CSC101.zip", want: Schoolwork},
	}

	classifier := newDefaultClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			decision := classifier.Classify(Entry{Name: tt.entry, IsDir: true})
			assert.Equal(t, tt.want, decision.Category)
		})
	}
}

func TestFirstGroupWins(t *testing.T) {
	t.Parallel()

	groups := DefaultGroups()
	groups.Video = append(groups.Video, ".mp3")

	decision := New(Rules{Groups: groups}).Classify(Entry{Name: "ambiguous.mp3"})
	assert.Equal(t, Music, decision.Category)
}

func TestSuffixNormalization(t *testing.T) {
	t.Parallel()

	groups := Groups{Audio: []string{"MP3", " .Wav ", ""}}
	classifier := New(Rules{Groups: groups})

	assert.Equal(t, Music, classifier.Classify(Entry{Name: "a.mp3"}).Category)
	assert.Equal(t, Music, classifier.Classify(Entry{Name: "b.WAV"}).Category)
	assert.Equal(t, MiscDocs, classifier.Classify(Entry{Name: "amp3"}).Category)
}

func TestCustomSchoolworkPattern(t *testing.T) {
	t.Parallel()

	classifier := New(Rules{
		Groups:     DefaultGroups(),
		Schoolwork: regexp.MustCompile(`^HW\d+`),
	})

	assert.Equal(t, Schoolwork, classifier.Classify(Entry{Name: "HW3.pdf"}).Category)
	assert.Equal(t, MiscDocs, classifier.Classify(Entry{Name: "CSC101.pdf"}).Category)
}

func TestHasSuffix(t *testing.T) {
	t.Parallel()

	assert.True(t, HasSuffix("movie.mkv.PART", ".part"))
	assert.True(t, HasSuffix("file.crdownload", ".CRDOWNLOAD"))
	assert.False(t, HasSuffix("partial.txt", ".part"))
}
