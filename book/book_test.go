package book

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabels(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  string
	}{
		{name: "category", label: CategoryDesign.Label(), want: "Arts & Design"},
		{name: "category with dot", label: CategoryMisc.Label(), want: "Misc."},
		{name: "society", label: CategoryPeople.Label(), want: "Society"},
		{name: "unknown category", label: Category("OTHER").Label(), want: "OTHER"},
		{name: "format", label: FormatBD.Label(), want: "B.D."},
		{name: "sheet music", label: FormatSheetMusic.Label(), want: "Sheet music"},
		{name: "multimedia", label: FormatMultimedia.Label(), want: "Mutlimedia"},
		{name: "comments", label: CommentsModerateNotContacts.Label(), want: "Moderate all except contacts"},
		{name: "download", label: DownloadContacts.Label(), want: "Only contacts"},
		{name: "print", label: PrintEveryone.Label(), want: "Everyone"},
		{name: "music", label: MusicOnce.Label(), want: "Play only once"},
		{name: "publishing", label: PublishingPrivate.Label(), want: "Private"},
		{name: "direction", label: RightToLeft.Label(), want: "Right to left"},
		{name: "adult", label: AdultYes.Label(), want: "Yes"},
		{name: "toggle", label: Enabled.Label(), want: "Enabled"},
		{name: "view", label: ViewScroll.Label(), want: "Scroll"},
		{name: "unknown mode", label: CommentsMode(9).Label(), want: "9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.label)
		})
	}
}

func TestValuesRenderAsCodes(t *testing.T) {
	// Requests render values with fmt, which must yield the code.
	assert.Equal(t, "MISC.", fmt.Sprint(CategoryMisc))
	assert.Equal(t, "2", fmt.Sprint(PublishingPrivate))
	assert.Equal(t, "4", fmt.Sprint(CommentsAccept))
	assert.Equal(t, "slide", fmt.Sprint(ViewSlide))
}

func TestVocabularies(t *testing.T) {
	vocabularies := Vocabularies()
	require.Len(t, vocabularies, 15)

	seen := map[string]bool{}
	for _, v := range vocabularies {
		assert.False(t, seen[v.Name], "duplicate vocabulary %s", v.Name)
		seen[v.Name] = true
		assert.NotEmpty(t, v.Field)
		assert.NotEmpty(t, v.Options)
	}

	category, ok := Lookup("category")
	require.True(t, ok)
	assert.Len(t, category.Options, 24)
	assert.True(t, category.Has("TECH"))
	assert.False(t, category.Has("tech"))
	assert.NoError(t, category.Validate("TRAVEL"))
	assert.EqualError(t, category.Validate("SPACE"), `invalid category "SPACE"`)

	format, ok := Lookup("format")
	require.True(t, ok)
	assert.Len(t, format.Options, 16)

	publishing, ok := Lookup("publishing")
	require.True(t, ok)
	label, ok := publishing.Label("1")
	require.True(t, ok)
	assert.Equal(t, "Public", label)
	assert.False(t, publishing.Has("0"))

	_, ok = Lookup("missing")
	assert.False(t, ok)
}
