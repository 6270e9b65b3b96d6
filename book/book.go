package book

import "strconv"

type entry[T comparable] struct {
	code  T
	label string
}

type table[T comparable] []entry[T]

func (t table[T]) label(code T) (string, bool) {
	for _, e := range t {
		if e.code == code {
			return e.label, true
		}
	}
	return "", false
}

// Category is a publication category code.
type Category string

// Categories
const (
	CategoryDesign     Category = "DESIGN"
	CategoryBusiness   Category = "BUSINESS"
	CategoryAuto       Category = "AUTO"
	CategoryCulture    Category = "CULTURE"
	CategorySchool     Category = "SCHOOL"
	CategoryHealth     Category = "HEALTH"
	CategoryHistory    Category = "HISTORY"
	CategoryHumor      Category = "HUMOR"
	CategoryLaw        Category = "LAW"
	CategoryLiterature Category = "LITERATURE"
	CategoryMisc       Category = "MISC."
	CategoryMovies     Category = "MOVIES"
	CategoryMusic      Category = "MUSIC"
	CategoryNature     Category = "NATURE"
	CategoryNews       Category = "NEWS"
	CategoryPolitics   Category = "POLITICS"
	CategoryReligion   Category = "RELIGION"
	CategorySciences   Category = "SCIENCES"
	CategorySexy       Category = "SEXY"
	CategoryPeople     Category = "PEOPLE"
	CategorySports     Category = "SPORTS"
	CategoryTech       Category = "TECH"
	CategoryTravel     Category = "TRAVEL"
	CategoryVideogames Category = "VIDEOGAMES"
)

var categories = table[Category]{
	{CategoryDesign, "Arts & Design"},
	{CategoryBusiness, "Business"},
	{CategoryAuto, "Cars"},
	{CategoryCulture, "Culture"},
	{CategorySchool, "Education"},
	{CategoryHealth, "Health"},
	{CategoryHistory, "History"},
	{CategoryHumor, "Humor"},
	{CategoryLaw, "Law"},
	{CategoryLiterature, "Literature"},
	{CategoryMisc, "Misc."},
	{CategoryMovies, "Movies"},
	{CategoryMusic, "Music"},
	{CategoryNature, "Nature"},
	{CategoryNews, "News"},
	{CategoryPolitics, "Politics"},
	{CategoryReligion, "Religion"},
	{CategorySciences, "Sciences"},
	{CategorySexy, "Sexy"},
	{CategoryPeople, "Society"},
	{CategorySports, "Sports"},
	{CategoryTech, "Technology"},
	{CategoryTravel, "Travels"},
	{CategoryVideogames, "Videogames"},
}

// Label returns the display name of the category.
func (c Category) Label() string {
	if label, ok := categories.label(c); ok {
		return label
	}
	return string(c)
}

// Format is a publication format code.
type Format string

// Formats
const (
	FormatAlbums        Format = "ALBUMS"
	FormatBD            Format = "BD"
	FormatBooks         Format = "BOOKS"
	FormatBrochures     Format = "BROCHURES"
	FormatCatalogs      Format = "CATALOGS"
	FormatComics        Format = "COMICS"
	FormatMagazines     Format = "MAGAZINES"
	FormatMangas        Format = "MANGAS"
	FormatManuals       Format = "MANUALS"
	FormatMisc          Format = "MISC"
	FormatMultimedia    Format = "MULTIMEDIA"
	FormatNewspapers    Format = "NEWSPAPERS"
	FormatNovels        Format = "NOVELS"
	FormatPresentations Format = "PRESENTATIONS"
	FormatReports       Format = "REPORTS"
	FormatSheetMusic    Format = "SHEETMUSIC"
)

var formats = table[Format]{
	{FormatAlbums, "Albums"},
	{FormatBD, "B.D."},
	{FormatBooks, "Books"},
	{FormatBrochures, "Brochures"},
	{FormatCatalogs, "Catalogs"},
	{FormatComics, "Comics"},
	{FormatMagazines, "Magazines"},
	{FormatMangas, "Mangas"},
	{FormatManuals, "Manuals"},
	{FormatMisc, "Misc"},
	// The API's own label carries the typo
	{FormatMultimedia, "Mutlimedia"},
	{FormatNewspapers, "Newspapers"},
	{FormatNovels, "Novels"},
	{FormatPresentations, "Presentations"},
	{FormatReports, "Reports"},
	{FormatSheetMusic, "Sheet music"},
}

// Label returns the display name of the format.
func (f Format) Label() string {
	if label, ok := formats.label(f); ok {
		return label
	}
	return string(f)
}

// AdultMode flags adult content.
type AdultMode int

const (
	AdultNo AdultMode = iota
	AdultYes
)

var adultModes = table[AdultMode]{
	{AdultNo, "No"},
	{AdultYes, "Yes"},
}

func (m AdultMode) Label() string { return intLabel(adultModes, m) }

// CommentsMode controls who may comment on a publication.
type CommentsMode int

const (
	CommentsDisabled CommentsMode = iota
	CommentsModerate
	CommentsModerateNotContacts
	CommentsAcceptContacts
	CommentsAccept
)

var commentsModes = table[CommentsMode]{
	{CommentsDisabled, "Disabled"},
	{CommentsModerate, "Moderate all"},
	{CommentsModerateNotContacts, "Moderate all except contacts"},
	{CommentsAcceptContacts, "Accept only contacts"},
	{CommentsAccept, "Accept all"},
}

func (m CommentsMode) Label() string { return intLabel(commentsModes, m) }

// DownloadMode controls who may download the original document.
type DownloadMode int

const (
	DownloadDisabled DownloadMode = iota
	DownloadContacts
	DownloadEveryone
)

var downloadModes = table[DownloadMode]{
	{DownloadDisabled, "Disabled"},
	{DownloadContacts, "Only contacts"},
	{DownloadEveryone, "Everyone"},
}

func (m DownloadMode) Label() string { return intLabel(downloadModes, m) }

// PrintMode controls who may print the publication.
type PrintMode int

const (
	PrintDisabled PrintMode = iota
	PrintContacts
	PrintEveryone
)

var printModes = table[PrintMode]{
	{PrintDisabled, "Disabled"},
	{PrintContacts, "Only contacts"},
	{PrintEveryone, "Everyone"},
}

func (m PrintMode) Label() string { return intLabel(printModes, m) }

// MusicMode sets how background music plays.
type MusicMode int

const (
	MusicLoop MusicMode = iota
	MusicOnce
)

var musicModes = table[MusicMode]{
	{MusicLoop, "Loop forever"},
	{MusicOnce, "Play only once"},
}

func (m MusicMode) Label() string { return intLabel(musicModes, m) }

// PublishingMode sets the publication's visibility.
type PublishingMode int

const (
	PublishingPublic PublishingMode = iota + 1
	PublishingPrivate
)

var publishingModes = table[PublishingMode]{
	{PublishingPublic, "Public"},
	{PublishingPrivate, "Private"},
}

func (m PublishingMode) Label() string { return intLabel(publishingModes, m) }

// ReadingDirection sets the page turning direction. Right to left is the
// manga mode.
type ReadingDirection int

const (
	LeftToRight ReadingDirection = iota
	RightToLeft
)

var readingDirections = table[ReadingDirection]{
	{LeftToRight, "Left to right"},
	{RightToLeft, "Right to left"},
}

func (d ReadingDirection) Label() string { return intLabel(readingDirections, d) }

// Toggle is an on/off setting. PrivateURL, Published, SfxMode, ShareMenu and
// SubscribersAccess all share it.
type Toggle int

const (
	Disabled Toggle = iota
	Enabled
)

var toggles = table[Toggle]{
	{Disabled, "Disabled"},
	{Enabled, "Enabled"},
}

func (t Toggle) Label() string { return intLabel(toggles, t) }

// ViewMode is the default viewing mode.
type ViewMode string

const (
	ViewBook   ViewMode = "book"
	ViewSlide  ViewMode = "slide"
	ViewScroll ViewMode = "scroll"
)

var viewModes = table[ViewMode]{
	{ViewBook, "Book"},
	{ViewSlide, "Slide"},
	{ViewScroll, "Scroll"},
}

// Label returns the display name of the view mode.
func (m ViewMode) Label() string {
	if label, ok := viewModes.label(m); ok {
		return label
	}
	return string(m)
}

func intLabel[T ~int](t table[T], code T) string {
	if label, ok := t.label(code); ok {
		return label
	}
	return strconv.Itoa(int(code))
}
