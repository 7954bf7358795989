package gosplice

// SegIDAttr is the reserved attribute carrying a container's segment
// identifier inside skeleton documents.
const SegIDAttr = "data-seg-id"

// DNTTag is the reserved tag used for do-not-translate placeholder elements.
const DNTTag = "dnt"

// Segment is the extracted source/target markup pair for one translation
// container, addressed by a stable identifier.
type Segment struct {
	ID     string // fixed-length hex identifier
	Source string // inner markup extracted from the container
	Target string // translated inner markup, empty until translated
}

// TranslationEntry is the canonical form of one translated segment after
// boundary normalization of the accepted wire shapes.
type TranslationEntry struct {
	ID   string
	Text string
}

// DNTEntry records the original element behind one do-not-translate
// placeholder.
type DNTEntry struct {
	Element string `json:"element"`
	Content string `json:"content"`
}

// DNTMapping maps placeholder identifiers to the isolated elements they
// replaced.
type DNTMapping map[string]DNTEntry

// ParseResult collects the artifacts written by Engine.Parse.
type ParseResult struct {
	Segments     []Segment
	SkeletonPath string
	SegmentsPath string
	MinimalPath  string
	MappingPath  string
	DNTPath      string
}

// DefaultInlineTags are tags excluded from container status. They represent
// inline formatting runs that live inside a container's extracted markup
// rather than being translation units themselves.
var DefaultInlineTags = []string{
	"b", "i", "u", "cite", "sub", "sup", "ph", "span", "xref", "tt", "code",
}

// RTLLanguages contains language codes that use right-to-left text direction.
var RTLLanguages = map[string]bool{
	"ar": true, // Arabic
	"he": true, // Hebrew
	"fa": true, // Persian/Farsi
	"ur": true, // Urdu
	"ps": true, // Pashto
	"sd": true, // Sindhi
	"ug": true, // Uyghur
}
