package ann

// Event categories conventionally attached to transcription symbols.
const (
	CategorySilence = "silence"
	CategoryPause   = "pause"
	CategoryLaugh   = "laugh"
	CategoryNoise   = "noise"
	CategoryDummy   = "dummy"
)

// SymbolTable maps transcription symbols to event categories. Tags are
// classified (silence, pause, laugh, noise) against such a table; callers
// with non-standard conventions can install their own.
type SymbolTable struct {
	categories map[string]string
}

// NewSymbolTable creates an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{categories: make(map[string]string)}
}

// Add associates a symbol with a category, replacing a previous entry.
func (t *SymbolTable) Add(symbol, category string) {
	t.categories[symbol] = category
}

// Category returns the category of a symbol, or "" if unknown.
func (t *SymbolTable) Category(symbol string) string {
	return t.categories[symbol]
}

// DefaultSymbols holds the orthographic and phonetic conventions used by
// the annotation pipelines: "#"/"sil" for silences, "+"/"sp" for short
// pauses, "@"/"@@"/"lg" for laughter, "*"/"gb" for noises.
var DefaultSymbols = defaultSymbolTable()

func defaultSymbolTable() *SymbolTable {
	t := NewSymbolTable()
	// orthographic convention
	t.Add("#", CategorySilence)
	t.Add("+", CategoryPause)
	t.Add("@", CategoryLaugh)
	t.Add("*", CategoryNoise)
	// phonetic convention
	t.Add("sil", CategorySilence)
	t.Add("sp", CategoryPause)
	t.Add("@@", CategoryLaugh)
	t.Add("lg", CategoryLaugh)
	t.Add("gb", CategoryNoise)
	t.Add("dummy", CategoryDummy)
	return t
}
