package source

type (
	// FileID uniquely identifies a loaded document within a FileSet.
	FileID uint32
	// FileFlags records how the bytes of a document were normalized on load.
	FileFlags uint8
)

const (
	// FileVirtual marks a document added from memory (stdin, tests, fuzzers).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
	// FileTranscoded marks a document decoded from a legacy charset on load.
	FileTranscoded
)

// File captures the normalized content of a single markup document.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // offsets of every '\n'
	Hash    [32]byte // sha256 of Content, used as the cache key
	Flags   FileFlags
	Charset string // source charset when FileTranscoded, else ""
}

// LineCol represents a human-readable position in a document.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, in bytes
}

// Slice returns the raw bytes covered by sp, clamped to the file bounds.
func (f *File) Slice(sp Span) []byte {
	end := min(int(sp.End), len(f.Content))
	start := min(int(sp.Start), end)
	return f.Content[start:end]
}

// Text is Slice as a string copy.
func (f *File) Text(sp Span) string {
	return string(f.Slice(sp))
}
