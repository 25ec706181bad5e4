package source

type (
	// FileID identifies a file inside a FileSet.
	FileID uint32
	// FileFlags records how a file's bytes were obtained.
	FileFlags uint8
)

const (
	// FileVirtual marks files that were not read from disk (tests, stdin).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File holds the normalized content of one source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // offsets of '\n'
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol is a 1-based human readable position.
type LineCol struct {
	Line uint32
	Col  uint32
}
