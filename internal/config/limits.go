package config

const (
	// MaxFileNameLength is the maximum length (in runes) for file titles.
	MaxFileNameLength = 100

	// MaxFolderNameLength is the maximum length (in runes) for folder names.
	// Folder names become path segments, so they are kept shorter than titles.
	MaxFolderNameLength = 50

	// MaxPathLength is the maximum length for a full slash-delimited path
	// passed to CreateFileWithPath. Longer inputs indicate overly deep
	// hierarchies.
	MaxPathLength = 500

	// MaxPathDepth is the maximum number of folder segments in a path.
	MaxPathDepth = 16
)

const (
	// MaxImportArchiveSize caps an uploaded import archive.
	MaxImportArchiveSize = 50 << 20

	// MaxImportEntrySize caps a single uncompressed archive entry.
	MaxImportEntrySize = 5 << 20
)
