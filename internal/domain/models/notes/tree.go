package notes

// NodeKind distinguishes folder and file tree nodes
type NodeKind string

const (
	NodeKindFolder NodeKind = "folder"
	NodeKindFile   NodeKind = "file"
)

// TreeNode is a view model over a file or folder. It is rebuilt from the
// flat collections whenever they or the expansion set change.
type TreeNode struct {
	Kind       NodeKind    `json:"kind"`
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Folder     *Folder     `json:"folder,omitempty"`
	File       *File       `json:"file,omitempty"`
	Children   []*TreeNode `json:"children"`
	Depth      int         `json:"depth"`
	IsExpanded bool        `json:"is_expanded"`
}
