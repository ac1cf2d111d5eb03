package notes

import (
	"context"

	models "notevault/internal/domain/models/notes"
)

// TreeService builds the folder/file tree from the flat collections
type TreeService interface {
	// GetTree returns the root nodes, expanding the folders in expandedIDs
	GetTree(ctx context.Context, expandedIDs []string) ([]*models.TreeNode, error)

	// GetFlatTree returns the visible nodes in render order
	GetFlatTree(ctx context.Context, expandedIDs []string) ([]*models.TreeNode, error)
}
