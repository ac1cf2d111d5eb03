package notes

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	models "notevault/internal/domain/models/notes"
	notesRepo "notevault/internal/domain/repositories/notes"
	notesSvc "notevault/internal/domain/services/notes"
)

// treeService implements the TreeService interface
type treeService struct {
	folderRepo notesRepo.FolderRepository
	fileRepo   notesRepo.FileRepository
	logger     *slog.Logger
}

// NewTreeService creates a new tree service
func NewTreeService(
	folderRepo notesRepo.FolderRepository,
	fileRepo notesRepo.FileRepository,
	logger *slog.Logger,
) notesSvc.TreeService {
	return &treeService{
		folderRepo: folderRepo,
		fileRepo:   fileRepo,
		logger:     logger,
	}
}

// GetTree loads both collections and builds the tree
func (s *treeService) GetTree(ctx context.Context, expandedIDs []string) ([]*models.TreeNode, error) {
	folders, err := s.folderRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	files, err := s.fileRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	expanded := make(map[string]bool, len(expandedIDs))
	for _, id := range expandedIDs {
		expanded[id] = true
	}

	tree := BuildTree(folders, files, expanded)

	s.logger.Debug("tree built",
		"folder_count", len(folders),
		"file_count", len(files),
		"expanded_count", len(expanded),
	)
	return tree, nil
}

// GetFlatTree returns the visible nodes in render order
func (s *treeService) GetFlatTree(ctx context.Context, expandedIDs []string) ([]*models.TreeNode, error) {
	tree, err := s.GetTree(ctx, expandedIDs)
	if err != nil {
		return nil, err
	}
	return FlattenTree(tree), nil
}

// BuildTree nests the flat collections. Root items are folders without a
// (resolvable) parent and files without a folder. Children are attached
// only below folders in expanded. Within a level folders come first, each
// group ordered case-insensitively by name.
func BuildTree(folders []models.Folder, files []models.File, expanded map[string]bool) []*models.TreeNode {
	known := make(map[string]bool, len(folders))
	for i := range folders {
		known[folders[i].ID] = true
	}

	// Group children by parent ("" = root); dangling parents fall back to root
	childFolders := make(map[string][]*models.Folder)
	for i := range folders {
		key := ""
		if p := folders[i].ParentID; p != nil && known[*p] {
			key = *p
		}
		childFolders[key] = append(childFolders[key], &folders[i])
	}
	childFiles := make(map[string][]*models.File)
	for i := range files {
		key := ""
		if p := files[i].FolderID; p != nil && known[*p] {
			key = *p
		}
		childFiles[key] = append(childFiles[key], &files[i])
	}

	visited := make(map[string]bool, len(folders))
	var build func(parent string, depth int) []*models.TreeNode
	build = func(parent string, depth int) []*models.TreeNode {
		subFolders := childFolders[parent]
		sort.SliceStable(subFolders, func(i, j int) bool {
			return strings.ToLower(subFolders[i].Name) < strings.ToLower(subFolders[j].Name)
		})
		subFiles := childFiles[parent]
		sort.SliceStable(subFiles, func(i, j int) bool {
			return strings.ToLower(subFiles[i].Title) < strings.ToLower(subFiles[j].Title)
		})

		nodes := make([]*models.TreeNode, 0, len(subFolders)+len(subFiles))
		for _, folder := range subFolders {
			if visited[folder.ID] {
				continue
			}
			visited[folder.ID] = true

			node := &models.TreeNode{
				Kind:       models.NodeKindFolder,
				ID:         folder.ID,
				Name:       folder.Name,
				Folder:     folder,
				Children:   []*models.TreeNode{},
				Depth:      depth,
				IsExpanded: expanded[folder.ID],
			}
			if node.IsExpanded {
				node.Children = build(folder.ID, depth+1)
			}
			nodes = append(nodes, node)
		}
		for _, file := range subFiles {
			nodes = append(nodes, &models.TreeNode{
				Kind:     models.NodeKindFile,
				ID:       file.ID,
				Name:     file.Title,
				File:     file,
				Children: []*models.TreeNode{},
				Depth:    depth,
			})
		}
		return nodes
	}

	return build("", 0)
}

// FlattenTree lists nodes in depth-first pre-order, descending only into
// expanded nodes that have children
func FlattenTree(nodes []*models.TreeNode) []*models.TreeNode {
	flat := make([]*models.TreeNode, 0, len(nodes))
	var walk func(level []*models.TreeNode)
	walk = func(level []*models.TreeNode) {
		for _, node := range level {
			flat = append(flat, node)
			if node.IsExpanded && len(node.Children) > 0 {
				walk(node.Children)
			}
		}
	}
	walk(nodes)
	return flat
}
