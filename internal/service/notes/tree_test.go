package notes

import (
	"testing"

	models "notevault/internal/domain/models/notes"
)

func strPtr(s string) *string { return &s }

func treeFixture() ([]models.Folder, []models.File) {
	folders := []models.Folder{
		{ID: "b", Name: "beta"},
		{ID: "a", Name: "Alpha"},
		{ID: "a1", Name: "inner", ParentID: strPtr("a")},
		{ID: "orphan", Name: "orphan", ParentID: strPtr("gone")},
	}
	files := []models.File{
		{ID: "f-root", Title: "readme"},
		{ID: "f-a", Title: "in alpha", FolderID: strPtr("a")},
		{ID: "f-a1", Title: "deep", FolderID: strPtr("a1")},
	}
	return folders, files
}

func nodeIDs(nodes []*models.TreeNode) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}

func equalIDs(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestBuildTree_Collapsed(t *testing.T) {
	folders, files := treeFixture()
	tree := BuildTree(folders, files, nil)

	// Folders first (case-insensitive by name), dangling parents fall back to root
	want := []string{"a", "b", "orphan", "f-root"}
	if got := nodeIDs(tree); !equalIDs(got, want) {
		t.Fatalf("root ids = %v, want %v", got, want)
	}
	for _, node := range tree {
		if node.IsExpanded || len(node.Children) != 0 || node.Depth != 0 {
			t.Errorf("node %s = expanded %v, %d children, depth %d", node.ID, node.IsExpanded, len(node.Children), node.Depth)
		}
	}
	if tree[3].Kind != models.NodeKindFile || tree[3].File == nil {
		t.Errorf("readme node = %+v", tree[3])
	}
}

func TestBuildTree_ExpandedAndFlatten(t *testing.T) {
	folders, files := treeFixture()
	tree := BuildTree(folders, files, map[string]bool{"a": true, "a1": true})

	alpha := tree[0]
	if !alpha.IsExpanded || !equalIDs(nodeIDs(alpha.Children), []string{"a1", "f-a"}) {
		t.Fatalf("alpha children = %v", nodeIDs(alpha.Children))
	}
	inner := alpha.Children[0]
	if inner.Depth != 1 || !equalIDs(nodeIDs(inner.Children), []string{"f-a1"}) || inner.Children[0].Depth != 2 {
		t.Errorf("inner = depth %d children %v", inner.Depth, nodeIDs(inner.Children))
	}

	flat := FlattenTree(tree)
	want := []string{"a", "a1", "f-a1", "f-a", "b", "orphan", "f-root"}
	if got := nodeIDs(flat); !equalIDs(got, want) {
		t.Errorf("flattened = %v, want %v", got, want)
	}
}

func TestBuildTree_CollapsedParentHidesExpandedChild(t *testing.T) {
	folders, files := treeFixture()
	tree := BuildTree(folders, files, map[string]bool{"a1": true})

	flat := FlattenTree(tree)
	want := []string{"a", "b", "orphan", "f-root"}
	if got := nodeIDs(flat); !equalIDs(got, want) {
		t.Errorf("flattened = %v, want %v", got, want)
	}
}

func TestFlattenTree_SkipsChildrenOfCollapsedNodes(t *testing.T) {
	nodes := []*models.TreeNode{
		{ID: "x", IsExpanded: false, Children: []*models.TreeNode{{ID: "hidden"}}},
		{ID: "y", IsExpanded: true},
	}
	if got := nodeIDs(FlattenTree(nodes)); !equalIDs(got, []string{"x", "y"}) {
		t.Errorf("flattened = %v", got)
	}
}

func TestTreeService_GetFlatTree(t *testing.T) {
	env := newTestEnv(t)
	work := env.mustFolder(t, "Work", "/")
	env.mustFile(t, "work/plan", "")
	env.mustFile(t, "inbox", "")

	flat, err := env.tree.GetFlatTree(env.ctx, []string{work.ID})
	if err != nil {
		t.Fatalf("GetFlatTree failed: %v", err)
	}
	names := make([]string, len(flat))
	for i, n := range flat {
		names[i] = n.Name
	}
	if !equalIDs(names, []string{"Work", "plan", "inbox"}) {
		t.Errorf("flat names = %v", names)
	}
	if flat[0].Folder.Path != "/work" {
		t.Errorf("folder node path = %q", flat[0].Folder.Path)
	}
}
