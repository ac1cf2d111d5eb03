package notes

import (
	"errors"
	"sort"
	"strings"
	"testing"

	"notevault/internal/domain"
	notesSvc "notevault/internal/domain/services/notes"
)

func TestOperations_DeleteSelectedItems(t *testing.T) {
	env := newTestEnv(t)
	a := env.mustFolder(t, "A", "/")
	b := env.mustFolder(t, "B", "/a")
	inB := env.mustFile(t, "a/b/deep", "")
	inA := env.mustFile(t, "a/shallow", "")
	loose := env.mustFile(t, "loose", "")
	keep := env.mustFile(t, "keep", "")

	result, err := env.ops.DeleteSelectedItems(env.ctx, &notesSvc.SelectionRequest{
		FileIDs:   []string{loose.ID, "already-gone", inA.ID},
		FolderIDs: []string{a.ID, "missing-folder"},
	})
	if err != nil {
		t.Fatalf("DeleteSelectedItems failed: %v", err)
	}

	gotFiles := append([]string{}, result.DeletedFileIDs...)
	sort.Strings(gotFiles)
	wantFiles := []string{loose.ID, inA.ID, inB.ID}
	sort.Strings(wantFiles)
	if strings.Join(gotFiles, ",") != strings.Join(wantFiles, ",") {
		t.Errorf("deleted files = %v, want %v", gotFiles, wantFiles)
	}
	if len(result.DeletedFolderIDs) != 2 {
		t.Errorf("deleted folders = %v, want A and B", result.DeletedFolderIDs)
	}
	if len(result.SkippedFileIDs) != 1 || result.SkippedFileIDs[0] != "already-gone" {
		t.Errorf("skipped files = %v", result.SkippedFileIDs)
	}
	if len(result.SkippedFolderIDs) != 1 || result.SkippedFolderIDs[0] != "missing-folder" {
		t.Errorf("skipped folders = %v", result.SkippedFolderIDs)
	}

	if n := env.fileCount(t); n != 1 {
		t.Errorf("file count = %d, want 1", n)
	}
	if f, _ := env.fileRepo.GetByID(env.ctx, keep.ID); f == nil {
		t.Error("unselected file was deleted")
	}
	if f, _ := env.folderRepo.GetByID(env.ctx, b.ID); f != nil {
		t.Error("descendant folder survived")
	}
}

func TestOperations_MoveSelectedItems(t *testing.T) {
	env := newTestEnv(t)
	env.mustFolder(t, "Target", "/")
	src := env.mustFolder(t, "Src", "/")
	inside := env.mustFile(t, "src/inside", "")
	loose := env.mustFile(t, "loose", "")

	// inside travels with src and is not moved on its own
	result, err := env.ops.MoveSelectedItems(env.ctx, &notesSvc.MoveSelectionRequest{
		SelectionRequest: notesSvc.SelectionRequest{
			FileIDs:   []string{loose.ID, inside.ID},
			FolderIDs: []string{src.ID},
		},
		TargetPath: "/target",
	})
	if err != nil {
		t.Fatalf("MoveSelectedItems failed: %v", err)
	}
	if len(result.Files) != 1 || result.Files[0].ID != loose.ID || result.Files[0].Path != "/target" {
		t.Errorf("moved files = %+v", result.Files)
	}
	if len(result.Folders) != 1 || result.Folders[0].Path != "/target/src" {
		t.Errorf("moved folders = %+v", result.Folders)
	}

	got, _ := env.files.GetFile(env.ctx, inside.ID)
	if got.Path != "/target/src" {
		t.Errorf("carried file path = %q, want /target/src", got.Path)
	}
	if got.FolderID == nil || *got.FolderID != src.ID {
		t.Errorf("carried file changed folder: %v", got.FolderID)
	}
}

func TestOperations_MoveSelectedItemsIsAllOrNothing(t *testing.T) {
	env := newTestEnv(t)
	env.mustFolder(t, "Target", "/")
	env.mustFile(t, "target/clash", "")
	ok := env.mustFile(t, "fine", "")
	clash := env.mustFile(t, "clash", "")

	_, err := env.ops.MoveSelectedItems(env.ctx, &notesSvc.MoveSelectionRequest{
		SelectionRequest: notesSvc.SelectionRequest{FileIDs: []string{ok.ID, clash.ID, "ghost"}},
		TargetPath:       "/target",
	})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("MoveSelectedItems error = %v, want ValidationError", err)
	}
	if strings.Count(verr.Message, "\n") != 1 {
		t.Errorf("want two aggregated problems, got:\n%s", verr.Message)
	}

	got, _ := env.files.GetFile(env.ctx, ok.ID)
	if got.Path != "/" {
		t.Errorf("valid item moved despite failed validation: %q", got.Path)
	}
}

func TestOperations_MoveToMissingTarget(t *testing.T) {
	env := newTestEnv(t)
	file := env.mustFile(t, "x", "")

	_, err := env.ops.MoveSelectedItems(env.ctx, &notesSvc.MoveSelectionRequest{
		SelectionRequest: notesSvc.SelectionRequest{FileIDs: []string{file.ID}},
		TargetPath:       "/does/not/exist",
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
