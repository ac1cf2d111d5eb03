package notes

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"notevault/internal/config"
	"notevault/internal/domain"
	notesSvc "notevault/internal/domain/services/notes"
	"notevault/internal/repository/memory"
)

func TestFileService_CreateAndGet(t *testing.T) {
	env := newTestEnv(t)

	created, err := env.files.CreateFile(env.ctx, &notesSvc.CreateFileRequest{
		Title:   "  Groceries ",
		Content: "milk, eggs",
		Tags:    []string{"home", "home", " list "},
	})
	if err != nil {
		t.Fatalf("CreateFile failed: %v", err)
	}

	got, err := env.files.GetFile(env.ctx, created.ID)
	if err != nil {
		t.Fatalf("GetFile failed: %v", err)
	}
	if got.Title != "Groceries" || got.Content != "milk, eggs" {
		t.Errorf("got title=%q content=%q", got.Title, got.Content)
	}
	if got.Version != 1 || !got.CreatedAt.Equal(got.UpdatedAt) {
		t.Errorf("version=%d created=%v updated=%v, want 1 and equal timestamps", got.Version, got.CreatedAt, got.UpdatedAt)
	}
	if !reflect.DeepEqual(got.Tags, []string{"home", "list"}) {
		t.Errorf("tags = %v", got.Tags)
	}
	if got.Path != "/" {
		t.Errorf("path = %q, want /", got.Path)
	}
}

func TestFileService_CreateErrors(t *testing.T) {
	env := newTestEnv(t)
	env.mustFile(t, "Plan", "")

	_, err := env.files.CreateFile(env.ctx, &notesSvc.CreateFileRequest{Title: "plan"})
	var conflict *domain.ConflictError
	if !errors.As(err, &conflict) || conflict.ResourceType != "file" {
		t.Errorf("duplicate title error = %v, want file ConflictError", err)
	}

	_, err = env.files.CreateFile(env.ctx, &notesSvc.CreateFileRequest{Title: "a:b"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("invalid title error = %v, want ErrValidation", err)
	}

	missing := "no-such-folder"
	_, err = env.files.CreateFile(env.ctx, &notesSvc.CreateFileRequest{Title: "x", FolderID: &missing})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("missing folder error = %v, want ErrNotFound", err)
	}
}

func TestFileService_GetMissing(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.files.GetFile(env.ctx, "nope")
	if domain.CodeOf(err) != domain.CodeNotFound {
		t.Errorf("GetFile error code = %s, want NOT_FOUND", domain.CodeOf(err))
	}
}

func TestFileService_UpdateBumpsVersion(t *testing.T) {
	env := newTestEnv(t)
	file := env.mustFile(t, "draft", "v1")

	prev := file
	for i := 0; i < 3; i++ {
		content := "edit"
		updated, err := env.files.UpdateFile(env.ctx, file.ID, &notesSvc.UpdateFileRequest{Content: &content})
		if err != nil {
			t.Fatalf("UpdateFile failed: %v", err)
		}
		if updated.Version != prev.Version+1 {
			t.Errorf("version = %d, want %d", updated.Version, prev.Version+1)
		}
		if !updated.UpdatedAt.After(prev.UpdatedAt) {
			t.Errorf("updated_at %v did not advance past %v", updated.UpdatedAt, prev.UpdatedAt)
		}
		if !updated.CreatedAt.Equal(file.CreatedAt) {
			t.Errorf("created_at changed")
		}
		prev = updated
	}

	tags := []string{"final"}
	updated, err := env.files.UpdateFile(env.ctx, file.ID, &notesSvc.UpdateFileRequest{Tags: &tags})
	if err != nil {
		t.Fatalf("UpdateFile tags failed: %v", err)
	}
	if updated.Content != "edit" || !reflect.DeepEqual(updated.Tags, tags) {
		t.Errorf("partial update clobbered fields: %+v", updated)
	}
}

func TestFileService_Rename(t *testing.T) {
	env := newTestEnv(t)
	a := env.mustFile(t, "alpha", "")
	env.mustFile(t, "beta", "")

	renamed, err := env.files.RenameFile(env.ctx, a.ID, "gamma")
	if err != nil {
		t.Fatalf("RenameFile failed: %v", err)
	}
	if renamed.Title != "gamma" || renamed.Version != 2 {
		t.Errorf("renamed = %+v", renamed)
	}

	// Renaming to its own title (any case) is not a conflict
	if _, err := env.files.RenameFile(env.ctx, a.ID, "GAMMA"); err != nil {
		t.Errorf("rename to own title failed: %v", err)
	}

	if _, err := env.files.RenameFile(env.ctx, a.ID, "Beta"); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("rename onto sibling error = %v, want ErrConflict", err)
	}
	if _, err := env.files.RenameFile(env.ctx, "missing", "x"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("rename missing error = %v, want ErrNotFound", err)
	}
}

func TestFileService_CreateFileWithPath(t *testing.T) {
	env := newTestEnv(t)

	file, err := env.files.CreateFileWithPath(env.ctx, "Work/2026/plan", "body", []string{"q1"})
	if err != nil {
		t.Fatalf("CreateFileWithPath failed: %v", err)
	}
	if file.Path != "/work/2026" || file.Title != "plan" {
		t.Errorf("file path=%q title=%q", file.Path, file.Title)
	}

	// Existing folders are reused by slug rather than duplicated
	if _, err := env.files.CreateFileWithPath(env.ctx, "/work/2026/notes", "", nil); err != nil {
		t.Fatalf("second CreateFileWithPath failed: %v", err)
	}
	if n := env.folderCount(t); n != 2 {
		t.Errorf("folder count = %d, want 2", n)
	}

	if _, err := env.files.CreateFileWithPath(env.ctx, "work/2026/Plan", "", nil); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("duplicate path error = %v, want ErrConflict", err)
	}
	if _, err := env.files.CreateFileWithPath(env.ctx, "///", "", nil); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("empty path error = %v, want ErrValidation", err)
	}
}

func TestFileService_CreateFileWithPathIsAtomic(t *testing.T) {
	store := &rejectingStore{Store: memory.NewStore(), rejectKey: "test.files"}
	env := newTestEnvWithStore(t, store)

	// Folder creation and the file write commit together, so a rejected
	// file write leaves no orphan folders behind
	_, err := env.files.CreateFileWithPath(env.ctx, "new/deeper/note", "", nil)
	if !errors.Is(err, domain.ErrSave) {
		t.Fatalf("CreateFileWithPath error = %v, want ErrSave", err)
	}
	if n := env.folderCount(t); n != 0 {
		t.Errorf("folder count = %d after failed create, want 0", n)
	}

	if _, err := env.files.CreateFileWithPath(env.ctx, "other/bad|name", "", nil); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("invalid name error = %v, want ErrValidation", err)
	}
	if n := env.folderCount(t); n != 0 {
		t.Errorf("folder count = %d after invalid name, want 0", n)
	}
}

func TestFileService_ListFilesByPath(t *testing.T) {
	env := newTestEnv(t)
	projects := env.mustFolder(t, "Projects", "/")
	todo := env.mustFile(t, "projects/todo.md", "")

	files, err := env.files.ListFiles(env.ctx, "/projects")
	if err != nil {
		t.Fatalf("ListFiles failed: %v", err)
	}
	if len(files) != 1 || files[0].ID != todo.ID || files[0].Path != "/projects" {
		t.Fatalf("ListFiles(/projects) = %+v", files)
	}

	if _, err := env.folders.RenameFolder(env.ctx, projects.ID, "Work"); err != nil {
		t.Fatalf("RenameFolder failed: %v", err)
	}

	files, err = env.files.ListFiles(env.ctx, "/work")
	if err != nil {
		t.Fatalf("ListFiles failed: %v", err)
	}
	if len(files) != 1 || files[0].ID != todo.ID {
		t.Errorf("ListFiles(/work) = %+v, want the renamed folder's file", files)
	}

	files, err = env.files.ListFiles(env.ctx, "/projects")
	if err != nil {
		t.Fatalf("ListFiles(/projects) error = %v, want empty result", err)
	}
	if len(files) != 0 {
		t.Errorf("ListFiles(/projects) = %+v, want empty", files)
	}
}

func TestFileService_Move(t *testing.T) {
	env := newTestEnv(t)
	env.mustFolder(t, "Archive", "/")
	env.mustFile(t, "archive/old", "")
	note := env.mustFile(t, "note", "")
	old := env.mustFile(t, "old", "")

	moved, err := env.files.MoveFile(env.ctx, note.ID, "/archive")
	if err != nil {
		t.Fatalf("MoveFile failed: %v", err)
	}
	if moved.Path != "/archive" || moved.FolderID == nil {
		t.Errorf("moved = %+v", moved)
	}

	if _, err := env.files.MoveFile(env.ctx, old.ID, "/archive"); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("colliding move error = %v, want ErrValidation", err)
	}
	if _, err := env.files.MoveFile(env.ctx, old.ID, "/nowhere"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("move to missing folder error = %v, want ErrNotFound", err)
	}
}

func TestFileService_DeleteIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	file := env.mustFile(t, "gone", "")

	if err := env.files.DeleteFile(env.ctx, file.ID); err != nil {
		t.Fatalf("DeleteFile failed: %v", err)
	}
	if err := env.files.DeleteFile(env.ctx, file.ID); err != nil {
		t.Errorf("second DeleteFile = %v, want nil", err)
	}
	if n := env.fileCount(t); n != 0 {
		t.Errorf("file count = %d, want 0", n)
	}
}

func TestFileService_CopyFiles(t *testing.T) {
	env := newTestEnv(t)
	env.mustFolder(t, "Docs", "/")
	note := env.mustFile(t, "docs/Note", "hello")
	env.mustFile(t, "docs/Copy of Note", "")

	result, err := env.files.CopyFiles(env.ctx, []string{note.ID})
	if err != nil {
		t.Fatalf("CopyFiles failed: %v", err)
	}
	if len(result.Files) != 1 {
		t.Fatalf("copies = %d, want 1", len(result.Files))
	}
	copied := result.Files[0]
	if copied.Title != "Copy of Note (1)" {
		t.Errorf("copy title = %q, want %q", copied.Title, "Copy of Note (1)")
	}
	if copied.Path != "/docs" || copied.Content != "hello" || copied.Version != 1 {
		t.Errorf("copy = %+v, want it next to its source with version 1", copied)
	}
	if copied.ID == note.ID {
		t.Error("copy reused the source id")
	}

	if _, err := env.files.CopyFiles(env.ctx, []string{note.ID, "missing"}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("copy with missing id error = %v, want ErrValidation", err)
	}
	if n := env.fileCount(t); n != 3 {
		t.Errorf("file count = %d, want 3 (failed copy must not write)", n)
	}
}

func TestFileService_UpdateKeepsConcurrentRename(t *testing.T) {
	store := &hookStore{Store: memory.NewStore(), key: "test.files"}
	env := newTestEnvWithStore(t, store)
	file := env.mustFile(t, "Draft", "v1")

	renamed := make(chan error, 1)
	store.onGet = func() {
		go func() {
			_, err := env.files.RenameFile(env.ctx, file.ID, "Final")
			renamed <- err
		}()
		// Let the rename commit now if nothing holds it back
		select {
		case err := <-renamed:
			renamed <- err
		case <-time.After(50 * time.Millisecond):
		}
	}
	store.armed.Store(true)

	content := "v2"
	if _, err := env.files.UpdateFile(env.ctx, file.ID, &notesSvc.UpdateFileRequest{Content: &content}); err != nil {
		t.Fatalf("UpdateFile failed: %v", err)
	}
	if err := <-renamed; err != nil {
		t.Fatalf("RenameFile failed: %v", err)
	}

	got, err := env.files.GetFile(env.ctx, file.ID)
	if err != nil {
		t.Fatalf("GetFile failed: %v", err)
	}
	if got.Title != "Final" || got.Content != "v2" || got.Version != 3 {
		t.Errorf("after rename and update: title=%q content=%q version=%d, want Final v2 3",
			got.Title, got.Content, got.Version)
	}
}

func TestFileService_CopyOfLongTitleStaysValid(t *testing.T) {
	env := newTestEnv(t)
	title := strings.Repeat("n", config.MaxFileNameLength)
	note := env.mustFile(t, title, "body")

	result, err := env.files.CopyFiles(env.ctx, []string{note.ID})
	if err != nil {
		t.Fatalf("CopyFiles failed: %v", err)
	}
	copied := result.Files[0]
	if n := utf8.RuneCountInString(copied.Title); n > config.MaxFileNameLength {
		t.Fatalf("copy title has %d runes, limit %d", n, config.MaxFileNameLength)
	}
	if check := env.validator.ValidateFileName(copied.Title); !check.Valid {
		t.Errorf("copy title rejected: %s", check.Error)
	}
	if _, err := env.files.RenameFile(env.ctx, copied.ID, copied.Title); err != nil {
		t.Errorf("rename copy to its own title failed: %v", err)
	}
}
