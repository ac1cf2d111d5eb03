package notes

import (
	"strings"
	"testing"
)

func TestValidateFileName(t *testing.T) {
	v := NewValidator(nil, nil)

	tests := []struct {
		name    string
		input   string
		valid   bool
		wantErr string
	}{
		{"simple", "Meeting notes", true, ""},
		{"unicode", "日本語メモ", true, ""},
		{"max length", strings.Repeat("a", 100), true, ""},
		{"empty", "", false, "cannot be empty"},
		{"whitespace only", "   \t", false, "cannot be empty"},
		{"too long", strings.Repeat("a", 101), false, "cannot exceed 100"},
		{"slash", "a/b", false, "cannot contain '/'"},
		{"backslash", `a\b`, false, `cannot contain '\'`},
		{"pipe", "a|b", false, "cannot contain '|'"},
		{"control char", "a\x00b", false, "control characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.ValidateFileName(tt.input)
			if got.Valid != tt.valid {
				t.Fatalf("ValidateFileName(%q).Valid = %v, want %v (error %q)", tt.input, got.Valid, tt.valid, got.Error)
			}
			if !tt.valid && !strings.Contains(got.Error, tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", got.Error, tt.wantErr)
			}
		})
	}
}

func TestValidateFolderName(t *testing.T) {
	v := NewValidator(nil, nil)

	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"simple", "Projects", true},
		{"non-latin gets a fallback slug", "プロジェクト", true},
		{"max length", strings.Repeat("a", 50), true},
		{"too long", strings.Repeat("a", 51), false},
		{"empty", " ", false},
		{"dot", ".", false},
		{"dot dot", "..", false},
		{"colon", "a:b", false},
		{"question mark", "why?", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.ValidateFolderName(tt.input)
			if got.Valid != tt.valid {
				t.Errorf("ValidateFolderName(%q) = %+v, want valid=%v", tt.input, got, tt.valid)
			}
		})
	}
}

func TestCheckDuplicates(t *testing.T) {
	env := newTestEnv(t)
	work := env.mustFolder(t, "Work", "/")
	file := env.mustFile(t, "work/Plan", "")

	dup, err := env.validator.CheckFileDuplicate(env.ctx, "plan", &work.ID, "")
	if err != nil {
		t.Fatalf("CheckFileDuplicate failed: %v", err)
	}
	if !dup.IsDuplicate || dup.Existing.ID != file.ID {
		t.Errorf("CheckFileDuplicate = %+v, want duplicate of %s", dup, file.ID)
	}

	// Excluding the file itself lets a rename keep its own title
	dup, err = env.validator.CheckFileDuplicate(env.ctx, "Plan", &work.ID, file.ID)
	if err != nil {
		t.Fatalf("CheckFileDuplicate failed: %v", err)
	}
	if dup.IsDuplicate {
		t.Error("CheckFileDuplicate flagged the excluded file")
	}

	// Same title at the root is a different sibling scope
	dup, err = env.validator.CheckFileDuplicate(env.ctx, "Plan", nil, "")
	if err != nil {
		t.Fatalf("CheckFileDuplicate failed: %v", err)
	}
	if dup.IsDuplicate {
		t.Error("CheckFileDuplicate matched across folders")
	}

	fdup, err := env.validator.CheckFolderDuplicate(env.ctx, "WORK!", nil, "")
	if err != nil {
		t.Fatalf("CheckFolderDuplicate failed: %v", err)
	}
	if !fdup.IsDuplicate || fdup.Existing.ID != work.ID {
		t.Errorf("CheckFolderDuplicate = %+v, want slug match on %s", fdup, work.ID)
	}
}

func TestValidateMoveOperation_AggregatesProblems(t *testing.T) {
	env := newTestEnv(t)
	archive := env.mustFolder(t, "Archive", "/")
	env.mustFile(t, "archive/todo", "")
	env.mustFolder(t, "Old", "/archive")
	todo := env.mustFile(t, "todo", "")
	old := env.mustFolder(t, "Old", "/")

	result, err := env.validator.ValidateMoveOperation(env.ctx,
		[]string{todo.ID, "missing-file"},
		[]string{old.ID, "missing-folder"},
		&archive.ID,
	)
	if err != nil {
		t.Fatalf("ValidateMoveOperation failed: %v", err)
	}
	if result.Valid {
		t.Fatal("ValidateMoveOperation = valid, want invalid")
	}

	lines := strings.Split(result.Error, "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d problems, want 4:\n%s", len(lines), result.Error)
	}
	for _, want := range []string{
		"file missing-file not found",
		"folder missing-folder not found",
		"a file named 'todo' already exists",
		"a folder named 'Old' already exists",
	} {
		if !strings.Contains(result.Error, want) {
			t.Errorf("problems missing %q:\n%s", want, result.Error)
		}
	}
}

func TestValidateMoveOperation_RejectsCycles(t *testing.T) {
	env := newTestEnv(t)
	a := env.mustFolder(t, "A", "/")
	b := env.mustFolder(t, "B", "/a")

	for _, target := range []string{a.ID, b.ID} {
		result, err := env.validator.ValidateMoveOperation(env.ctx, nil, []string{a.ID}, &target)
		if err != nil {
			t.Fatalf("ValidateMoveOperation failed: %v", err)
		}
		if result.Valid || !strings.Contains(result.Error, "into itself or a descendant") {
			t.Errorf("move into %s = %+v, want cycle rejection", target, result)
		}
	}
}

func TestValidateMoveOperation_SelectionClash(t *testing.T) {
	env := newTestEnv(t)
	env.mustFolder(t, "X", "/")
	env.mustFolder(t, "Y", "/")
	a := env.mustFile(t, "x/note", "")
	b := env.mustFile(t, "y/Note", "")

	result, err := env.validator.ValidateMoveOperation(env.ctx, []string{a.ID, b.ID}, nil, nil)
	if err != nil {
		t.Fatalf("ValidateMoveOperation failed: %v", err)
	}
	if result.Valid || !strings.Contains(result.Error, "would have the same name") {
		t.Errorf("result = %+v, want selection clash", result)
	}
}

func TestValidateCopyOperation(t *testing.T) {
	env := newTestEnv(t)
	file := env.mustFile(t, "note", "")

	result, err := env.validator.ValidateCopyOperation(env.ctx, []string{file.ID})
	if err != nil || !result.Valid {
		t.Fatalf("ValidateCopyOperation = %+v, %v; want valid", result, err)
	}

	result, err = env.validator.ValidateCopyOperation(env.ctx, []string{"a", file.ID, "b"})
	if err != nil {
		t.Fatalf("ValidateCopyOperation failed: %v", err)
	}
	if result.Valid || result.Error != "file a not found\nfile b not found" {
		t.Errorf("result = %+v, want both missing ids reported", result)
	}

	result, _ = env.validator.ValidateCopyOperation(env.ctx, nil)
	if result.Valid {
		t.Error("empty selection reported valid")
	}
}
