package notes

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"notevault/internal/config"
	models "notevault/internal/domain/models/notes"
	notesRepo "notevault/internal/domain/repositories/notes"
	notesSvc "notevault/internal/domain/services/notes"
	"notevault/internal/utils"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// forbiddenNameChars are rejected in file titles and folder names
const forbiddenNameChars = `/\:*?"<>|`

type validator struct {
	fileRepo   notesRepo.FileRepository
	folderRepo notesRepo.FolderRepository
}

// NewValidator creates the name and operation validator
func NewValidator(
	fileRepo notesRepo.FileRepository,
	folderRepo notesRepo.FolderRepository,
) notesSvc.Validator {
	return &validator{
		fileRepo:   fileRepo,
		folderRepo: folderRepo,
	}
}

// ValidateFileName checks a file title: non-blank, at most
// MaxFileNameLength runes, no path or shell metacharacters
func (v *validator) ValidateFileName(name string) notesSvc.ValidationResult {
	name = strings.TrimSpace(name)
	err := validation.Validate(name,
		validation.Required.Error("file name cannot be empty"),
		validation.RuneLength(0, config.MaxFileNameLength).
			Error(fmt.Sprintf("file name cannot exceed %d characters", config.MaxFileNameLength)),
		validation.By(noForbiddenChars("file name")),
	)
	return resultOf(err)
}

// ValidateFolderName checks a folder name: the file rules with a shorter
// cap, and "." / ".." are reserved
func (v *validator) ValidateFolderName(name string) notesSvc.ValidationResult {
	name = strings.TrimSpace(name)
	err := validation.Validate(name,
		validation.Required.Error("folder name cannot be empty"),
		validation.RuneLength(0, config.MaxFolderNameLength).
			Error(fmt.Sprintf("folder name cannot exceed %d characters", config.MaxFolderNameLength)),
		validation.By(noForbiddenChars("folder name")),
		validation.NotIn(".", "..").Error("folder name cannot be '.' or '..'"),
	)
	return resultOf(err)
}

func noForbiddenChars(what string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if i := strings.IndexAny(s, forbiddenNameChars); i >= 0 {
			return fmt.Errorf("%s cannot contain '%c'", what, s[i])
		}
		for _, r := range s {
			if unicode.IsControl(r) {
				return fmt.Errorf("%s cannot contain control characters", what)
			}
		}
		return nil
	}
}

func resultOf(err error) notesSvc.ValidationResult {
	if err != nil {
		return notesSvc.ValidationResult{Valid: false, Error: err.Error()}
	}
	return notesSvc.ValidationResult{Valid: true}
}

// CheckFileDuplicate scans the files in folderID for a case-insensitive
// title match
func (v *validator) CheckFileDuplicate(ctx context.Context, title string, folderID *string, excludeID string) (*notesSvc.FileDuplicateResult, error) {
	siblings, err := v.fileRepo.ListByFolder(ctx, folderID)
	if err != nil {
		return nil, fmt.Errorf("failed to check for duplicate names: %w", err)
	}
	title = strings.TrimSpace(title)
	for i := range siblings {
		if siblings[i].ID != excludeID && strings.EqualFold(siblings[i].Title, title) {
			return &notesSvc.FileDuplicateResult{IsDuplicate: true, Existing: &siblings[i]}, nil
		}
	}
	return &notesSvc.FileDuplicateResult{}, nil
}

// CheckFolderDuplicate scans the folders under parentID for name's slug
func (v *validator) CheckFolderDuplicate(ctx context.Context, name string, parentID *string, excludeID string) (*notesSvc.FolderDuplicateResult, error) {
	siblings, err := v.folderRepo.ListChildren(ctx, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to check for duplicate names: %w", err)
	}
	slug := utils.SlugFor(name)
	for i := range siblings {
		if siblings[i].ID != excludeID && siblings[i].Slug == slug {
			return &notesSvc.FolderDuplicateResult{IsDuplicate: true, Existing: &siblings[i]}, nil
		}
	}
	return &notesSvc.FolderDuplicateResult{}, nil
}

// ValidateMoveOperation reports every problem with moving the selection
// into targetID. Items already inside another selected folder travel with
// it and are not checked on their own.
func (v *validator) ValidateMoveOperation(ctx context.Context, fileIDs, folderIDs []string, targetID *string) (notesSvc.ValidationResult, error) {
	var problems []string
	if len(fileIDs) == 0 && len(folderIDs) == 0 {
		return notesSvc.ValidationResult{Valid: false, Error: "no items selected"}, nil
	}

	targetID = models.RootID(targetID)
	if targetID != nil {
		target, err := v.folderRepo.GetByID(ctx, *targetID)
		if err != nil {
			return notesSvc.ValidationResult{}, err
		}
		if target == nil {
			return notesSvc.ValidationResult{Valid: false, Error: "target folder does not exist"}, nil
		}
	}

	sel, err := loadSelection(ctx, v.fileRepo, v.folderRepo, fileIDs, folderIDs)
	if err != nil {
		return notesSvc.ValidationResult{}, err
	}
	for _, id := range sel.missingFiles {
		problems = append(problems, fmt.Sprintf("file %s not found", id))
	}
	for _, id := range sel.missingFolders {
		problems = append(problems, fmt.Sprintf("folder %s not found", id))
	}

	targetFiles, err := v.fileRepo.ListByFolder(ctx, targetID)
	if err != nil {
		return notesSvc.ValidationResult{}, err
	}
	targetFolders, err := v.folderRepo.ListChildren(ctx, targetID)
	if err != nil {
		return notesSvc.ValidationResult{}, err
	}

	incomingTitles := make(map[string]string)
	for _, f := range sel.rootFiles() {
		if f.InFolder(targetID) {
			continue
		}
		key := strings.ToLower(f.Title)
		if other, ok := incomingTitles[key]; ok {
			problems = append(problems, fmt.Sprintf("files '%s' and '%s' would have the same name in the target folder", other, f.Title))
			continue
		}
		incomingTitles[key] = f.Title
		for _, existing := range targetFiles {
			if existing.ID != f.ID && strings.EqualFold(existing.Title, f.Title) {
				problems = append(problems, fmt.Sprintf("a file named '%s' already exists in the target folder", f.Title))
				break
			}
		}
	}

	incomingSlugs := make(map[string]string)
	for _, f := range sel.rootFolders() {
		if targetID != nil && (*targetID == f.ID || sel.subtree[f.ID][*targetID]) {
			problems = append(problems, fmt.Sprintf("cannot move folder '%s' into itself or a descendant", f.Name))
			continue
		}
		if f.InFolder(targetID) {
			continue
		}
		if other, ok := incomingSlugs[f.Slug]; ok {
			problems = append(problems, fmt.Sprintf("folders '%s' and '%s' would have the same name in the target folder", other, f.Name))
			continue
		}
		incomingSlugs[f.Slug] = f.Name
		for _, existing := range targetFolders {
			if existing.ID != f.ID && existing.Slug == f.Slug {
				problems = append(problems, fmt.Sprintf("a folder named '%s' already exists in the target folder", f.Name))
				break
			}
		}
	}

	return aggregate(problems), nil
}

// ValidateCopyOperation reports every selected id that is not a file
func (v *validator) ValidateCopyOperation(ctx context.Context, fileIDs []string) (notesSvc.ValidationResult, error) {
	if len(fileIDs) == 0 {
		return notesSvc.ValidationResult{Valid: false, Error: "no files selected"}, nil
	}
	found, err := v.fileRepo.GetByIDs(ctx, fileIDs)
	if err != nil {
		return notesSvc.ValidationResult{}, err
	}
	exists := make(map[string]bool, len(found))
	for _, f := range found {
		exists[f.ID] = true
	}

	var problems []string
	for _, id := range fileIDs {
		if !exists[id] {
			problems = append(problems, fmt.Sprintf("file %s not found", id))
		}
	}
	return aggregate(problems), nil
}

// aggregate joins every problem into one newline-separated message
func aggregate(problems []string) notesSvc.ValidationResult {
	if len(problems) == 0 {
		return notesSvc.ValidationResult{Valid: true}
	}
	return notesSvc.ValidationResult{Valid: false, Error: strings.Join(problems, "\n")}
}
