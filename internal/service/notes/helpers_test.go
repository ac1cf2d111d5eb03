package notes

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"

	models "notevault/internal/domain/models/notes"
	"notevault/internal/domain/repositories"
	notesRepo "notevault/internal/domain/repositories/notes"
	notesSvc "notevault/internal/domain/services/notes"
	"notevault/internal/repository/kv"
	"notevault/internal/repository/memory"
	"notevault/internal/service/notes/converter"
)

// testEnv wires every service over an in-memory store
type testEnv struct {
	ctx        context.Context
	store      repositories.KeyValueStore
	fileRepo   notesRepo.FileRepository
	folderRepo notesRepo.FolderRepository
	validator  notesSvc.Validator
	resolver   notesSvc.PathResolver
	files      notesSvc.FileService
	folders    notesSvc.FolderService
	ops        notesSvc.OperationsService
	tree       notesSvc.TreeService
	export     notesSvc.ExportService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithStore(t, memory.NewStore())
}

func newTestEnvWithStore(t *testing.T, store repositories.KeyValueStore) *testEnv {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tx := kv.NewTransactionManager(store, logger)
	cfg := &kv.RepositoryConfig{
		Store:     store,
		TxManager: tx,
		Keys:      kv.NewCollectionKeys("test"),
		Logger:    logger,
	}
	fileRepo := kv.NewFileRepository(cfg)
	folderRepo := kv.NewFolderRepository(cfg)
	validator := NewValidator(fileRepo, folderRepo)
	resolver := NewPathResolver(folderRepo, validator, tx)
	files := NewFileService(fileRepo, folderRepo, resolver, validator, tx, logger)

	return &testEnv{
		ctx:        context.Background(),
		store:      store,
		fileRepo:   fileRepo,
		folderRepo: folderRepo,
		validator:  validator,
		resolver:   resolver,
		files:      files,
		folders:    NewFolderService(folderRepo, fileRepo, resolver, validator, tx, logger),
		ops:        NewOperationsService(fileRepo, folderRepo, resolver, validator, tx, logger),
		tree:       NewTreeService(folderRepo, fileRepo, logger),
		export:     NewExportService(fileRepo, folderRepo, files, converter.NewRegistry(), logger),
	}
}

func (e *testEnv) mustFolder(t *testing.T, name, parentPath string) *models.Folder {
	t.Helper()
	folder, err := e.folders.CreateFolder(e.ctx, name, parentPath)
	if err != nil {
		t.Fatalf("CreateFolder(%q, %q) failed: %v", name, parentPath, err)
	}
	return folder
}

func (e *testEnv) mustFile(t *testing.T, inputPath, content string) *models.File {
	t.Helper()
	file, err := e.files.CreateFileWithPath(e.ctx, inputPath, content, nil)
	if err != nil {
		t.Fatalf("CreateFileWithPath(%q) failed: %v", inputPath, err)
	}
	return file
}

func (e *testEnv) fileCount(t *testing.T) int {
	t.Helper()
	all, err := e.fileRepo.GetAll(e.ctx)
	if err != nil {
		t.Fatalf("GetAll files failed: %v", err)
	}
	return len(all)
}

func (e *testEnv) folderCount(t *testing.T) int {
	t.Helper()
	all, err := e.folderRepo.GetAll(e.ctx)
	if err != nil {
		t.Fatalf("GetAll folders failed: %v", err)
	}
	return len(all)
}

// rejectingStore fails any commit that touches rejectKey
type rejectingStore struct {
	*memory.Store
	rejectKey string
}

func (s *rejectingStore) SetMany(ctx context.Context, values map[string][]byte) error {
	if _, ok := values[s.rejectKey]; ok {
		return errors.New("write rejected")
	}
	return s.Store.SetMany(ctx, values)
}

// hookStore runs onGet once, right after the first read of key once armed
type hookStore struct {
	*memory.Store
	key   string
	armed atomic.Bool
	onGet func()
}

func (s *hookStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok, err := s.Store.Get(ctx, key)
	if key == s.key && s.armed.CompareAndSwap(true, false) {
		s.onGet()
	}
	return data, ok, err
}
