package main

import (
	"context"
	"flag"
	"log"

	"notevault/internal/config"
	"notevault/internal/domain/repositories"
	"notevault/internal/repository"
	"notevault/internal/repository/kv"
	"notevault/internal/service/notes"

	"github.com/joho/godotenv"
)

func main() {
	// Parse command-line flags
	clearData := flag.Bool("clear-data", false, "Clear all files and folders without seeding")
	keepData := flag.Bool("keep-data", false, "Seed on top of existing data instead of clearing it first")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && !*keepData {
		log.Fatalf("🚫 BLOCKED: Cannot clear data in production environment (use --keep-data to only add seed files)")
	}

	logger, logCloser, err := config.NewLogger(cfg, "seed")
	if err != nil {
		log.Fatalf("Failed to setup logging: %v", err)
	}
	defer logCloser.Close()

	if *clearData {
		log.Printf("🧹 Clearing data only (environment: %s, backend: %s)", cfg.Environment, cfg.StorageBackend)
	} else {
		log.Printf("🌱 Seeding store (environment: %s, backend: %s)", cfg.Environment, cfg.StorageBackend)
	}

	ctx := context.Background()
	store, err := repository.OpenStore(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	keys := kv.NewCollectionKeys(cfg.KeyPrefix)

	if !*keepData {
		log.Println("⚠️  Clearing existing files and folders...")
		if err := clearCollections(ctx, store, keys); err != nil {
			log.Fatalf("Failed to clear data: %v", err)
		}
		log.Println("✅ Data cleared")
	}
	if *clearData {
		return
	}

	txManager := kv.NewTransactionManager(store, logger)
	repoConfig := &kv.RepositoryConfig{
		Store:     store,
		TxManager: txManager,
		Keys:      keys,
		Logger:    logger,
	}
	fileRepo := kv.NewFileRepository(repoConfig)
	folderRepo := kv.NewFolderRepository(repoConfig)
	validator := notes.NewValidator(fileRepo, folderRepo)
	pathResolver := notes.NewPathResolver(folderRepo, validator, txManager)
	fileService := notes.NewFileService(fileRepo, folderRepo, pathResolver, validator, txManager, logger)

	// Seed files; path notation creates the folders on the way
	log.Println("📝 Seeding files with folder structure...")
	files := seedFiles()
	for i, f := range files {
		file, err := fileService.CreateFileWithPath(ctx, f.path, f.content, f.tags)
		if err != nil {
			log.Printf("❌ Failed to create file '%s': %v", f.path, err)
			continue
		}
		log.Printf("✅ Created file %d/%d: %s (ID: %s)", i+1, len(files), f.path, file.ID)
	}

	log.Println("🎉 Seeding complete!")
}

// clearCollections removes both collection keys
func clearCollections(ctx context.Context, store repositories.KeyValueStore, keys *kv.CollectionKeys) error {
	for _, key := range []string{keys.Files, keys.Folders} {
		if err := store.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

type seedFile struct {
	path    string
	content string
	tags    []string
}

func seedFiles() []seedFile {
	return []seedFile{
		{
			path:    "Inbox",
			content: "# Inbox\n\nQuick captures land here until they get a home.\n",
			tags:    []string{"start"},
		},
		{
			path:    "Projects/Garden/Planting plan",
			content: "# Planting plan\n\n- Tomatoes along the south fence\n- Basil between the tomatoes\n- Garlic in October\n",
			tags:    []string{"garden", "plans"},
		},
		{
			path:    "Projects/Garden/Seed order",
			content: "# Seed order\n\n| Variety | Packets |\n|---|---|\n| San Marzano | 2 |\n| Genovese basil | 1 |\n",
			tags:    []string{"garden", "shopping"},
		},
		{
			path:    "Projects/Reading list",
			content: "# Reading list\n\n1. The Timeless Way of Building\n2. A Pattern Language\n",
			tags:    []string{"books"},
		},
		{
			path:    "Journal/2026/Week 41",
			content: "# Week 41\n\nFinished the shed roof. Started drafting the garden layout.\n",
			tags:    []string{"journal"},
		},
		{
			path:    "Journal/2026/Week 42",
			content: "# Week 42\n\nOrdered seeds. Rain all weekend.\n",
			tags:    []string{"journal"},
		},
		{
			path:    "Reference/Keyboard shortcuts",
			content: "# Keyboard shortcuts\n\n- `n` new file\n- `shift+n` new folder\n- `del` delete selection\n",
		},
	}
}
