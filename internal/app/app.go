// Package app wires the configuration, record store, folder provider,
// scanner, and gallery collection together behind the command line surface.
package app

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"galleria/internal/config"
	"galleria/internal/debug"
	"galleria/internal/fs"
	"galleria/internal/gallery"
	"galleria/internal/media"
	"galleria/internal/scan"
	"galleria/internal/store"
)

// App holds the wired-up engine for one invocation.
type App struct {
	cfg        *config.Manager
	store      *store.DB
	system     *fs.System
	content    *media.ContentStore
	collection *gallery.Collection
}

// Main loads config and persisted galleries, dispatches the subcommand, and
// returns the process exit code.
func Main(debugMode bool, dbPath string, args []string) int {
	if debugMode {
		log.Println("Starting Galleria in DEBUG mode")
		debug.EnableAll()
	}

	cfg := config.NewManager()
	if err := cfg.Load(); err != nil {
		log.Printf("Config load failed, using defaults: %v", err)
	}
	if err := cfg.ParseError(); err != nil {
		log.Printf("Config file is invalid, using defaults: %v", err)
	}

	if dbPath == "" {
		dbPath = cfg.GetDatabase().Path
	}

	st := store.NewDB()
	if err := st.Open(dbPath); err != nil {
		log.Printf("Failed to open DB: %v", err)
		return 1
	}
	defer st.Close()

	content := media.NewContentStore()
	system := fs.NewSystem()
	a := &App{
		cfg:        cfg,
		store:      st,
		system:     system,
		content:    content,
		collection: gallery.NewCollection(st, system, scan.NewScanner(content)),
	}

	if err := a.collection.Load(); err != nil {
		log.Printf("Failed to load galleries: %v", err)
		return 1
	}

	if len(args) == 0 {
		usage()
		return 2
	}

	if err := a.dispatch(args[0], args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

func (a *App) dispatch(cmd string, args []string) error {
	switch cmd {
	case "add":
		return a.cmdAdd(args)
	case "list":
		return a.cmdList()
	case "show":
		return a.cmdShow(args)
	case "remove":
		return a.cmdRemove(args)
	case "reorder":
		return a.cmdReorder(args)
	case "shuffle":
		return a.cmdShuffle(args)
	case "import":
		return a.cmdImport(args)
	case "play":
		return a.cmdPlay(args)
	case "watch":
		return a.cmdWatch()
	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `Usage: galleria [flags] <command> [args]

Commands:
  add <name> <folder>        Register a folder as a new gallery
  list                       List galleries in display order
  show [index]               List the media of a gallery (default: first)
  remove <index>             Close a gallery and delete its record
  reorder <from> <to>        Move a gallery to a new position
  shuffle <index>            Toggle a gallery's shuffle flag
  import <index> <file>      Copy a file into a gallery's folder
  play <index> <steps>       Step through a gallery's media (-random)
  watch                      Rescan galleries when their folders change

Flags:
  -debug                     Enable verbose debug logging
  -db <path>                 Override the database path
`)
}

func parseIndex(s string, max int) (int, error) {
	idx, err := strconv.Atoi(s)
	if err != nil || idx < 0 || idx >= max {
		return 0, fmt.Errorf("invalid gallery index %q", s)
	}
	return idx, nil
}
