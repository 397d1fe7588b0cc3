package app

import (
	"flag"
	"fmt"
	"log"
	"mime"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/dustin/go-humanize"

	"galleria/internal/debug"
	"galleria/internal/watch"
)

func (a *App) cmdAdd(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: add <name> <folder>")
	}
	folder, err := a.system.Open(args[1])
	if err != nil {
		return fmt.Errorf("gallery could not be created: %w", err)
	}
	g, err := a.collection.Create(args[0], folder)
	if err != nil {
		return fmt.Errorf("gallery could not be created: %w", err)
	}
	fmt.Printf("Added gallery %q (%d media files)\n", g.Name, len(g.Media))
	return nil
}

func (a *App) cmdList() error {
	galleries := a.collection.Galleries()
	if len(galleries) == 0 {
		fmt.Println("No galleries. Use 'add' to register a folder.")
		return nil
	}
	active := a.collection.ActiveGalleryIndex()
	for i, g := range galleries {
		marker := " "
		if i == active {
			marker = "*"
		}
		flags := ""
		if g.Shuffled {
			flags = " [shuffled]"
		}
		fmt.Printf("%s %d. %s (%d media)%s  %s\n", marker, i, g.Name, len(g.Media), flags, g.Folder.Ref())
	}
	return nil
}

func (a *App) cmdShow(args []string) error {
	idx := a.collection.ActiveGalleryIndex()
	if len(args) > 0 {
		var err error
		if idx, err = parseIndex(args[0], a.collection.Len()); err != nil {
			return err
		}
	}
	if idx < 0 {
		return fmt.Errorf("no galleries")
	}
	a.collection.Select(idx)
	g := a.collection.ActiveGallery()

	fmt.Printf("%s — %d media files\n", g.Name, len(g.Media))
	for i, m := range g.Media {
		dims := ""
		if m.Width > 0 {
			dims = fmt.Sprintf(" %dx%d", m.Width, m.Height)
		}
		fmt.Printf("  %3d. [%s] %s%s  %s, %s\n",
			i, m.Kind, m.RelPath, dims,
			humanize.Bytes(uint64(m.Size)), humanize.Time(m.ModTime))
	}
	return nil
}

func (a *App) cmdRemove(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: remove <index>")
	}
	idx, err := parseIndex(args[0], a.collection.Len())
	if err != nil {
		return err
	}
	return a.collection.Close(idx)
}

func (a *App) cmdReorder(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: reorder <from> <to>")
	}
	from, err := parseIndex(args[0], a.collection.Len())
	if err != nil {
		return err
	}
	to, err := parseIndex(args[1], a.collection.Len())
	if err != nil {
		return err
	}
	return a.collection.Reorder(from, to)
}

func (a *App) cmdShuffle(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: shuffle <index>")
	}
	idx, err := parseIndex(args[0], a.collection.Len())
	if err != nil {
		return err
	}
	a.collection.Select(idx)
	on, err := a.collection.ToggleShuffle()
	if err != nil {
		return err
	}
	if on {
		fmt.Println("Shuffle on")
	} else {
		fmt.Println("Shuffle off")
	}
	return nil
}

func (a *App) cmdImport(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: import <index> <file>")
	}
	idx, err := parseIndex(args[0], a.collection.Len())
	if err != nil {
		return err
	}
	data, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("file could not be saved: %w", err)
	}

	a.collection.Select(idx)
	mimeType := mime.TypeByExtension(filepath.Ext(args[1]))
	name, err := a.collection.ImportFile(data, filepath.Base(args[1]), mimeType)
	if err != nil {
		return fmt.Errorf("file could not be saved: %w", err)
	}
	fmt.Printf("Saved as %s\n", name)
	return nil
}

func (a *App) cmdPlay(args []string) error {
	flags := flag.NewFlagSet("play", flag.ContinueOnError)
	random := flags.Bool("random", false, "Step to random items instead of sequential order")
	if err := flags.Parse(args); err != nil {
		return err
	}
	rest := flags.Args()
	if len(rest) != 2 {
		return fmt.Errorf("usage: play [-random] <index> <steps>")
	}
	idx, err := parseIndex(rest[0], a.collection.Len())
	if err != nil {
		return err
	}
	steps, err := strconv.Atoi(rest[1])
	if err != nil || steps < 1 {
		return fmt.Errorf("invalid step count %q", rest[1])
	}

	a.collection.Select(idx)
	if *random {
		a.collection.ToggleRandom()
	}
	for i := 0; i < steps; i++ {
		m, ok := a.collection.CurrentMedia()
		if !ok {
			fmt.Println("(gallery is empty)")
			return nil
		}
		fmt.Printf("%3d. [%s] %s\n", a.collection.ActiveMediaIndex(), m.Kind, m.RelPath)
		a.collection.NextMedia()
	}
	return nil
}

// cmdWatch rescans galleries when their backing folders change, until
// interrupted.
func (a *App) cmdWatch() error {
	wcfg := a.cfg.GetWatcher()
	if !wcfg.Enabled {
		return fmt.Errorf("watcher is disabled in config")
	}

	watcher, err := watch.NewFolderWatcher(wcfg.DebounceMs)
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, g := range a.collection.Galleries() {
		if err := watcher.Watch(g.Folder.Ref()); err != nil {
			log.Printf("Cannot watch %s: %v", g.Folder.Ref(), err)
		}
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	fmt.Println("Watching gallery folders. Press Ctrl-C to stop.")

	for {
		select {
		case <-sig:
			return nil
		case root := <-watcher.Notify():
			idx := a.indexForFolder(root)
			if idx < 0 {
				continue
			}
			debug.Log(debug.APP, "Folder changed, rescanning gallery %d", idx)
			if err := a.collection.Rescan(idx); err != nil {
				log.Printf("Rescan of %s failed: %v", root, err)
				continue
			}
			g := a.collection.Galleries()[idx]
			fmt.Printf("Rescanned %q: %d media files\n", g.Name, len(g.Media))
		}
	}
}

func (a *App) indexForFolder(root string) int {
	for i, g := range a.collection.Galleries() {
		if g.Folder.Ref() == root {
			return i
		}
	}
	return -1
}
