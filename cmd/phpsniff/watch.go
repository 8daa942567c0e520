package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"phpsniff/internal/driver"
)

const watchDebounce = 200 * time.Millisecond

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [flags] [directory]...",
		Short: "Re-check files whenever they change",
		Long:  "Watch runs check once, then again every time a file under the given directories changes. Unchanged files are answered from the result cache.",
		RunE:  runWatch,
	}
	addRunFlags(cmd)
	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	paths := targetPaths(args)
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	s, err := loadSettings(cmd, paths, driver.ModeCheck)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch init failed: %w", err)
	}
	defer watcher.Close()

	for _, p := range paths {
		if err := addWatchRecursive(watcher, p, s.opts.Exclude); err != nil {
			return fmt.Errorf("watch failed: %w", err)
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	return watchLoop(ctx, watcher, s, paths, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

func watchLoop(ctx context.Context, watcher *fsnotify.Watcher, s *runSettings, paths []string, out, errOut io.Writer) error {
	check := func() error {
		rep, err := driver.Run(ctx, paths, s.opts)
		if err != nil {
			return err
		}
		if !s.quiet {
			fmt.Fprintf(out, "[%s] checked %d files\n", time.Now().Format("15:04:05"), len(rep.Files))
		}
		if err := s.render(out, rep); err != nil {
			return err
		}
		s.printTimings(errOut, rep)
		return nil
	}
	if err := check(); err != nil {
		return err
	}

	trigger := make(chan struct{}, 1)
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := addWatchRecursive(watcher, ev.Name, nil); err != nil {
						fmt.Fprintf(errOut, "phpsniff: watch error: %v\n", err)
					}
				}
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, func() {
				select {
				case trigger <- struct{}{}:
				default:
				}
			})
		case <-trigger:
			if err := check(); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				fmt.Fprintf(errOut, "phpsniff: %v\n", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(errOut, "phpsniff: watch error: %v\n", err)
		}
	}
}

// addWatchRecursive watches root and every directory below it that no
// exclude pattern matches.
func addWatchRecursive(w *fsnotify.Watcher, root string, exclude []string) error {
	dirs, err := watchDirs(root, exclude)
	if err != nil {
		return err
	}
	for _, d := range dirs {
		if err := w.Add(d); err != nil {
			return err
		}
	}
	return nil
}

func watchDirs(root string, exclude []string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{filepath.Dir(root)}, nil
	}
	var dirs []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel != "." {
			for _, p := range exclude {
				if ok, _ := doublestar.Match(p, rel); ok {
					return filepath.SkipDir
				}
				if ok, _ := doublestar.Match(p, rel+"/"); ok {
					return filepath.SkipDir
				}
			}
		}
		dirs = append(dirs, path)
		return nil
	})
	return dirs, err
}
