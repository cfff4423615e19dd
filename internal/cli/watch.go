package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/yaklabco/inclex/internal/logging"
	"github.com/yaklabco/inclex/internal/ui/pretty"
	"github.com/yaklabco/inclex/pkg/config"
	"github.com/yaklabco/inclex/pkg/fsutil"
	"github.com/yaklabco/inclex/pkg/lexer/inc"
	"github.com/yaklabco/inclex/pkg/textbuf"
)

// watchSettle coalesces the bursts of events editors produce for one save.
const watchSettle = 50 * time.Millisecond

type watchFlags struct {
	lang    string
	changes bool
}

func newWatchCommand(info BuildInfo) *cobra.Command {
	cfg := &config.Config{}
	flags := &watchFlags{}

	cmd := &cobra.Command{
		Use:   "watch FILE",
		Short: "Follow a file and relex it incrementally on every save",
		Long: `Watch FILE and, whenever it is saved, turn the difference to the previous
content into one edit and update the token hierarchy incrementally.

Each update is logged with the size of the token change. With --changes the
full change tree is printed as well. Stop with Ctrl-C.`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args[0], cfg, flags, info)
		},
	}

	cmd.Flags().StringVar(&flags.lang, "lang", "", "force a language instead of detecting it")
	cmd.Flags().BoolVar(&flags.changes, "changes", false, "print the token change tree of every update")

	return cmd
}

func runWatch(cmd *cobra.Command, path string, cli *config.Config, flags *watchFlags, info BuildInfo) error {
	sess, err := newSession(cmd, cli, info)
	if err != nil {
		return err
	}
	logger := logging.NewInteractive()
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		logger.SetLevel(log.DebugLevel)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	content, fileInfo, err := fsutil.ReadFile(sess.ctx, absPath)
	if err != nil {
		return err
	}
	language, err := sess.language(flags.lang, absPath, content)
	if err != nil {
		return err
	}

	doc := inc.NewDocumentInput(textbuf.New(content), language, inc.Options{
		Logger:               logger,
		MaxFlySequenceLength: sess.cfg.MaxFlySequence,
	})
	defer doc.Close()

	w := &fileWatcher{
		path:    absPath,
		doc:     doc,
		info:    fileInfo,
		logger:  logger,
		changes: flags.changes,
		styles:  pretty.NewStyles(pretty.IsColorEnabled(string(sess.cfg.Color), cmd.OutOrStdout())),
		out:     cmd.OutOrStdout(),
	}
	if err := w.lexInitial(); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return withExit(ExitIOError, fmt.Errorf("create watcher: %w", err))
	}
	defer watcher.Close()

	// Editors often save by renaming a temp file over the target, which
	// drops a watch on the file itself.
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		return withExit(ExitIOError, fmt.Errorf("watch %s: %w", filepath.Dir(absPath), err))
	}
	logger.Info("watching", logging.FieldPath, path, logging.FieldLanguage, language.Name())

	var settle <-chan time.Time
	for {
		select {
		case <-sess.ctx.Done():
			logger.Info("stopped watching", logging.FieldPath, path)
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != absPath || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			settle = time.After(watchSettle)
		case <-settle:
			settle = nil
			w.reload(sess)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch error", logging.FieldError, err)
		}
	}
}
