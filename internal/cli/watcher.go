package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/inclex/internal/logging"
	"github.com/yaklabco/inclex/internal/ui/pretty"
	"github.com/yaklabco/inclex/pkg/fsutil"
	"github.com/yaklabco/inclex/pkg/lexer/inc"
	"github.com/yaklabco/inclex/pkg/textedit"
)

// fileWatcher keeps a document in sync with a file on disk.
type fileWatcher struct {
	path    string
	doc     *inc.DocumentInput
	info    *fsutil.FileInfo
	logger  *log.Logger
	changes bool
	styles  *pretty.Styles
	out     io.Writer
}

func (w *fileWatcher) lexInitial() error {
	return w.doc.Read(func(h *inc.TokenHierarchy) error {
		root, err := h.TokenList()
		if err != nil {
			return withExit(ExitInternalError, fmt.Errorf("lex %s: %w", w.path, err))
		}
		w.logger.Info("lexed", logging.FieldTokens, root.TokenCount())
		return nil
	})
}

// reload reads the file and applies the difference to the previous content
// as a single edit.
func (w *fileWatcher) reload(sess *session) {
	content, info, err := fsutil.ReadFile(sess.ctx, w.path)
	if err != nil {
		if errors.Is(err, fsutil.ErrNotFound) {
			w.logger.Warn("file removed; waiting for it to return", logging.FieldPath, w.path)
			return
		}
		w.logger.Error("read failed", logging.FieldError, err)
		return
	}

	changed, err := fsutil.Changed(w.info, content)
	if err != nil || !changed {
		return
	}
	w.info = info

	edit, ok := textedit.ComputeEdit([]byte(w.doc.Buffer().String()), content)
	if !ok {
		return
	}
	res, err := w.doc.Replace(edit.StartOffset, edit.RemovedLength(), edit.NewText)
	if err != nil {
		w.logger.Error("apply edit failed", logging.FieldError, err)
		return
	}
	w.report(edit, res)
}

func (w *fileWatcher) report(edit textedit.TextEdit, res inc.UpdateResult) {
	fields := []any{
		logging.FieldOffset, edit.StartOffset,
		logging.FieldRemoved, edit.RemovedLength(),
		logging.FieldInserted, edit.InsertedLength(),
		logging.FieldOutcome, res.Outcome,
	}
	if res.RebuildRequired() {
		w.logger.Warn("relexed from scratch", append(fields, logging.FieldError, res.Err)...)
	} else if res.Event != nil && res.Event.Change != nil {
		change := res.Event.Change
		w.logger.Info("relexed",
			append(fields, logging.FieldRemovedTokens, change.RemovedTokenCount(),
				logging.FieldAddedTokens, change.AddedTokenCount())...)
	}

	if w.changes && res.Event != nil {
		fmt.Fprint(w.out, w.styles.FormatEvent(res.Event, w.doc.Buffer().Snapshot()))
	}
}
