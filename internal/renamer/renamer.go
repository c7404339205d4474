// Package renamer drives each video file from discovery to a terminal
// decision: skip, rename, or blocked.
package renamer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"golang.org/x/text/unicode/norm"

	"github.com/Nomadcxx/jellyrename/internal/logging"
	"github.com/Nomadcxx/jellyrename/internal/naming"
	"github.com/Nomadcxx/jellyrename/internal/prompt"
	"github.com/Nomadcxx/jellyrename/internal/scanner"
	"github.com/Nomadcxx/jellyrename/internal/tmdb"
	"github.com/Nomadcxx/jellyrename/internal/ui"
)

// Searcher looks up candidates for a query. It reports failures as no match.
type Searcher interface {
	Search(ctx context.Context, query string) []tmdb.Candidate
}

type Option func(*Renamer)

// WithDryRun makes confirmed renames stop short of touching the file.
func WithDryRun(dryRun bool) Option {
	return func(r *Renamer) { r.dryRun = dryRun }
}

func WithLogger(log *logging.Logger) Option {
	return func(r *Renamer) {
		if log != nil {
			r.log = log
		}
	}
}

// WithOutput sets where progress lines are printed. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(r *Renamer) { r.out = w }
}

type Renamer struct {
	fs       afero.Fs
	scanner  *scanner.Scanner
	searcher Searcher
	prompter prompt.Prompter
	out      io.Writer
	log      *logging.Logger
	dryRun   bool
}

func New(fsys afero.Fs, scan *scanner.Scanner, searcher Searcher, prompter prompt.Prompter, opts ...Option) *Renamer {
	r := &Renamer{
		fs:       fsys,
		scanner:  scan,
		searcher: searcher,
		prompter: prompter,
		out:      os.Stdout,
		log:      logging.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.With(logging.F("run_id", uuid.NewString()))
	return r
}

// Run processes every video file under root, one at a time. Per-file
// problems never stop the scan; Run returns an error only when root cannot
// be scanned, ctx is cancelled, or the user can no longer answer prompts.
func (r *Renamer) Run(ctx context.Context, root string) (Summary, error) {
	start := time.Now()
	var summary Summary

	fmt.Fprintf(r.out, "\nScanning folder recursively: %s\n", ui.Path(root))
	r.log.Info("renamer", "Scan started", logging.F("root", root), logging.F("dry_run", r.dryRun))

	err := r.scanner.Walk(ctx, root, func(f scanner.File) error {
		outcome := r.Process(ctx, f)
		summary.Add(outcome.Decision)
		if errors.Is(outcome.Err, prompt.ErrInterrupted) || errors.Is(outcome.Err, prompt.ErrInputClosed) {
			return outcome.Err
		}
		return nil
	})
	summary.Duration = time.Since(start)

	r.log.Info("renamer", "Scan finished",
		logging.F("files", summary.Total),
		logging.F("renamed", summary.Count(Renamed)),
		logging.F("duration", summary.Duration))
	r.PrintSummary(summary)

	if err != nil {
		return summary, fmt.Errorf("rename run stopped: %w", err)
	}
	return summary, nil
}

// Process takes one file through the pipeline. It always returns a terminal
// outcome.
func (r *Renamer) Process(ctx context.Context, f scanner.File) Outcome {
	outcome := r.process(ctx, f)

	fields := []logging.Field{
		logging.F("file", f.Path),
		logging.F("decision", outcome.Decision.String()),
	}
	if outcome.NewName != "" {
		fields = append(fields, logging.F("new_name", outcome.NewName))
	}
	switch {
	case outcome.Err != nil:
		r.log.Error("renamer", "File not renamed", outcome.Err, fields...)
	case outcome.Decision.Blocked():
		r.log.Warn("renamer", "File not renamed", fields...)
	default:
		r.log.Info("renamer", "File processed", fields...)
	}
	return outcome
}

func (r *Renamer) process(ctx context.Context, f scanner.File) Outcome {
	outcome := Outcome{File: f}

	ui.Separator(r.out)
	fmt.Fprintf(r.out, "Found file: %s %s\n", ui.Path(f.Name), ui.Dim("("+ui.FormatBytes(f.Size)+")"))

	if naming.IsCanonicalFilename(f.Name) {
		fmt.Fprintln(r.out, ui.Dim("Already in Title (Year) format, auto-skip."))
		outcome.Decision = AutoSkipCompliant
		return outcome
	}

	outcome.Query = naming.Normalize(f.Stem)
	fmt.Fprintf(r.out, "Search title guess: %s\n", ui.Info("'"+outcome.Query+"'"))

	candidates := r.searcher.Search(ctx, outcome.Query)

	choice, err := prompt.Select(r.prompter, candidates)
	if err != nil {
		outcome.Err = err
	}
	if choice == nil {
		fmt.Fprintln(r.out, ui.Warning("SKIPPED, no match chosen or found."))
		outcome.Decision = UserSkip
		return outcome
	}

	target := naming.BuildTargetName(choice.Title, choice.ReleaseDate, f.Ext).String()
	outcome.NewName = target

	if sameName(f.Name, target) {
		fmt.Fprintln(r.out, ui.Dim("Already correctly named, skipping."))
		outcome.Decision = AutoSkipAlreadyCorrect
		return outcome
	}

	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "Old: %s\n", ui.Path(f.Name))
	fmt.Fprintf(r.out, "New: %s\n", ui.Success(target))

	ok, err := r.prompter.Confirm(f.Name, target)
	if err != nil {
		outcome.Err = err
	}
	if !ok {
		fmt.Fprintln(r.out, "Skipped.")
		outcome.Decision = UserSkip
		return outcome
	}

	outcome.Decision, outcome.Err = r.rename(f, filepath.Join(f.Dir, target))
	return outcome
}

// rename moves f to newPath within its directory, never replacing an
// existing file. The existence check and the rename are not atomic.
func (r *Renamer) rename(f scanner.File, newPath string) (Decision, error) {
	if _, err := r.fs.Stat(newPath); err == nil {
		ui.WarningMsg(r.out, "File with that name already exists, skipping.")
		return BlockedExists, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		ui.ErrorMsg(r.out, "OS error: %v, skipping.", err)
		return BlockedOSError, fmt.Errorf("checking %s: %w", newPath, err)
	}

	if r.dryRun {
		ui.InfoMsg(r.out, "Dry run, not renamed.")
		return DryRun, nil
	}

	if err := r.fs.Rename(f.Path, newPath); err != nil {
		if errors.Is(err, fs.ErrPermission) || isLockError(err) {
			ui.ErrorMsg(r.out, "File is locked or in use, skipping.")
			return BlockedLocked, err
		}
		ui.ErrorMsg(r.out, "OS error: %v, skipping.", err)
		return BlockedOSError, err
	}

	ui.SuccessMsg(r.out, "Renamed successfully!")
	return Renamed, nil
}

// PrintSummary prints the per-decision counts of a run.
func (r *Renamer) PrintSummary(s Summary) {
	ui.Section(r.out, "Summary")

	var rows [][]string
	for _, d := range Decisions {
		if n := s.Count(d); n > 0 {
			rows = append(rows, []string{d.String(), strconv.Itoa(n)})
		}
	}
	rows = append(rows, []string{"total", strconv.Itoa(s.Total)})
	ui.CompactTable(r.out, []string{"Outcome", "Files"}, rows)
	fmt.Fprintf(r.out, "\nFinished in %s\n", ui.FormatDuration(s.Duration))
}

// sameName compares file names the way most filesystems do, ignoring the
// difference between composed and decomposed accents. A decomposed name on
// disk therefore stays decomposed: it counts as already correct.
func sameName(a, b string) bool {
	return norm.NFC.String(a) == norm.NFC.String(b)
}
