// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.astrophena.name/normheader/cli"
	"go.astrophena.name/normheader/header"
	"go.astrophena.name/normheader/logger"
	"go.astrophena.name/normheader/timeline"
)

func main() { cli.Main(newApp()) }

type app struct {
	name          string
	email         string
	exts          extList
	recursive     bool
	order         string
	gap           timeline.Range
	work          timeline.Range
	seed          *uint64
	dry           bool
	preserveWidth bool
	addMissing    bool
	configPath    string

	// Overridden in tests.
	now         func() time.Time
	gitUserName func(context.Context) string
}

func newApp() *app {
	return &app{
		exts:        extList{exts: []string{".c", ".h", ".cpp", ".hpp", ".cc", ".cxx", ".py"}},
		now:         time.Now,
		gitUserName: gitUserName,
	}
}

func (a *app) Flags(fs *flag.FlagSet) {
	fs.StringVar(&a.name, "name", "", "Name for the By field (default: $FORTY2_NAME or git user.name).")
	fs.StringVar(&a.email, "email", "", "Email for the By field (default: $FORTY2_EMAIL).")
	fs.Var(&a.exts, "ext", "Comma-separated file `extensions` to include. Can be repeated. Empty matches all files.")
	fs.BoolVar(&a.recursive, "r", false, "Recurse into subdirectories.")
	fs.StringVar(&a.order, "order", "name", "Order files before timestamping: name or mtime.")
	fs.IntVar(&a.gap.Min, "gap-min", 60, "Minimum `seconds` between consecutive files.")
	fs.IntVar(&a.gap.Max, "gap-max", 120, "Maximum `seconds` between consecutive files.")
	fs.IntVar(&a.work.Min, "work-min", 180, "Minimum `seconds` between Created and Updated.")
	fs.IntVar(&a.work.Max, "work-max", 360, "Maximum `seconds` between Created and Updated.")
	fs.Func("seed", "Seed for a reproducible timing plan.", func(s string) error {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return err
		}
		a.seed = &v
		return nil
	})
	fs.BoolVar(&a.dry, "dry", false, "Print what would change, without writing any file.")
	fs.BoolVar(&a.preserveWidth, "preserve-width", false, "Keep the width of rewritten header lines.")
	fs.BoolVar(&a.addMissing, "add-missing", false, "Insert a header into files that have none.")
	fs.StringVar(&a.configPath, "config", "", "Path to the project config `archive` (default: "+configFile+" in the directory).")
}

func (a *app) Run(ctx context.Context) error {
	env := cli.GetEnv(ctx)

	if len(env.Args) != 1 {
		return fmt.Errorf("%w: expected exactly one directory, got %d arguments", cli.ErrInvalidArgs, len(env.Args))
	}
	root := env.Args[0]

	author, err := a.author(ctx, env)
	if err != nil {
		return err
	}
	if err := a.gap.Validate(); err != nil {
		return fmt.Errorf("%w: gap: %v", cli.ErrInvalidArgs, err)
	}
	if err := a.work.Validate(); err != nil {
		return fmt.Errorf("%w: work: %v", cli.ErrInvalidArgs, err)
	}
	if a.order != "name" && a.order != "mtime" {
		return fmt.Errorf("%w: -order must be name or mtime, got %q", cli.ErrInvalidArgs, a.order)
	}

	configPath, required := a.configPath, true
	if configPath == "" {
		configPath, required = filepath.Join(root, configFile), false
	}
	cfg, err := loadConfig(configPath, required)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	files, err := collectFiles(ctx, root, &a.exts, a.recursive, cfg)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(env.Stdout, "No files found with the given extensions.")
		return nil
	}
	if a.order == "mtime" {
		sortByModTime(files)
	}

	rng := a.rand()
	windows := timeline.Plan(len(files), a.now(), a.gap, a.work, rng)
	logger.Debug(ctx, "planned session",
		slog.Int("files", len(files)),
		slog.String("start", timeline.Format(windows[0].Created)),
		slog.String("end", timeline.Format(windows[len(windows)-1].Updated)),
	)

	var s summary
	for i, path := range files {
		a.processFile(ctx, &s, path, header.Options{
			Author:        author,
			Window:        windows[i],
			PreserveWidth: a.preserveWidth,
			DryRun:        a.dry,
		}, cfg.styles)
	}

	fmt.Fprintf(env.Stdout, "\nDone. Files: %d. Updated: %d. Inserted: %d. Skipped: %d.\n",
		len(files), s.updated, s.inserted, s.skipped)
	return nil
}

type summary struct {
	updated, inserted, skipped int
}

func (a *app) processFile(ctx context.Context, s *summary, path string, opts header.Options, styles *header.Styles) {
	env := cli.GetEnv(ctx)

	out := header.Process(path, opts)
	logOutcome(ctx, path, opts.Window, out)
	if out.Changed {
		s.updated++
		fmt.Fprintf(env.Stdout, "%s: %s [%s]\n", a.verb("UPDATED", "WOULD UPDATE"), path, opts.Window)
		return
	}

	if out.Status == header.StatusNoHeader && a.addMissing {
		out = header.Insert(path, styles, opts)
		logOutcome(ctx, path, opts.Window, out)
		if out.Changed {
			s.inserted++
			fmt.Fprintf(env.Stdout, "%s: %s [%s]\n", a.verb("INSERTED", "WOULD INSERT"), path, opts.Window)
			if a.dry && logger.Get(ctx).Enabled(ctx, slog.LevelDebug) {
				block := styles.For(path).Block(path, opts.Author, opts.Window)
				env.Logf("Would insert header into %s:\n%s", path, strings.Join(block, "\n"))
			}
			return
		}
	}

	s.skipped++
	switch out.Status {
	case header.StatusReadFail, header.StatusWriteFail:
		fmt.Fprintf(env.Stdout, "SKIP (%s): %s\n", out.Status, path)
	}
}

func (a *app) verb(done, would string) string {
	if a.dry {
		return would
	}
	return done
}

func logOutcome(ctx context.Context, path string, w timeline.Window, out header.Outcome) {
	attrs := []slog.Attr{
		slog.String("path", path),
		slog.String("status", out.Status.String()),
		slog.String("window", w.String()),
	}
	if out.Err != nil {
		logger.Warn(ctx, "file skipped", append(attrs, slog.Any("err", out.Err))...)
		return
	}
	logger.Debug(ctx, "file processed", attrs...)
}

// author resolves the By field from flags, the environment and git, in
// that order.
func (a *app) author(ctx context.Context, env *cli.Env) (header.Author, error) {
	name := a.name
	if name == "" {
		name = env.Getenv("FORTY2_NAME")
	}
	if name == "" {
		name = a.gitUserName(ctx)
	}
	if name == "" {
		return header.Author{}, fmt.Errorf("%w: provide -name, set $FORTY2_NAME or configure git user.name", cli.ErrInvalidArgs)
	}

	email := a.email
	if email == "" {
		email = env.Getenv("FORTY2_EMAIL")
	}
	return header.Author{Name: name, Email: email}, nil
}

func (a *app) rand() *rand.Rand {
	seed := rand.Uint64()
	if a.seed != nil {
		seed = *a.seed
	}
	return rand.New(rand.NewPCG(seed, seed))
}

func gitUserName(ctx context.Context) string {
	out, err := exec.CommandContext(ctx, "git", "config", "--get", "user.name").Output()
	if err != nil {
		logger.Debug(ctx, "git user.name lookup failed", slog.Any("err", err))
		return ""
	}
	return strings.TrimSpace(string(out))
}
