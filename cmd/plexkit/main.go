package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/mmcdole/plexkit/internal/adapter"
	"github.com/mmcdole/plexkit/internal/domain"
	"github.com/mmcdole/plexkit/internal/mediaserver/plex"
	"github.com/mmcdole/plexkit/internal/normalize"
	"github.com/mmcdole/plexkit/internal/search"
	"github.com/mmcdole/plexkit/internal/service"
	"github.com/mmcdole/plexkit/internal/store"
)

// Version is set at build time via -ldflags
var Version = "dev"

const usage = `usage: plexkit [-config file] <command> [flags]

commands:
  parse -kind <kind> <file>   parse a captured response and print it normalized
  sync -dir <dir>             sync captured music sections and playlists into the store
  search [-limit n] <query>   search titles held in the store
`

func main() {
	var showVersion bool
	var configPath string
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.StringVar(&configPath, "config", "", "config file")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if showVersion {
		fmt.Printf("plexkit %s\n", Version)
		return
	}

	if err := run(configPath, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app carries what every command needs.
type app struct {
	cfg    *adapter.Config
	logger *slog.Logger
	out    io.Writer
}

func run(configPath string, args []string) error {
	if len(args) == 0 {
		flag.Usage()
		return errors.New("missing command")
	}

	// Load configuration
	cfg, err := adapter.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger, closer, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger, closer = adapter.NullLogger(), io.NopCloser(os.Stderr)
	}
	defer closer.Close()
	slog.SetDefault(logger)

	logger.Info("starting plexkit", "version", Version, "command", args[0])

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := &app{cfg: cfg, logger: logger, out: os.Stdout}
	switch args[0] {
	case "parse":
		return a.parse(args[1:])
	case "sync":
		return a.sync(ctx, args[1:])
	case "search":
		return a.search(args[1:])
	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func (a *app) print(v any) error {
	enc := json.NewEncoder(a.out)
	if a.cfg.Output.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func (a *app) openStore() (*store.EntityStore, error) {
	s, err := store.NewEntityStore(a.cfg.Store.Dir, a.cfg.Store.ServerURL, a.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return s, nil
}

// parse reads one captured body, parses it as kind and prints the
// normalized graph. Values without a kind (genre and country records)
// print as parsed.
func (a *app) parse(args []string) error {
	fs := flag.NewFlagSet("parse", flag.ContinueOnError)
	kind := fs.String("kind", "", "parser to run (artistContainer, hubContainer, ...)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("parse: expected one file")
	}

	fn, err := lookupParser(plex.NewParser(a.logger), *kind)
	if err != nil {
		return err
	}

	raw, err := readJSON(fs.Arg(0))
	if err != nil {
		return err
	}

	parsed, warnings := fn(raw)
	if a.cfg.Output.Warnings {
		for _, w := range warnings {
			fmt.Fprintf(os.Stderr, "warning: %s\n", w)
		}
	}

	normalized, err := normalize.Normalize(parsed)
	if errors.Is(err, domain.ErrMissingKind) {
		return a.print(parsed)
	}
	if err != nil {
		return err
	}
	return a.print(normalized)
}

// progressPrinter reports sync progress on stderr.
type progressPrinter struct{}

func (progressPrinter) OnProgress(p domain.SyncProgress) {
	switch {
	case p.Error != nil:
		fmt.Fprintf(os.Stderr, "section %d: %v\n", p.SectionID, p.Error)
	case p.FromCache:
		fmt.Fprintf(os.Stderr, "section %d: up to date\n", p.SectionID)
	case p.Done:
		fmt.Fprintf(os.Stderr, "section %d: %d tracks\n", p.SectionID, p.Total)
	default:
		fmt.Fprintf(os.Stderr, "section %d: %s %d/%d\r", p.SectionID, p.Table, p.Loaded, p.Total)
	}
}

func (a *app) sync(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("sync", flag.ContinueOnError)
	dir := fs.String("dir", ".", "directory of captured responses")
	force := fs.Bool("force", false, "refetch sections that are up to date")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := a.openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	library := plex.NewLibrary(dirFetcher{dir: *dir}, a.logger)
	svc := service.NewLibraryService(library, s, search.NewIndex(a.logger), a.logger)

	sections, err := svc.Sections(ctx)
	if err != nil {
		return err
	}

	for _, section := range sections {
		if section.Type != "artist" {
			continue
		}
		if err := svc.SmartSync(ctx, section, *force, progressPrinter{}); err != nil {
			return err
		}
	}

	if err := svc.SyncPlaylists(ctx); err != nil {
		a.logger.Warn("playlist sync failed", "error", err)
	}

	tables, err := s.Tables()
	if err != nil {
		return err
	}
	counts := make(map[string]int, len(tables))
	for _, table := range tables {
		entities, err := s.Entities(table)
		if err != nil {
			return err
		}
		counts[table] = len(entities)
	}
	return a.print(counts)
}

func (a *app) search(args []string) error {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	limit := fs.Int("limit", 20, "maximum results")
	if err := fs.Parse(args); err != nil {
		return err
	}
	query := strings.Join(fs.Args(), " ")
	if query == "" {
		return errors.New("search: missing query")
	}

	s, err := a.openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	index := search.NewIndex(a.logger)
	if err := index.Load(s, normalize.TableArtists, normalize.TableAlbums, normalize.TableTracks, normalize.TablePlaylists); err != nil {
		return err
	}

	results := index.Find(query)
	if len(results) > *limit {
		results = results[:*limit]
	}
	if len(results) == 0 {
		if suggestions := index.Suggest(query, 5); len(suggestions) > 0 {
			fmt.Fprintf(os.Stderr, "no matches, did you mean: %s\n", strings.Join(suggestions, ", "))
		}
	}
	return a.print(results)
}
