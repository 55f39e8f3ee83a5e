package dataset

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gamepulse/dashboard/internal/models"
)

var (
	// ErrNoSource is returned when a remote load is requested without a URL.
	ErrNoSource = errors.New("dataset: no data source configured")
	// ErrLFSPointer marks a file that is a Git LFS pointer rather than the dataset.
	ErrLFSPointer = errors.New("dataset: file is a git-lfs pointer")
)

// SnapshotSourcePrefix marks the Source of tables read back from the snapshot store.
const SnapshotSourcePrefix = "snapshot:"

// BaseSource strips the snapshot markers from a table source, leaving the file or URL
// the records were originally read from.
func BaseSource(source string) string {
	for strings.HasPrefix(source, SnapshotSourcePrefix) {
		source = strings.TrimPrefix(source, SnapshotSourcePrefix)
	}
	return source
}

// SnapshotStore persists normalized records between runs.
type SnapshotStore interface {
	LoadSnapshot(ctx context.Context) (records []models.GameRecord, cols []string, source string, err error)
	SaveSnapshot(ctx context.Context, source string, records []models.GameRecord, cols []string) error
}

// Options configures where the Loader looks for data.
type Options struct {
	Dir string
	// SmallCSV files win over every other source when present.
	SmallCSV []string
	Parquet  []string
	CSV      []string
	DataURL  string

	HTTPClient *http.Client
	Snapshot   SnapshotStore
	Finalize   FinalizeOptions
}

// DefaultOptions returns the standard candidate list relative to dir.
func DefaultOptions(dir string) Options {
	return Options{
		Dir:        dir,
		SmallCSV:   []string{"data/games_small.csv", "games_small.csv"},
		Parquet:    []string{"data/games.parquet", "games.parquet"},
		CSV:        []string{"data/games.csv", "games.csv"},
		HTTPClient: &http.Client{Timeout: 2 * time.Minute},
		Finalize:   FinalizeOptions{YearsBack: 10},
	}
}

// Loader locates the dataset among its candidate sources and normalizes it.
type Loader struct {
	opts Options
}

// NewLoader creates a Loader.
func NewLoader(opts Options) *Loader {
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	return &Loader{opts: opts}
}

// Load walks the sources in priority order: small CSV, snapshot store, Parquet, full CSV,
// remote URL. When nothing is usable it returns an empty table carrying a notice.
func (l *Loader) Load(ctx context.Context) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	smallPath := l.firstExisting(l.opts.SmallCSV)
	if smallPath != "" {
		t, err := l.fromCSV(ctx, smallPath)
		if err == nil {
			return t, nil
		}
		slog.Warn("small dataset unusable", "path", smallPath, "error", err)
	}

	if l.opts.Snapshot != nil {
		records, cols, src, err := l.opts.Snapshot.LoadSnapshot(ctx)
		switch {
		case err != nil:
			slog.Warn("snapshot store unavailable", "error", err)
		case len(records) > 0:
			slog.Info("dataset loaded from snapshot", "source", src, "rows", len(records))
			return l.finalize(records, toSet(cols), SnapshotSourcePrefix+BaseSource(src)), nil
		}
	}

	csvPath := l.firstExisting(l.opts.CSV)

	if pqPath := l.firstExisting(l.opts.Parquet); pqPath != "" {
		frame, err := readParquetFile(pqPath)
		if err != nil {
			slog.Warn("parquet dataset unreadable", "path", pqPath, "error", err)
		} else {
			records, cols := Normalize(frame)
			if distinctYears(records) >= 2 || csvPath == "" {
				return l.store(ctx, pqPath, records, cols), nil
			}
			slog.Info("parquet dataset lacks release years, rebuilding from csv", "parquet", pqPath, "csv", csvPath)
		}
	}

	if csvPath != "" {
		t, err := l.fromCSV(ctx, csvPath)
		if err == nil {
			return t, nil
		}
		slog.Warn("csv dataset unusable", "path", csvPath, "error", err)
	}

	if l.opts.DataURL != "" {
		frame, err := l.fetchRemote(ctx, l.opts.DataURL)
		if err == nil {
			records, cols := Normalize(frame)
			t := l.store(ctx, l.opts.DataURL, records, cols)
			t.Notices = append(t.Notices, "Loaded remote dataset from DATA_URL.")
			return t, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		slog.Warn("remote dataset unusable", "url", l.opts.DataURL, "error", err)
	}

	slog.Warn("no dataset found", "dir", l.opts.Dir)
	t := l.finalize(nil, toSet([]string{ColAppID, ColName, ColReleaseYear, ColPrice, ColOwnersMid, ColUserScore, ColPrimaryGenre, ColPublishers}), "")
	t.Notices = append(t.Notices, "No local file found (data/games.parquet or data/games.csv). Set DATA_URL to download the dataset.")
	return t, nil
}

func (l *Loader) fromCSV(ctx context.Context, path string) (*Table, error) {
	frame, err := readCSVFile(path)
	if err != nil {
		return nil, err
	}
	records, cols := Normalize(frame)
	return l.store(ctx, path, records, cols), nil
}

// store writes freshly normalized records to the snapshot store, if any, and finalizes them.
func (l *Loader) store(ctx context.Context, source string, records []models.GameRecord, cols map[string]bool) *Table {
	slog.Info("dataset loaded", "source", source, "rows", len(records))
	if l.opts.Snapshot != nil && len(records) > 0 {
		if err := l.opts.Snapshot.SaveSnapshot(ctx, source, records, setKeys(cols)); err != nil {
			slog.Warn("failed to save snapshot", "error", err)
		}
	}
	return l.finalize(records, cols, source)
}

func (l *Loader) finalize(records []models.GameRecord, cols map[string]bool, source string) *Table {
	t := Finalize(records, cols, source, l.opts.Finalize)
	t.LoadedAt = time.Now()
	for _, n := range t.Notices {
		slog.Info(n)
	}
	return t
}

func (l *Loader) firstExisting(candidates []string) string {
	for _, c := range candidates {
		p := c
		if !filepath.IsAbs(p) && l.opts.Dir != "" {
			p = filepath.Join(l.opts.Dir, c)
		}
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			return p
		}
	}
	return ""
}

func (l *Loader) fetchRemote(ctx context.Context, rawURL string) (*Frame, error) {
	if rawURL == "" {
		return nil, ErrNoSource
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.opts.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("dataset: GET %s: %s", rawURL, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if isParquetURL(rawURL) {
		return ReadParquet(bytes.NewReader(body), int64(len(body)))
	}
	return ReadCSV(bytes.NewReader(body))
}

func isParquetURL(rawURL string) bool {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		p = u.Path
	}
	return strings.HasSuffix(strings.ToLower(p), ".parquet")
}

func readCSVFile(path string) (*Frame, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	head := make([]byte, 256)
	n, err := io.ReadFull(fh, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if IsLFSPointer(head[:n]) {
		return nil, ErrLFSPointer
	}
	if _, err := fh.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	return ReadCSV(fh)
}

func readParquetFile(path string) (*Frame, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	st, err := fh.Stat()
	if err != nil {
		return nil, err
	}
	return ReadParquet(fh, st.Size())
}

func toSet(cols []string) map[string]bool {
	set := make(map[string]bool, len(cols))
	for _, c := range cols {
		set[c] = true
	}
	return set
}

func setKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}
