package artifacts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	domainroster "cfb-spotlight-pipeline/internal/domain/roster"
	domainstats "cfb-spotlight-pipeline/internal/domain/stats"
)

// Writer persists the published JSON artifacts. Every write goes to a temp
// path and is renamed into place so the front end never observes a
// half-written file. Identical content is left untouched unless force is set,
// keeping unchanged files byte-stable across runs.
type Writer struct {
	basePath string
	force    bool
}

// NewWriter constructs a writer rooted at basePath. force bypasses the
// skip-if-identical guard (the FORCE_REBUILD flag).
func NewWriter(basePath string, force bool) *Writer {
	return &Writer{basePath: basePath, force: force}
}

// BasePath exposes the writer root path (primarily for testing).
func (w *Writer) BasePath() string {
	if w == nil {
		return ""
	}
	return w.basePath
}

// WriteRoster writes the roster array and its metadata file.
func (w *Writer) WriteRoster(snapshot domainroster.Snapshot) error {
	players := append([]domainroster.Player(nil), snapshot.Players...)
	sort.SliceStable(players, func(i, j int) bool {
		return players[i].Name < players[j].Name
	})
	if err := w.writeJSON(RosterFile, players); err != nil {
		return err
	}
	return w.writeJSON(RosterMetaFile, snapshot.Meta())
}

// WriteSpotlight writes one (side, scope) bucket. A nil slice is published as
// an empty array, never a missing file.
func (w *Writer) WriteSpotlight(bucket domainstats.Bucket, entries []domainstats.Entry) error {
	if entries == nil {
		entries = []domainstats.Entry{}
	}
	return w.writeJSON(SpotlightFile(bucket), entries)
}

// WriteFeatured writes the single cross-cutting hero pick. A nil entry is
// published as an empty object so the front end can probe optional fields.
func (w *Writer) WriteFeatured(entry *domainstats.Entry) error {
	if entry == nil {
		return w.writeJSON(FeaturedFile, struct{}{})
	}
	return w.writeJSON(FeaturedFile, entry)
}

// WriteBuildMeta writes the run's build metadata. Build metadata always
// changes (generatedAt), so it is written unconditionally.
func (w *Writer) WriteBuildMeta(meta BuildMeta) error {
	return w.writeJSON(BuildMetaFile, meta)
}

func (w *Writer) writeJSON(name string, payload any) error {
	if w == nil {
		return fmt.Errorf("artifact writer not configured")
	}
	if err := os.MkdirAll(w.basePath, 0o755); err != nil {
		return err
	}

	target := filepath.Join(w.basePath, name)
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}

	if !w.force {
		if existing, err := os.ReadFile(target); err == nil && bytes.Equal(existing, data) {
			return nil
		}
	}

	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, target)
}
