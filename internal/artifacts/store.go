package artifacts

import (
	"encoding/json"
	"os"
	"path/filepath"

	domainroster "cfb-spotlight-pipeline/internal/domain/roster"
	domainstats "cfb-spotlight-pipeline/internal/domain/stats"
)

// Store defines how previously published artifacts are loaded. The previous
// run's files double as the last-known-good cache.
type Store interface {
	LoadRoster() (domainroster.Snapshot, error)
	LoadSpotlight(bucket domainstats.Bucket) ([]domainstats.Entry, error)
	LoadFeatured() (*domainstats.Entry, error)
}

// FSStore loads artifacts from the filesystem.
type FSStore struct {
	basePath string
}

// NewFSStore constructs an FS-backed artifact store rooted at basePath.
func NewFSStore(basePath string) *FSStore {
	return &FSStore{basePath: basePath}
}

// HasCache reports whether a previously published roster exists on disk.
func (s *FSStore) HasCache() bool {
	if _, err := os.Stat(RosterPath(s.basePath)); err != nil {
		return false
	}
	_, err := os.Stat(RosterMetaPath(s.basePath))
	return err == nil
}

// LoadRoster reassembles the cached roster snapshot from the roster and
// roster-metadata files.
func (s *FSStore) LoadRoster() (domainroster.Snapshot, error) {
	var meta domainroster.Meta
	if err := s.readJSON(RosterMetaFile, &meta); err != nil {
		return domainroster.Snapshot{}, err
	}
	var players []domainroster.Player
	if err := s.readJSON(RosterFile, &players); err != nil {
		return domainroster.Snapshot{}, err
	}
	return domainroster.Snapshot{
		TeamID:      meta.TeamID,
		Season:      meta.Season,
		Players:     players,
		GeneratedAt: meta.GeneratedAt,
		Source:      meta.Source,
	}, nil
}

// LoadRosterMeta reads only the roster metadata file.
func (s *FSStore) LoadRosterMeta() (domainroster.Meta, error) {
	var meta domainroster.Meta
	err := s.readJSON(RosterMetaFile, &meta)
	return meta, err
}

// LoadSpotlight reads one cached bucket.
func (s *FSStore) LoadSpotlight(bucket domainstats.Bucket) ([]domainstats.Entry, error) {
	var entries []domainstats.Entry
	if err := s.readJSON(SpotlightFile(bucket), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// LoadFeatured reads the cached featured pick. An empty object decodes to an
// entry with no name, which callers treat as absent.
func (s *FSStore) LoadFeatured() (*domainstats.Entry, error) {
	var entry domainstats.Entry
	if err := s.readJSON(FeaturedFile, &entry); err != nil {
		return nil, err
	}
	if entry.Name == "" {
		return nil, nil
	}
	return &entry, nil
}

// LoadBuildMeta reads the previous run's build metadata.
func (s *FSStore) LoadBuildMeta() (BuildMeta, error) {
	var meta BuildMeta
	err := s.readJSON(BuildMetaFile, &meta)
	return meta, err
}

func (s *FSStore) readJSON(name string, dest any) error {
	f, err := os.Open(filepath.Join(s.basePath, name))
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(dest)
}
