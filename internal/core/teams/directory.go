package teams

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/FHFHockey-dev/fhfhockey.com-sub005/internal/telemetry"
)

// Club is one entry of the league club table.
type Club struct {
	FullName string
	TriCode  string
}

// ClubFetcher abstracts the league club listing.
// Satisfied by *nhl_http.Client.
type ClubFetcher interface {
	FetchClubs(ctx context.Context) ([]Club, error)
}

const clubCacheTTL = 24 * time.Hour

// Directory resolves team names from upstream feeds to stable
// abbreviations. It consults the fetched club table first and falls
// back to the builtin alias map; concurrent refreshes are deduplicated.
type Directory struct {
	fetcher ClubFetcher

	mu        sync.RWMutex
	fetched   map[string]string // normalized full name -> tricode
	lastFetch time.Time
	sfGroup   singleflight.Group
}

// NewDirectory builds a directory. fetcher may be nil, in which case
// only the builtin table is used.
func NewDirectory(fetcher ClubFetcher) *Directory {
	return &Directory{fetcher: fetcher}
}

// Abbrev resolves a team name or abbreviation to its canonical
// abbreviation. Inputs that already look like a known tricode pass
// through unchanged.
func (d *Directory) Abbrev(ctx context.Context, name string) (string, bool) {
	trimmed := strings.ToUpper(strings.TrimSpace(name))
	if len(trimmed) == 3 && isKnownTriCode(trimmed) {
		return trimmed, true
	}

	key := Normalize(name)
	if key == "" {
		return "", false
	}

	if abbrev, ok := d.lookupFetched(ctx, key); ok {
		return abbrev, true
	}
	abbrev, ok := builtinAbbrevs[key]
	return abbrev, ok
}

func (d *Directory) lookupFetched(ctx context.Context, key string) (string, bool) {
	if d.fetcher == nil {
		return "", false
	}

	d.mu.RLock()
	stale := time.Since(d.lastFetch) > clubCacheTTL
	abbrev, ok := d.fetched[key]
	d.mu.RUnlock()

	if ok && !stale {
		return abbrev, true
	}

	// Refresh once regardless of how many callers miss at the same time.
	d.sfGroup.Do("clubs", func() (any, error) {
		clubs, err := d.fetcher.FetchClubs(ctx)
		if err != nil {
			telemetry.Warnf("teams: club fetch failed, using builtin table: %v", err)
			return nil, nil
		}
		table := make(map[string]string, len(clubs))
		for _, c := range clubs {
			table[Normalize(c.FullName)] = strings.ToUpper(c.TriCode)
		}
		d.mu.Lock()
		d.fetched = table
		d.lastFetch = time.Now()
		d.mu.Unlock()
		telemetry.Infof("teams: loaded %d clubs", len(table))
		return nil, nil
	})

	d.mu.RLock()
	abbrev, ok = d.fetched[key]
	d.mu.RUnlock()
	return abbrev, ok
}

func isKnownTriCode(code string) bool {
	for _, abbrev := range builtinAbbrevs {
		if abbrev == code {
			return true
		}
	}
	return false
}
