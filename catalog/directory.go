package catalog

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/gbur-rwanda/gbur-backend/models"
	"github.com/gbur-rwanda/gbur-backend/query"
)

// Collection names used as keys of Directory.Errors.
const (
	CollectionRegions       = "regions"
	CollectionUniversities  = "universities"
	CollectionRegionalStaff = "regionalStaff"
	CollectionSmallGroups   = "smallGroups"
)

// Directory is everything the organization page renders. A collection whose
// fetch failed is empty and its error sits in Errors.
type Directory struct {
	Regions       []models.Region
	Universities  []models.University
	RegionalStaff []models.RegionalStaff
	SmallGroups   []models.SmallGroup
	Errors        map[string]error
}

// Err returns the fetch error of one collection, if any.
func (d Directory) Err(collection string) error {
	return d.Errors[collection]
}

type directoryLoader struct {
	mu     sync.Mutex
	dir    *Directory
	logger zerolog.Logger
}

func (l *directoryLoader) fail(collection string, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.dir.Errors == nil {
		l.dir.Errors = make(map[string]error)
	}
	l.dir.Errors[collection] = err
	l.logger.Warn().Err(err).Str("collection", collection).Msg("directory fetch failed")
}

func load[T any](g *errgroup.Group, l *directoryLoader, collection string, dst *[]T, fetch func() ([]T, error)) {
	g.Go(func() error {
		items, err := fetch()
		if err != nil {
			l.fail(collection, err)
			return nil
		}
		if items == nil {
			items = []T{}
		}
		*dst = items
		return nil
	})
}

// LoadDirectory fetches the four organization collections concurrently.
// Each fetch succeeds or fails on its own.
func LoadDirectory(ctx context.Context, c *Client) Directory {
	dir := Directory{
		Regions:       []models.Region{},
		Universities:  []models.University{},
		RegionalStaff: []models.RegionalStaff{},
		SmallGroups:   []models.SmallGroup{},
	}
	l := &directoryLoader{dir: &dir, logger: log.With().Str("component", "catalog").Logger()}

	var g errgroup.Group
	load(&g, l, CollectionRegions, &dir.Regions, func() ([]models.Region, error) {
		return c.Regions(ctx)
	})
	load(&g, l, CollectionUniversities, &dir.Universities, func() ([]models.University, error) {
		return c.Universities(ctx, nil)
	})
	load(&g, l, CollectionRegionalStaff, &dir.RegionalStaff, func() ([]models.RegionalStaff, error) {
		return c.RegionalStaff(ctx, nil)
	})
	load(&g, l, CollectionSmallGroups, &dir.SmallGroups, func() ([]models.SmallGroup, error) {
		return c.SmallGroups(ctx, "")
	})
	_ = g.Wait()

	return dir
}

// SearchUniversities applies the directory page search box and region picker.
func SearchUniversities(universities []models.University, search string, regionID *uint) []models.University {
	return query.FilterByNameAndRegion(universities,
		func(u models.University) string { return u.Name },
		func(u models.University) uint { return u.RegionID },
		search, regionID)
}

// StaffForRegion returns the contact for a region, or false when none is listed.
func StaffForRegion(staff []models.RegionalStaff, regionID uint) (models.RegionalStaff, bool) {
	for _, s := range staff {
		if s.RegionID == regionID {
			return s, true
		}
	}
	return models.RegionalStaff{}, false
}

// RegionName resolves a region id against the loaded regions.
func RegionName(regions []models.Region, regionID uint) string {
	for _, r := range regions {
		if r.ID == regionID {
			return r.Name
		}
	}
	return ""
}
