package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/gbur-rwanda/gbur-backend/cache"
	"github.com/gbur-rwanda/gbur-backend/database"
	"github.com/gbur-rwanda/gbur-backend/errs"
	"github.com/gbur-rwanda/gbur-backend/models"
	"github.com/gbur-rwanda/gbur-backend/query"
	"github.com/gbur-rwanda/gbur-backend/validation"
)

const duplicateRegion = "A region with this name already exists"

// Overview is the body of GET /organization. A collection that failed to load
// is empty and its error is reported under its key in Errors.
type Overview struct {
	Regions       []models.Region        `json:"regions"`
	Universities  []models.University    `json:"universities"`
	RegionalStaff []models.RegionalStaff `json:"regionalStaff"`
	Errors        map[string]string      `json:"errors,omitempty"`
}

type OrganizationService struct {
	regions      *database.RegionRepo
	universities *database.UniversityRepo
	staff        *database.RegionalStaffRepo
	smallGroups  *database.SmallGroupRepo
	cache        cache.Cache
	logger       zerolog.Logger
}

func NewOrganizationService(db database.Database, c cache.Cache) *OrganizationService {
	return &OrganizationService{
		regions:      db.RegionRepo(),
		universities: db.UniversityRepo(),
		staff:        db.RegionalStaffRepo(),
		smallGroups:  db.SmallGroupRepo(),
		cache:        c,
		logger:       serviceLogger("organization"),
	}
}

func regionKey(name string, regionID *uint) string {
	if regionID == nil {
		return cache.PrefixOrganization + name + ":all"
	}
	return fmt.Sprintf("%s%s:%d", cache.PrefixOrganization, name, *regionID)
}

func (s *OrganizationService) invalidate(ctx context.Context) {
	cache.Invalidate(ctx, s.cache, cache.PrefixOrganization)
}

func (s *OrganizationService) requireRegion(ctx context.Context, id uint) error {
	ok, err := s.regions.Exists(ctx, id)
	if err != nil && !database.IsMissingTable(err) {
		return errs.NewDatabaseError("check", "region", err)
	}
	if !ok {
		return errs.NewForeignKeyMissing("Region")
	}
	return nil
}

// Regions

func (s *OrganizationService) Regions(ctx context.Context) ([]models.Region, error) {
	return cache.Fetch(ctx, s.cache, cache.PrefixOrganization+"regions", func() ([]models.Region, error) {
		regions, err := s.regions.FindAll(ctx)
		return listResult(s.logger, "regions", regions, err)
	})
}

func (s *OrganizationService) CreateRegion(ctx context.Context, in validation.RegionInput) (models.Region, error) {
	if err := in.ValidateCreate(); err != nil {
		return models.Region{}, err
	}

	taken, err := s.regions.NameTaken(ctx, *in.Name)
	if err != nil {
		return models.Region{}, errs.NewDatabaseError("check", "region", err)
	}
	if taken {
		return models.Region{}, errs.NewAlreadyExists(duplicateRegion)
	}

	region := models.Region{Name: *in.Name}
	if err := s.regions.Add(ctx, &region); err != nil {
		return models.Region{}, writeError("create", "Region", duplicateRegion, err)
	}
	s.logger.Info().Uint("regionId", region.ID).Str("name", region.Name).Msg("region created")
	s.invalidate(ctx)
	return region, nil
}

// Universities

func (s *OrganizationService) Universities(ctx context.Context, filter query.OrgFilter) ([]models.University, error) {
	return cache.Fetch(ctx, s.cache, regionKey("universities", filter.RegionID), func() ([]models.University, error) {
		universities, err := s.universities.FindAll(ctx, filter.RegionID)
		return listResult(s.logger, "universities", universities, err)
	})
}

func (s *OrganizationService) CreateUniversity(ctx context.Context, in validation.UniversityInput) (models.University, error) {
	if err := in.ValidateCreate(); err != nil {
		return models.University{}, err
	}
	if err := s.requireRegion(ctx, *in.RegionID); err != nil {
		return models.University{}, err
	}

	university := models.University{Name: *in.Name, RegionID: *in.RegionID}
	if err := s.universities.Add(ctx, &university); err != nil {
		return models.University{}, writeError("create", "Region", "University already exists", err)
	}
	s.invalidate(ctx)
	return s.university(ctx, university.ID)
}

// UpdateUniversity leaves the row untouched when the new region does not exist.
func (s *OrganizationService) UpdateUniversity(ctx context.Context, id uint, in validation.UniversityInput) (models.University, error) {
	if err := in.ValidateUpdate(); err != nil {
		return models.University{}, err
	}

	university, err := s.universities.FindByID(ctx, id)
	if err != nil {
		return models.University{}, findError("University", err)
	}
	if in.RegionID != nil && *in.RegionID != university.RegionID {
		if err := s.requireRegion(ctx, *in.RegionID); err != nil {
			return models.University{}, err
		}
		university.RegionID = *in.RegionID
		university.Region = nil
	}
	if in.Name != nil {
		university.Name = *in.Name
	}

	if err := s.universities.Update(ctx, university); err != nil {
		return models.University{}, writeError("update", "Region", "University already exists", err)
	}
	s.invalidate(ctx)
	return s.university(ctx, university.ID)
}

func (s *OrganizationService) DeleteUniversity(ctx context.Context, id uint) error {
	n, err := s.universities.Delete(ctx, id)
	if err := deleteError("University", n, err); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *OrganizationService) university(ctx context.Context, id uint) (models.University, error) {
	university, err := s.universities.FindByID(ctx, id)
	if err != nil {
		return models.University{}, findError("University", err)
	}
	return *university, nil
}

// Regional staff

func (s *OrganizationService) RegionalStaff(ctx context.Context, filter query.OrgFilter) ([]models.RegionalStaff, error) {
	return cache.Fetch(ctx, s.cache, regionKey("staff", filter.RegionID), func() ([]models.RegionalStaff, error) {
		staff, err := s.staff.FindAll(ctx, filter.RegionID)
		return listResult(s.logger, "regional staff", staff, err)
	})
}

func (s *OrganizationService) CreateRegionalStaff(ctx context.Context, in validation.RegionalStaffInput) (models.RegionalStaff, error) {
	if err := in.ValidateCreate(); err != nil {
		return models.RegionalStaff{}, err
	}
	if err := s.requireRegion(ctx, *in.RegionID); err != nil {
		return models.RegionalStaff{}, err
	}

	staff := models.RegionalStaff{
		RegionID:       *in.RegionID,
		Name:           *in.Name,
		Phone:          in.Phone.Ptr(),
		WhatsappNumber: in.WhatsappNumber.Ptr(),
	}
	if err := s.staff.Add(ctx, &staff); err != nil {
		return models.RegionalStaff{}, writeError("create", "Region", "Regional staff already exists", err)
	}
	s.invalidate(ctx)

	created, err := s.staff.FindByID(ctx, staff.ID)
	if err != nil {
		return models.RegionalStaff{}, findError("Regional staff", err)
	}
	return *created, nil
}

// Small groups

func (s *OrganizationService) SmallGroups(ctx context.Context, filter query.SmallGroupFilter) ([]models.SmallGroup, error) {
	key := cache.PrefixOrganization + "small-groups:" + filter.Type
	return cache.Fetch(ctx, s.cache, key, func() ([]models.SmallGroup, error) {
		groups, err := s.smallGroups.FindAll(ctx, filter.Type)
		return listResult(s.logger, "small groups", groups, err)
	})
}

func (s *OrganizationService) CreateSmallGroup(ctx context.Context, in validation.SmallGroupInput) (models.SmallGroup, error) {
	if err := in.ValidateCreate(); err != nil {
		return models.SmallGroup{}, err
	}

	group := models.SmallGroup{
		Name:           *in.Name,
		Type:           *in.Type,
		Province:       in.Province.Ptr(),
		District:       in.District.Ptr(),
		Sector:         in.Sector.Ptr(),
		Address:        in.Address.Ptr(),
		CellLeaderName: in.CellLeaderName.Ptr(),
		WhatsappNumber: in.WhatsappNumber.Ptr(),
	}
	if err := s.smallGroups.Add(ctx, &group); err != nil {
		return models.SmallGroup{}, writeError("create", "Small group", "Small group already exists", err)
	}
	s.invalidate(ctx)
	return group, nil
}

// UpdateSmallGroup writes the fields present in in; an optional field sent as
// "" or null is cleared.
func (s *OrganizationService) UpdateSmallGroup(ctx context.Context, id uint, in validation.SmallGroupInput) (models.SmallGroup, error) {
	if err := in.ValidateUpdate(); err != nil {
		return models.SmallGroup{}, err
	}

	group, err := s.smallGroups.FindByID(ctx, id)
	if err != nil {
		return models.SmallGroup{}, findError("Small group", err)
	}
	if in.Name != nil {
		group.Name = *in.Name
	}
	if in.Type != nil {
		group.Type = *in.Type
	}
	for _, f := range []struct {
		in  validation.NullString
		dst **string
	}{
		{in.Province, &group.Province},
		{in.District, &group.District},
		{in.Sector, &group.Sector},
		{in.Address, &group.Address},
		{in.CellLeaderName, &group.CellLeaderName},
		{in.WhatsappNumber, &group.WhatsappNumber},
	} {
		if f.in.Set {
			*f.dst = f.in.Ptr()
		}
	}

	if err := s.smallGroups.Update(ctx, group); err != nil {
		return models.SmallGroup{}, writeError("update", "Small group", "Small group already exists", err)
	}
	s.invalidate(ctx)
	return *group, nil
}

func (s *OrganizationService) DeleteSmallGroup(ctx context.Context, id uint) error {
	n, err := s.smallGroups.Delete(ctx, id)
	if err := deleteError("Small group", n, err); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// Overview loads regions, universities and staff concurrently. One failing
// collection never blocks the others.
func (s *OrganizationService) Overview(ctx context.Context) Overview {
	var (
		out Overview
		mu  sync.Mutex
		g   errgroup.Group
	)
	out.Regions = []models.Region{}
	out.Universities = []models.University{}
	out.RegionalStaff = []models.RegionalStaff{}

	fail := func(name string, err error) {
		mu.Lock()
		defer mu.Unlock()
		if out.Errors == nil {
			out.Errors = make(map[string]string)
		}
		out.Errors[name] = err.Error()
		s.logger.Error().Err(err).Str("collection", name).Msg("overview collection failed")
	}

	g.Go(func() error {
		regions, err := s.Regions(ctx)
		if err != nil {
			fail("regions", err)
			return nil
		}
		out.Regions = regions
		return nil
	})
	g.Go(func() error {
		universities, err := s.Universities(ctx, query.OrgFilter{})
		if err != nil {
			fail("universities", err)
			return nil
		}
		out.Universities = universities
		return nil
	})
	g.Go(func() error {
		staff, err := s.RegionalStaff(ctx, query.OrgFilter{})
		if err != nil {
			fail("regionalStaff", err)
			return nil
		}
		out.RegionalStaff = staff
		return nil
	})
	_ = g.Wait()

	return out
}
