package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gbur-rwanda/gbur-backend/cache"
	"github.com/gbur-rwanda/gbur-backend/database"
	"github.com/gbur-rwanda/gbur-backend/database/dbtest"
	"github.com/gbur-rwanda/gbur-backend/errs"
	"github.com/gbur-rwanda/gbur-backend/models"
	"github.com/gbur-rwanda/gbur-backend/query"
	"github.com/gbur-rwanda/gbur-backend/validation"
)

func strPtr(s string) *string { return &s }
func uintPtr(n uint) *uint { return &n }
func intPtr(n int) *int { return &n }

type fixture struct {
	db  database.Database
	svc Services
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db := database.New(dbtest.Open(t))
	return fixture{db: db, svc: New(db, cache.NewMemory(time.Minute), nil)}
}

func (f fixture) category(t *testing.T, name string) models.BlogCategory {
	t.Helper()
	c, err := f.svc.Categories.Create(context.Background(), validation.CategoryInput{Name: strPtr(name)})
	require.NoError(t, err)
	return c
}

func TestCategoryCreateDuplicate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := validation.CategoryInput{Name: strPtr("News"), Slug: strPtr("news"), Order: intPtr(0)}
	created, err := f.svc.Categories.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "News", created.Name)
	assert.Equal(t, "news", created.Slug)
	assert.Equal(t, 0, created.Order)
	assert.True(t, created.IsActive)

	again := validation.CategoryInput{Name: strPtr("News"), Slug: strPtr("news"), Order: intPtr(0)}
	_, err = f.svc.Categories.Create(ctx, again)
	require.Error(t, err)
	assert.True(t, errs.IsAlreadyExists(err))
	assert.Equal(t, http.StatusBadRequest, errs.StatusOf(err))
	assert.Contains(t, err.Error(), "already exists")
}

func TestCategorySlugDerivedFromName(t *testing.T) {
	f := newFixture(t)
	c := f.category(t, "Bible Study")
	assert.Equal(t, "bible-study", c.Slug)
}

func TestCategoryDeleteBlockedByPosts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.category(t, "Events")

	for _, title := range []string{"Conference", "Retreat"} {
		_, err := f.svc.Blog.Create(ctx, validation.PostInput{Title: strPtr(title), Content: strPtr("body"), CategoryID: uintPtr(c.ID)})
		require.NoError(t, err)
	}

	err := f.svc.Categories.Delete(ctx, c.ID)
	require.Error(t, err)
	assert.True(t, errs.IsDependentsExist(err))
	assert.Equal(t, http.StatusBadRequest, errs.StatusOf(err))
	assert.Contains(t, err.Error(), "2 blog post(s)")

	still, err := f.db.BlogCategoryRepo().FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Events", still.Name)
}

func TestCategoryDeleteMissing(t *testing.T) {
	f := newFixture(t)
	err := f.svc.Categories.Delete(context.Background(), 404)
	assert.True(t, errs.IsNotFound(err))
	assert.Equal(t, http.StatusNotFound, errs.StatusOf(err))
}

func TestCategoryUpdateRejectsTakenName(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.category(t, "News")
	events := f.category(t, "Events")

	_, err := f.svc.Categories.Update(ctx, events.ID, validation.CategoryInput{Name: strPtr("News")})
	assert.True(t, errs.IsAlreadyExists(err))

	updated, err := f.svc.Categories.Update(ctx, events.ID, validation.CategoryInput{Order: intPtr(3)})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Order)
	assert.Equal(t, "Events", updated.Name)
}

func TestBlogCreateChecksCategoryAndSlug(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Blog.Create(ctx, validation.PostInput{Title: strPtr("Hello"), Content: strPtr("x"), CategoryID: uintPtr(77)})
	require.Error(t, err)
	assert.True(t, errs.IsForeignKeyMissing(err))
	assert.Equal(t, "Category not found", err.Error())
	assert.Equal(t, http.StatusNotFound, errs.StatusOf(err))

	c := f.category(t, "News")
	post, err := f.svc.Blog.Create(ctx, validation.PostInput{
		Title:      strPtr("Hello Campus"),
		Content:    strPtr("First\n\n  \nSecond"),
		Excerpt:    validation.NewNullString(""),
		CategoryID: uintPtr(c.ID),
	})
	require.NoError(t, err)
	assert.Equal(t, "hello-campus", post.Slug)
	assert.Equal(t, []string{"First", "Second"}, post.Content)
	assert.Equal(t, []string{}, post.Excerpt)
	assert.Equal(t, "NEWS", post.Category)
	assert.Equal(t, "draft", post.Status)
	assert.Nil(t, post.PublishedAt)

	_, err = f.svc.Blog.Create(ctx, validation.PostInput{Title: strPtr("Hello Campus"), Content: strPtr("x"), CategoryID: uintPtr(c.ID)})
	assert.True(t, errs.IsAlreadyExists(err))
}

func TestBlogPublishStampsPublishedAt(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.category(t, "News")
	fixed := time.Date(2025, time.October, 31, 9, 0, 0, 0, time.UTC)
	f.svc.Blog.clock = func() time.Time { return fixed }

	post, err := f.svc.Blog.Create(ctx, validation.PostInput{Title: strPtr("Draft"), Content: strPtr("x"), CategoryID: uintPtr(c.ID)})
	require.NoError(t, err)
	assert.Nil(t, post.PublishedAt)

	published, err := f.svc.Blog.Update(ctx, post.ID, validation.PostInput{Status: strPtr("published")})
	require.NoError(t, err)
	require.NotNil(t, published.PublishedAt)
	assert.True(t, fixed.Equal(*published.PublishedAt))
	assert.Equal(t, "October 31, 2025", published.Date)

	// Any status may follow any other.
	archived, err := f.svc.Blog.Update(ctx, post.ID, validation.PostInput{Status: strPtr("archived")})
	require.NoError(t, err)
	assert.Equal(t, "archived", archived.Status)
	draft, err := f.svc.Blog.Update(ctx, post.ID, validation.PostInput{Status: strPtr("draft")})
	require.NoError(t, err)
	assert.Equal(t, "draft", draft.Status)
	assert.NotNil(t, draft.PublishedAt)
}

func TestBlogUpdateErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.category(t, "News")

	_, err := f.svc.Blog.Update(ctx, 999, validation.PostInput{Title: strPtr("x")})
	assert.True(t, errs.IsNotFound(err))

	post, err := f.svc.Blog.Create(ctx, validation.PostInput{Title: strPtr("One"), Content: strPtr("x"), CategoryID: uintPtr(c.ID)})
	require.NoError(t, err)
	_, err = f.svc.Blog.Create(ctx, validation.PostInput{Title: strPtr("Two"), Content: strPtr("x"), CategoryID: uintPtr(c.ID)})
	require.NoError(t, err)

	_, err = f.svc.Blog.Update(ctx, post.ID, validation.PostInput{Slug: strPtr("two")})
	assert.True(t, errs.IsAlreadyExists(err))

	_, err = f.svc.Blog.Update(ctx, post.ID, validation.PostInput{CategoryID: uintPtr(55)})
	assert.True(t, errs.IsForeignKeyMissing(err))

	_, err = f.svc.Blog.Update(ctx, post.ID, validation.PostInput{Title: strPtr(" ")})
	assert.True(t, errs.IsValidationError(err))

	cleared, err := f.svc.Blog.Update(ctx, post.ID, validation.PostInput{FeaturedImage: validation.NewNullString("/Gbur/a.jpg")})
	require.NoError(t, err)
	assert.Equal(t, "/Gbur/a.jpg", cleared.Image)
	cleared, err = f.svc.Blog.Update(ctx, post.ID, validation.PostInput{FeaturedImage: validation.NullString{Set: true}})
	require.NoError(t, err)
	assert.Equal(t, "/Gbur/DSC_9972.jpg", cleared.Image)
}

func TestBlogLookupDispatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.category(t, "News")
	post, err := f.svc.Blog.Create(ctx, validation.PostInput{Title: strPtr("Easter Camp"), Content: strPtr("x"), CategoryID: uintPtr(c.ID)})
	require.NoError(t, err)

	byID, err := f.svc.Blog.Lookup(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, post.ID, byID.ID)

	bySlug, err := f.svc.Blog.Lookup(ctx, "easter-camp")
	require.NoError(t, err)
	assert.Equal(t, post.ID, bySlug.ID)

	_, err = f.svc.Blog.Lookup(ctx, "missing-post")
	assert.True(t, errs.IsNotFound(err))
	_, err = f.svc.Blog.Lookup(ctx, "99999999999999999999999")
	assert.True(t, errs.IsNotFound(err))
}

func TestBlogListPublishedPage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.category(t, "News")

	base := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		published := base.AddDate(0, 0, i)
		p := models.BlogPost{
			Title: "post", Slug: validation.Slugify("post " + string(rune('a'+i))), Content: "x",
			CategoryID: c.ID, Status: models.PostStatusPublished, PublishedAt: &published,
		}
		require.NoError(t, f.db.BlogPostRepo().Add(ctx, &p))
	}
	draft := models.BlogPost{Title: "draft", Slug: "draft", Content: "x", CategoryID: c.ID, Status: models.PostStatusDraft}
	require.NoError(t, f.db.BlogPostRepo().Add(ctx, &draft))

	list, err := f.svc.Blog.List(ctx, query.BlogListOptions{Status: "published", Limit: 2})
	require.NoError(t, err)
	require.Len(t, list.Posts, 2)
	assert.Equal(t, 2, list.Total)
	assert.Equal(t, "post-e", list.Posts[0].Slug)
	assert.Equal(t, "post-d", list.Posts[1].Slug)

	all, err := f.svc.Blog.List(ctx, query.BlogListOptions{Limit: query.DefaultBlogLimit})
	require.NoError(t, err)
	assert.Equal(t, 6, all.Total)
	assert.Equal(t, "draft", all.Posts[5].Slug)
}

func TestBlogListCacheInvalidatedOnWrite(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.category(t, "News")
	opts := query.BlogListOptions{Limit: query.DefaultBlogLimit}

	empty, err := f.svc.Blog.List(ctx, opts)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Total)
	assert.NotNil(t, empty.Posts)

	_, err = f.svc.Blog.Create(ctx, validation.PostInput{Title: strPtr("New"), Content: strPtr("x"), CategoryID: uintPtr(c.ID)})
	require.NoError(t, err)

	list, err := f.svc.Blog.List(ctx, opts)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)
}

func TestListsDegradeToEmptyWithoutTables(t *testing.T) {
	db := database.New(dbtest.OpenEmpty(t))
	svc := New(db, nil, nil)
	ctx := context.Background()

	list, err := svc.Blog.List(ctx, query.BlogListOptions{Limit: 10})
	require.NoError(t, err)
	assert.NotNil(t, list.Posts)
	assert.Empty(t, list.Posts)
	assert.Equal(t, 0, list.Total)

	regions, err := svc.Organization.Regions(ctx)
	require.NoError(t, err)
	assert.NotNil(t, regions)
	assert.Empty(t, regions)

	groups, err := svc.Organization.SmallGroups(ctx, query.SmallGroupFilter{})
	require.NoError(t, err)
	assert.NotNil(t, groups)

	categories, err := svc.Categories.List(ctx, query.CategoryFilter{})
	require.NoError(t, err)
	assert.NotNil(t, categories)
}

func TestParentChecksWithoutTablesReportNotFound(t *testing.T) {
	svc := New(database.New(dbtest.OpenEmpty(t)), nil, nil)
	ctx := context.Background()

	_, err := svc.Blog.Create(ctx, validation.PostInput{Title: strPtr("Hello"), Content: strPtr("x"), CategoryID: uintPtr(1)})
	require.Error(t, err)
	assert.True(t, errs.IsForeignKeyMissing(err))
	assert.Equal(t, "Category not found", err.Error())
	assert.Equal(t, http.StatusNotFound, errs.StatusOf(err))

	_, err = svc.Organization.CreateUniversity(ctx, validation.UniversityInput{Name: strPtr("UR"), RegionID: uintPtr(1)})
	require.Error(t, err)
	assert.True(t, errs.IsForeignKeyMissing(err))
	assert.Equal(t, "Region not found", err.Error())
	assert.Equal(t, http.StatusNotFound, errs.StatusOf(err))
}

func TestUniversityUpdateMissingRegion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	region, err := f.svc.Organization.CreateRegion(ctx, validation.RegionInput{Name: strPtr("Kigali")})
	require.NoError(t, err)
	uni, err := f.svc.Organization.CreateUniversity(ctx, validation.UniversityInput{Name: strPtr("UR"), RegionID: uintPtr(region.ID)})
	require.NoError(t, err)
	require.NotNil(t, uni.Region)
	assert.Equal(t, "Kigali", uni.Region.Name)

	_, err = f.svc.Organization.UpdateUniversity(ctx, uni.ID, validation.UniversityInput{Name: strPtr("Renamed"), RegionID: uintPtr(9999)})
	require.Error(t, err)
	assert.Equal(t, "Region not found", err.Error())
	assert.Equal(t, http.StatusNotFound, errs.StatusOf(err))

	unchanged, err := f.db.UniversityRepo().FindByID(ctx, uni.ID)
	require.NoError(t, err)
	assert.Equal(t, "UR", unchanged.Name)
	assert.Equal(t, region.ID, unchanged.RegionID)

	_, err = f.svc.Organization.UpdateUniversity(ctx, 404, validation.UniversityInput{Name: strPtr("x")})
	assert.True(t, errs.IsNotFound(err))
	assert.Equal(t, "University not found", err.Error())
}

func TestRegionDuplicateAndStaffRegionCheck(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	region, err := f.svc.Organization.CreateRegion(ctx, validation.RegionInput{Name: strPtr("South")})
	require.NoError(t, err)
	_, err = f.svc.Organization.CreateRegion(ctx, validation.RegionInput{Name: strPtr("South")})
	assert.True(t, errs.IsAlreadyExists(err))

	_, err = f.svc.Organization.CreateRegionalStaff(ctx, validation.RegionalStaffInput{RegionID: uintPtr(42), Name: strPtr("Eric")})
	assert.True(t, errs.IsForeignKeyMissing(err))

	staff, err := f.svc.Organization.CreateRegionalStaff(ctx, validation.RegionalStaffInput{
		RegionID: uintPtr(region.ID), Name: strPtr("Eric"), Phone: validation.NewNullString(""), WhatsappNumber: validation.NewNullString("+250788000000"),
	})
	require.NoError(t, err)
	assert.Nil(t, staff.Phone)
	require.NotNil(t, staff.WhatsappNumber)

	found, err := f.svc.Organization.RegionalStaff(ctx, query.OrgFilter{RegionID: &region.ID})
	require.NoError(t, err)
	assert.Len(t, found, 1)
}

func TestSmallGroupLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	group, err := f.svc.Organization.CreateSmallGroup(ctx, validation.SmallGroupInput{
		Name: strPtr("Remera Cell"), Province: validation.NewNullString("Kigali"), District: validation.NewNullString(""),
	})
	require.NoError(t, err)
	assert.Equal(t, models.SmallGroupStudent, group.Type)
	assert.Nil(t, group.District)

	updated, err := f.svc.Organization.UpdateSmallGroup(ctx, group.ID, validation.SmallGroupInput{
		Type: strPtr("graduate"), Province: validation.NullString{Set: true},
	})
	require.NoError(t, err)
	assert.Equal(t, "graduate", updated.Type)
	assert.Nil(t, updated.Province)
	assert.Equal(t, "Remera Cell", updated.Name)

	graduates, err := f.svc.Organization.SmallGroups(ctx, query.SmallGroupFilter{Type: "graduate"})
	require.NoError(t, err)
	assert.Len(t, graduates, 1)

	require.NoError(t, f.svc.Organization.DeleteSmallGroup(ctx, group.ID))
	err = f.svc.Organization.DeleteSmallGroup(ctx, group.ID)
	assert.True(t, errs.IsNotFound(err))
	assert.Equal(t, "Small group not found", err.Error())
}

func TestOverviewIsolatesFailures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.svc.Organization.CreateRegion(ctx, validation.RegionInput{Name: strPtr("North")})
	require.NoError(t, err)

	require.NoError(t, f.db.DB().Exec("DROP TABLE universities").Error)
	require.NoError(t, f.db.DB().Exec("ALTER TABLE regional_staff RENAME COLUMN name TO full_name").Error)

	overview := f.svc.Organization.Overview(ctx)
	assert.Len(t, overview.Regions, 1)
	assert.NotNil(t, overview.Universities)
	assert.Empty(t, overview.Universities)
	assert.Contains(t, overview.Errors, "regionalStaff")
	assert.NotContains(t, overview.Errors, "regions")
}

func TestSubscriptionIdempotence(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	in := func(email string) validation.SubscriptionInput {
		return validation.SubscriptionInput{FirstName: "Ange", LastName: "Mukamana", Email: email}
	}

	first, created, err := f.svc.Subscription.Subscribe(ctx, in("ange@example.org"))
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := f.svc.Subscription.Subscribe(ctx, in("ANGE@example.org"))
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	count, err := f.db.SubscriptionRepo().CountByEmail(ctx, "ange@example.org")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	off, err := f.svc.Subscription.Unsubscribe(ctx, validation.UnsubscribeInput{Email: "ange@example.org"})
	require.NoError(t, err)
	assert.False(t, off.IsActive)
	assert.NotNil(t, off.UnsubscribedAt)

	back, created, err := f.svc.Subscription.Subscribe(ctx, in("ange@example.org"))
	require.NoError(t, err)
	assert.False(t, created)
	assert.True(t, back.IsActive)
	assert.Nil(t, back.UnsubscribedAt)
	assert.Equal(t, first.ID, back.ID)

	count, err = f.db.SubscriptionRepo().CountByEmail(ctx, "ange@example.org")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	_, err = f.svc.Subscription.Unsubscribe(ctx, validation.UnsubscribeInput{Email: "nobody@example.org"})
	assert.True(t, errs.IsNotFound(err))
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []models.ContactMessage
	err  error
}

func (r *recordingNotifier) NotifyContact(_ context.Context, msg models.ContactMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, msg)
	return r.err
}

func TestContactSubmit(t *testing.T) {
	db := database.New(dbtest.Open(t))
	notifier := &recordingNotifier{err: errors.New("resend down")}
	svc := NewContactService(db, notifier)
	ctx := context.Background()

	msg, err := svc.Submit(ctx, validation.ContactInput{
		FullName: "Jean", Email: "jean@example.org", Subject: "ministry", Message: "Please tell me about GBUR.",
	})
	require.NoError(t, err)
	assert.Equal(t, "inquiry", msg.Subject)
	assert.Equal(t, models.ContactStatusUnread, msg.Status)
	require.Len(t, notifier.sent, 1)

	_, err = svc.Submit(ctx, validation.ContactInput{FullName: "Jean", Email: "jean@example.org", Subject: "x", Message: "short"})
	assert.True(t, errs.IsValidationError(err))

	stored, err := svc.Messages(ctx, "")
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestResendNotifier(t *testing.T) {
	var gotAuth, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		buf := new(strings.Builder)
		_, _ = io.Copy(buf, r.Body)
		gotBody = buf.String()
		_, _ = w.Write([]byte(`{"id":"email_123"}`))
	}))
	defer srv.Close()

	n := NewResendNotifier(map[string]string{
		"RESEND_API_KEY":        "re_test",
		"RESEND_FROM_EMAIL":     "GBUR <noreply@gbur.org>",
		"CONTACT_NOTIFY_EMAILS": "office@gbur.org",
	})
	require.NotNil(t, n)
	n.Endpoint = srv.URL

	err := n.NotifyContact(context.Background(), models.ContactMessage{
		FullName: "Jean <b>", Email: "jean@example.org", Subject: "inquiry", Message: "line one\n\nline two",
	})
	require.NoError(t, err)
	assert.Equal(t, "Bearer re_test", gotAuth)
	assert.Contains(t, gotBody, `"reply_to":"jean@example.org"`)
	assert.Contains(t, gotBody, "Jean \\u0026lt;b\\u0026gt;")

	assert.Nil(t, NewResendNotifier(map[string]string{"RESEND_API_KEY": "re_test"}))
}

func TestResendNotifierReportsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"invalid from"}`))
	}))
	defer srv.Close()

	n := &ResendNotifier{APIKey: "k", From: "f", Recipients: []string{"a@b.c"}, Endpoint: srv.URL, Client: srv.Client()}
	err := n.NotifyContact(context.Background(), models.ContactMessage{FullName: "x", Email: "y", Subject: "other", Message: "z"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid from")
}
