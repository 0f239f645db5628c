// Package catalog is the client side of the directory and blog pages: a typed
// client for the site API plus the local list state those pages keep.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gbur-rwanda/gbur-backend/errs"
	"github.com/gbur-rwanda/gbur-backend/models"
	"github.com/gbur-rwanda/gbur-backend/services"
	"github.com/gbur-rwanda/gbur-backend/validation"
	"github.com/gbur-rwanda/gbur-backend/views"
)

type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

type ClientOption func(*Client)

func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) {
		cl.http = c
	}
}

// WithToken sets the admin capability token sent on every request.
func WithToken(token string) ClientOption {
	return func(cl *Client) {
		cl.token = token
	}
}

func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type errorEnvelope struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Details []errs.FieldError `json:"details"`
}

// do sends body as JSON and decodes a 2xx response into out. Failure
// envelopes come back as *errs.ApiErr carrying the response status.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var env errorEnvelope
		if err := json.NewDecoder(resp.Body).Decode(&env); err != nil || env.Error == "" {
			return errs.NewApiErr(resp.StatusCode, http.StatusText(resp.StatusCode))
		}
		apiErr := errs.NewApiErr(resp.StatusCode, env.Error)
		apiErr.Details = env.Message
		apiErr.Fields = env.Details
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s %s: %w", method, path, err)
	}
	return nil
}

func withRegion(path string, regionID *uint) string {
	if regionID == nil {
		return path
	}
	return path + "?regionId=" + strconv.FormatUint(uint64(*regionID), 10)
}

// Unlock exchanges the admin password for a token and keeps it on the client.
func (c *Client) Unlock(ctx context.Context, password string) error {
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/admin/unlock", validation.AdminUnlockInput{Password: password}, &resp); err != nil {
		return err
	}
	c.token = resp.Token
	return nil
}

func (c *Client) Regions(ctx context.Context) ([]models.Region, error) {
	var resp struct {
		Regions []models.Region `json:"regions"`
	}
	err := c.do(ctx, http.MethodGet, "/organization/regions", nil, &resp)
	return resp.Regions, err
}

func (c *Client) CreateRegion(ctx context.Context, name string) (models.Region, error) {
	var region models.Region
	err := c.do(ctx, http.MethodPost, "/organization/regions", validation.RegionInput{Name: &name}, &region)
	return region, err
}

func (c *Client) Universities(ctx context.Context, regionID *uint) ([]models.University, error) {
	var resp struct {
		Universities []models.University `json:"universities"`
	}
	err := c.do(ctx, http.MethodGet, withRegion("/organization/universities", regionID), nil, &resp)
	return resp.Universities, err
}

func (c *Client) CreateUniversity(ctx context.Context, in validation.UniversityInput) (models.University, error) {
	var uni models.University
	err := c.do(ctx, http.MethodPost, "/organization/universities", in, &uni)
	return uni, err
}

func (c *Client) UpdateUniversity(ctx context.Context, id uint, in validation.UniversityInput) (models.University, error) {
	var uni models.University
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/organization/universities/%d", id), in, &uni)
	return uni, err
}

func (c *Client) DeleteUniversity(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/organization/universities/%d", id), nil, nil)
}

func (c *Client) RegionalStaff(ctx context.Context, regionID *uint) ([]models.RegionalStaff, error) {
	var resp struct {
		RegionalStaff []models.RegionalStaff `json:"regionalStaff"`
	}
	err := c.do(ctx, http.MethodGet, withRegion("/organization/regional-staff", regionID), nil, &resp)
	return resp.RegionalStaff, err
}

func (c *Client) SmallGroups(ctx context.Context, groupType string) ([]models.SmallGroup, error) {
	path := "/organization/small-groups"
	if groupType != "" {
		path += "?type=" + url.QueryEscape(groupType)
	}
	var resp struct {
		SmallGroups []models.SmallGroup `json:"smallGroups"`
	}
	err := c.do(ctx, http.MethodGet, path, nil, &resp)
	return resp.SmallGroups, err
}

func (c *Client) CreateSmallGroup(ctx context.Context, in validation.SmallGroupInput) (models.SmallGroup, error) {
	var group models.SmallGroup
	err := c.do(ctx, http.MethodPost, "/organization/small-groups", smallGroupBody(in), &group)
	return group, err
}

func (c *Client) UpdateSmallGroup(ctx context.Context, id uint, in validation.SmallGroupInput) (models.SmallGroup, error) {
	var group models.SmallGroup
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/organization/small-groups/%d", id), smallGroupBody(in), &group)
	return group, err
}

// smallGroupBody sends only the fields in mentions, so an update leaves the
// rest of the row alone. A set field with a nil value is sent as null.
func smallGroupBody(in validation.SmallGroupInput) map[string]any {
	body := map[string]any{}
	if in.Name != nil {
		body["name"] = *in.Name
	}
	if in.Type != nil {
		body["type"] = *in.Type
	}
	for key, field := range map[string]validation.NullString{
		"province":       in.Province,
		"district":       in.District,
		"sector":         in.Sector,
		"address":        in.Address,
		"cellLeaderName": in.CellLeaderName,
		"whatsappNumber": in.WhatsappNumber,
	} {
		if field.Set {
			body[key] = field.Value
		}
	}
	return body
}

func (c *Client) DeleteSmallGroup(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/organization/small-groups/%d", id), nil, nil)
}

// BlogPosts fetches one page of posts. Zero limit leaves the server default.
func (c *Client) BlogPosts(ctx context.Context, status string, categoryID *uint, limit, offset int) (services.BlogList, error) {
	params := url.Values{}
	if status != "" {
		params.Set("status", status)
	}
	if categoryID != nil {
		params.Set("categoryId", strconv.FormatUint(uint64(*categoryID), 10))
	}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		params.Set("offset", strconv.Itoa(offset))
	}
	path := "/blog"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var list services.BlogList
	err := c.do(ctx, http.MethodGet, path, nil, &list)
	return list, err
}

// postBody sends only the fields in mentions, like smallGroupBody.
func postBody(in validation.PostInput) map[string]any {
	body := map[string]any{}
	for key, field := range map[string]*string{
		"title":   in.Title,
		"slug":    in.Slug,
		"content": in.Content,
		"status":  in.Status,
	} {
		if field != nil {
			body[key] = *field
		}
	}
	if in.CategoryID != nil {
		body["categoryId"] = *in.CategoryID
	}
	if in.Excerpt.Set {
		body["excerpt"] = in.Excerpt.Value
	}
	if in.FeaturedImage.Set {
		body["featuredImage"] = in.FeaturedImage.Value
	}
	return body
}

func (c *Client) Post(ctx context.Context, slugOrID string) (views.BlogPostView, error) {
	var post views.BlogPostView
	err := c.do(ctx, http.MethodGet, "/blog/"+url.PathEscape(slugOrID), nil, &post)
	return post, err
}

func (c *Client) CreatePost(ctx context.Context, in validation.PostInput) (views.BlogPostView, error) {
	var post views.BlogPostView
	err := c.do(ctx, http.MethodPost, "/blog", postBody(in), &post)
	return post, err
}

func (c *Client) UpdatePost(ctx context.Context, id uint, in validation.PostInput) (views.BlogPostView, error) {
	var post views.BlogPostView
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/blog/%d", id), postBody(in), &post)
	return post, err
}

func (c *Client) DeletePost(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/blog/%d", id), nil, nil)
}

func (c *Client) Categories(ctx context.Context) ([]models.BlogCategory, error) {
	var resp struct {
		Categories []models.BlogCategory `json:"categories"`
	}
	err := c.do(ctx, http.MethodGet, "/blog/categories", nil, &resp)
	return resp.Categories, err
}

func (c *Client) CreateCategory(ctx context.Context, in validation.CategoryInput) (models.BlogCategory, error) {
	var category models.BlogCategory
	err := c.do(ctx, http.MethodPost, "/blog/categories", in, &category)
	return category, err
}

func (c *Client) UpdateCategory(ctx context.Context, id uint, in validation.CategoryInput) (models.BlogCategory, error) {
	var category models.BlogCategory
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/blog/categories/%d", id), in, &category)
	return category, err
}

func (c *Client) DeleteCategory(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/blog/categories/%d", id), nil, nil)
}
