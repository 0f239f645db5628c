package validation

import (
	"strings"

	"github.com/gbur-rwanda/gbur-backend/models"
)

// PostInput is the payload of POST /blog and PUT /blog/{id}.
type PostInput struct {
	Title         *string    `json:"title" validate:"required,min=1,max=255" patch:"omitnil,min=1,max=255"`
	Slug          *string    `json:"slug" validate:"omitnil,max=255,slug" patch:"omitnil,max=255,slug"`
	Content       *string    `json:"content" validate:"required,min=1" patch:"omitnil,min=1"`
	Excerpt       NullString `json:"excerpt"`
	FeaturedImage NullString `json:"featuredImage" validate:"omitempty,max=500,imagepath" patch:"omitempty,max=500,imagepath"`
	CategoryID    *uint      `json:"categoryId" validate:"required,gt=0" patch:"omitnil,gt=0"`
	Status        *string    `json:"status" validate:"omitnil,oneof=draft published archived" patch:"omitnil,oneof=draft published archived"`
}

func (in *PostInput) Normalize() {
	trimPtr(in.Title)
	trimPtr(in.Slug)
	if in.Slug != nil && *in.Slug == "" {
		in.Slug = nil
	}
	if in.Status != nil {
		*in.Status = strings.ToLower(strings.TrimSpace(*in.Status))
	}
	in.Excerpt.Normalize()
	in.FeaturedImage.Normalize()
}

// ValidateCreate normalizes in and applies the create rules. A missing status
// defaults to draft.
func (in *PostInput) ValidateCreate() error {
	in.Normalize()
	if in.Status == nil {
		draft := models.PostStatusDraft
		in.Status = &draft
	}
	return Create(in)
}

func (in *PostInput) ValidateUpdate() error {
	in.Normalize()
	return Patch(in)
}

// CategoryInput is the payload of POST/PUT /blog/categories.
type CategoryInput struct {
	Name     *string `json:"name" validate:"required,min=1,max=255" patch:"omitnil,min=1,max=255"`
	Slug     *string `json:"slug" validate:"omitnil,max=255,slug" patch:"omitnil,max=255,slug"`
	Order    *int    `json:"order" validate:"omitnil,min=0" patch:"omitnil,min=0"`
	IsActive *bool   `json:"isActive"`
}

func (in *CategoryInput) Normalize() {
	trimPtr(in.Name)
	trimPtr(in.Slug)
	if in.Slug != nil && *in.Slug == "" {
		in.Slug = nil
	}
}

// ValidateCreate fills the defaults order=0 and isActive=true.
func (in *CategoryInput) ValidateCreate() error {
	in.Normalize()
	if in.Order == nil {
		zero := 0
		in.Order = &zero
	}
	if in.IsActive == nil {
		active := true
		in.IsActive = &active
	}
	return Create(in)
}

func (in *CategoryInput) ValidateUpdate() error {
	in.Normalize()
	return Patch(in)
}

type RegionInput struct {
	Name *string `json:"name" validate:"required,min=1,max=255" patch:"omitnil,min=1,max=255"`
}

func (in *RegionInput) ValidateCreate() error {
	trimPtr(in.Name)
	return Create(in)
}

type UniversityInput struct {
	Name     *string `json:"name" validate:"required,min=1,max=255" patch:"omitnil,min=1,max=255"`
	RegionID *uint   `json:"regionId" validate:"required,gt=0" patch:"omitnil,gt=0"`
}

func (in *UniversityInput) ValidateCreate() error {
	trimPtr(in.Name)
	return Create(in)
}

func (in *UniversityInput) ValidateUpdate() error {
	trimPtr(in.Name)
	return Patch(in)
}

type RegionalStaffInput struct {
	RegionID       *uint      `json:"regionId" validate:"required,gt=0"`
	Name           *string    `json:"name" validate:"required,min=1,max=255"`
	Phone          NullString `json:"phone" validate:"omitempty,max=50"`
	WhatsappNumber NullString `json:"whatsappNumber" validate:"omitempty,max=50"`
}

func (in *RegionalStaffInput) ValidateCreate() error {
	trimPtr(in.Name)
	in.Phone.Normalize()
	in.WhatsappNumber.Normalize()
	return Create(in)
}

type SmallGroupInput struct {
	Name           *string    `json:"name" validate:"required,min=1,max=255" patch:"omitnil,min=1,max=255"`
	Type           *string    `json:"type" validate:"omitnil,oneof=student graduate" patch:"omitnil,oneof=student graduate"`
	Province       NullString `json:"province" validate:"omitempty,max=255" patch:"omitempty,max=255"`
	District       NullString `json:"district" validate:"omitempty,max=255" patch:"omitempty,max=255"`
	Sector         NullString `json:"sector" validate:"omitempty,max=255" patch:"omitempty,max=255"`
	Address        NullString `json:"address" validate:"omitempty,max=500" patch:"omitempty,max=500"`
	CellLeaderName NullString `json:"cellLeaderName" validate:"omitempty,max=255" patch:"omitempty,max=255"`
	WhatsappNumber NullString `json:"whatsappNumber" validate:"omitempty,max=50" patch:"omitempty,max=50"`
}

func (in *SmallGroupInput) Normalize() {
	trimPtr(in.Name)
	if in.Type != nil {
		*in.Type = strings.ToLower(strings.TrimSpace(*in.Type))
	}
	for _, f := range []*NullString{&in.Province, &in.District, &in.Sector, &in.Address, &in.CellLeaderName, &in.WhatsappNumber} {
		f.Normalize()
	}
}

// ValidateCreate defaults the type to student.
func (in *SmallGroupInput) ValidateCreate() error {
	in.Normalize()
	if in.Type == nil {
		student := models.SmallGroupStudent
		in.Type = &student
	}
	return Create(in)
}

func (in *SmallGroupInput) ValidateUpdate() error {
	in.Normalize()
	return Patch(in)
}

// ContactInput is the public contact form. Subject arrives as a form label and
// is remapped before the rules run.
type ContactInput struct {
	FullName    string     `json:"fullName" validate:"required,max=255"`
	Email       string     `json:"email" validate:"required,email,max=255"`
	PhoneNumber NullString `json:"phoneNumber" validate:"omitempty,max=50"`
	Subject     string     `json:"subject" validate:"required,oneof=general inquiry support feedback partnership other"`
	Message     string     `json:"message" validate:"required,min=10,max=5000"`
}

func (in *ContactInput) ValidateCreate() error {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.TrimSpace(in.Email)
	in.Message = strings.TrimSpace(in.Message)
	in.PhoneNumber.Normalize()
	in.Subject = MapContactSubject(in.Subject)
	return Create(in)
}

type SubscriptionInput struct {
	FirstName string `json:"firstName" validate:"required,max=255"`
	LastName  string `json:"lastName" validate:"required,max=255"`
	Email     string `json:"email" validate:"required,email,max=255"`
}

// ValidateCreate lowercases the email so the uniqueness key is case-insensitive.
func (in *SubscriptionInput) ValidateCreate() error {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = NormalizeEmail(in.Email)
	return Create(in)
}

type UnsubscribeInput struct {
	Email string `json:"email" validate:"required,email,max=255"`
}

func (in *UnsubscribeInput) ValidateCreate() error {
	in.Email = NormalizeEmail(in.Email)
	return Create(in)
}

// AdminUnlockInput is the password submitted to open admin mode.
type AdminUnlockInput struct {
	Password string `json:"password" validate:"required"`
}

func (in *AdminUnlockInput) ValidateCreate() error {
	return Create(in)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
