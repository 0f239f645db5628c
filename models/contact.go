package models

import "time"

// Contact subjects accepted by storage.
const (
	SubjectGeneral     = "general"
	SubjectInquiry     = "inquiry"
	SubjectSupport     = "support"
	SubjectFeedback    = "feedback"
	SubjectPartnership = "partnership"
	SubjectOther       = "other"
)

var ContactSubjects = []string{SubjectGeneral, SubjectInquiry, SubjectSupport, SubjectFeedback, SubjectPartnership, SubjectOther}

const ContactStatusUnread = "unread"

type ContactMessage struct {
	ID          uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	FullName    string    `json:"fullName" gorm:"type:varchar(255);not null"`
	Email       string    `json:"email" gorm:"type:varchar(255);not null"`
	PhoneNumber *string   `json:"phoneNumber" gorm:"type:varchar(50)"`
	Subject     string    `json:"subject" gorm:"type:varchar(20);not null"`
	Message     string    `json:"message" gorm:"type:text;not null"`
	Status      string    `json:"status" gorm:"type:varchar(20);not null;index"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (ContactMessage) TableName() string {
	return "contact_messages"
}

// Subscription is keyed by email; unsubscribing keeps the row.
type Subscription struct {
	ID             uint       `json:"id" gorm:"primaryKey;autoIncrement"`
	FirstName      string     `json:"firstName" gorm:"type:varchar(255);not null"`
	LastName       string     `json:"lastName" gorm:"type:varchar(255);not null"`
	Email          string     `json:"email" gorm:"type:varchar(255);not null;uniqueIndex:idx_subscriptions_email"`
	IsActive       bool       `json:"isActive" gorm:"not null"`
	SubscribedAt   time.Time  `json:"subscribedAt"`
	UnsubscribedAt *time.Time `json:"unsubscribedAt"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
