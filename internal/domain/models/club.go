// internal/domain/models/club.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Club is a tenant organization. It exclusively owns its ClubMember and
// Invitation documents; deleting a club (out of scope) would cascade to both.
type Club struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	NameSlug  string             `bson:"name_slug" json:"name_slug"` // unique, URL-safe
	Sports    []string           `bson:"sports" json:"sports"`
	Status    string             `bson:"status" json:"status"` // trial | active | suspended
	CreatedBy string             `bson:"created_by" json:"created_by"`

	Subscription   ClubSubscription `bson:"subscription" json:"subscription"`
	Profile        ClubProfile      `bson:"profile" json:"profile"`
	Contact        ClubContact      `bson:"contact" json:"contact"`
	Address        ClubAddress      `bson:"address" json:"address"`
	Settings       ClubSettings     `bson:"settings" json:"settings"`
	OperatingHours OperatingHours   `bson:"operating_hours" json:"operating_hours"`
	Features       ClubFeatures     `bson:"features" json:"features"`
	Stats          ClubStats        `bson:"stats" json:"stats"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

type ClubSubscription struct {
	Plan        string    `bson:"plan" json:"plan"` // free | professional | enterprise
	ValidUntil  time.Time `bson:"valid_until" json:"valid_until"`
	MemberLimit int       `bson:"member_limit" json:"member_limit"`
}

type ClubProfile struct {
	Logo         string            `bson:"logo,omitempty" json:"logo,omitempty"`
	CoverImage   string            `bson:"cover_image,omitempty" json:"cover_image,omitempty"`
	Description  string            `bson:"description,omitempty" json:"description,omitempty"`
	Established  *time.Time        `bson:"established,omitempty" json:"established,omitempty"`
	Registration ClubRegistration  `bson:"registration" json:"registration"`
}

type ClubRegistration struct {
	Type   string `bson:"type" json:"type"` // society | company | association
	Number string `bson:"number,omitempty" json:"number,omitempty"`
}

type ClubContact struct {
	Phone    string `bson:"phone,omitempty" json:"phone,omitempty"`
	Email    string `bson:"email,omitempty" json:"email,omitempty"`
	WhatsApp string `bson:"whatsapp,omitempty" json:"whatsapp,omitempty"`
	Website  string `bson:"website,omitempty" json:"website,omitempty"`
}

type ClubAddress struct {
	Line1       string       `bson:"line1,omitempty" json:"line1,omitempty"`
	Line2       string       `bson:"line2,omitempty" json:"line2,omitempty"`
	City        string       `bson:"city,omitempty" json:"city,omitempty"`
	State       string       `bson:"state,omitempty" json:"state,omitempty"`
	Postcode    string       `bson:"postcode,omitempty" json:"postcode,omitempty"`
	Country     string       `bson:"country,omitempty" json:"country,omitempty"`
	Coordinates *GeoPoint    `bson:"coordinates,omitempty" json:"coordinates,omitempty"`
}

type GeoPoint struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

type ClubSettings struct {
	TimeZone        string   `bson:"time_zone" json:"time_zone"`
	Currency        string   `bson:"currency" json:"currency"`
	Languages       []string `bson:"languages" json:"languages"`
	FiscalYearStart int      `bson:"fiscal_year_start" json:"fiscal_year_start"` // month 1-12
}

// OperatingHours maps weekday names ("monday" … "sunday") to schedules.
type OperatingHours map[string]DaySchedule

type DaySchedule struct {
	IsOpen    bool   `bson:"is_open" json:"is_open"`
	OpenTime  string `bson:"open_time" json:"open_time"`   // "06:00"
	CloseTime string `bson:"close_time" json:"close_time"` // "22:00"
}

// ClubFeatures are data-model stubs; none of them have implemented behavior.
type ClubFeatures struct {
	Payments    bool `bson:"payments" json:"payments"`
	Tournaments bool `bson:"tournaments" json:"tournaments"`
	Coaching    bool `bson:"coaching" json:"coaching"`
	Merchandise bool `bson:"merchandise" json:"merchandise"`
}

// ClubStats are denormalized counters maintained alongside membership
// changes. They are best-effort: no transaction spans a membership write and
// its counter bump.
type ClubStats struct {
	TotalMembers   int     `bson:"total_members" json:"total_members"`
	ActiveMembers  int     `bson:"active_members" json:"active_members"`
	MonthlyRevenue float64 `bson:"monthly_revenue" json:"monthly_revenue"`
	Facilities     int     `bson:"facilities" json:"facilities"`
}
