package models

import "time"

const (
	RoleRegular = "regular"
	RolePro     = "pro"
)

// UserProfile is keyed by the auth uid of its owner.
type UserProfile struct {
	UID         string      `firestore:"-" bson:"_id,omitempty" json:"uid"`
	Address     Address     `firestore:"address" bson:"address" json:"address"`
	PhoneNumber string      `firestore:"phoneNumber" bson:"phoneNumber" json:"phoneNumber"`
	BannerURL   string      `firestore:"bannerUrl,omitempty" bson:"bannerUrl,omitempty" json:"bannerUrl,omitempty"`
	CreatedAt   time.Time   `firestore:"createdAt" bson:"createdAt" json:"createdAt"`
	Role        string      `firestore:"role" bson:"role" json:"role"` // "regular" or "pro".
	ProDetails  *ProDetails `firestore:"proDetails,omitempty" bson:"proDetails,omitempty" json:"proDetails,omitempty"`
}

func (p *UserProfile) SetID(id string) { p.UID = id }

type Address struct {
	Street  string `firestore:"street" bson:"street" json:"street"`
	City    string `firestore:"city" bson:"city" json:"city"`
	State   string `firestore:"state" bson:"state" json:"state"`
	Zip     string `firestore:"zip" bson:"zip" json:"zip"`
	Country string `firestore:"country,omitempty" bson:"country,omitempty" json:"country,omitempty"`
}

// ProDetails is the business profile collected by the join-as-pro flow.
type ProDetails struct {
	CompanyName       string            `firestore:"companyName" bson:"companyName" json:"companyName"`
	Bio               string            `firestore:"bio" bson:"bio" json:"bio"`
	WebsiteURL        string            `firestore:"websiteUrl,omitempty" bson:"websiteUrl,omitempty" json:"websiteUrl,omitempty"`
	ServiceAreas      []string          `firestore:"serviceAreas" bson:"serviceAreas" json:"serviceAreas"` // Zips or city names.
	Services          []ServiceOffering `firestore:"services" bson:"services" json:"services"`
	YearsInBusiness   int               `firestore:"yearsInBusiness" bson:"yearsInBusiness" json:"yearsInBusiness"`
	HourlyRate        *RateRange        `firestore:"hourlyRate,omitempty" bson:"hourlyRate,omitempty" json:"hourlyRate,omitempty"`
	Availability      string            `firestore:"availability" bson:"availability" json:"availability"` // e.g. "Mon-Fri 8AM-5PM".
	Languages         []string          `firestore:"languages" bson:"languages" json:"languages"`
	Insurance         bool              `firestore:"insurance" bson:"insurance" json:"insurance"`
	Certifications    []string          `firestore:"certifications" bson:"certifications" json:"certifications"`
	BackgroundChecked bool              `firestore:"backgroundChecked" bson:"backgroundChecked" json:"backgroundChecked"`
}

type ServiceOffering struct {
	Category      string   `firestore:"category" bson:"category" json:"category"`
	Subcategories []string `firestore:"subcategories" bson:"subcategories" json:"subcategories"`
}

type RateRange struct {
	Min float64 `firestore:"min" bson:"min" json:"min"`
	Max float64 `firestore:"max" bson:"max" json:"max"`
}

// Identity is the read-only view of the signed-in user supplied by the auth provider.
type Identity struct {
	UID         string `json:"uid"`
	DisplayName string `json:"displayName,omitempty"`
	Email       string `json:"email,omitempty"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
	PhotoURL    string `json:"photoUrl,omitempty"`
}
