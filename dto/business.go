package dto

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type BusinessType string

const (
	BusinessCommercant   BusinessType = "COMMERCANT"
	BusinessRestaurateur BusinessType = "RESTAURATEUR"
	BusinessFournisseur  BusinessType = "FOURNISSEUR"
	BusinessLivreur      BusinessType = "LIVREUR"
)

func (t BusinessType) Valid() bool {
	switch t {
	case BusinessCommercant, BusinessRestaurateur, BusinessFournisseur, BusinessLivreur:
		return true
	}
	return false
}

// DashboardPath is the persona scoped dashboard route for a business of this type.
func (t BusinessType) DashboardPath() string {
	if !t.Valid() {
		return "/dashboard/particulier"
	}
	return "/dashboard/" + strings.ToLower(string(t))
}

type Business struct {
	ID             string          `json:"id"`
	OwnerID        string          `json:"ownerId"`
	Name           string          `json:"name"`
	Type           BusinessType    `json:"type"`
	ActivitySector string          `json:"activitySector"`
	Description    string          `json:"description,omitempty"`
	Address        string          `json:"address,omitempty"`
	Phone          string          `json:"phone,omitempty"`
	LogoURL        string          `json:"logoUrl,omitempty"`
	CoverImageURL  string          `json:"coverImageUrl,omitempty"`
	IsVerified     bool            `json:"isVerified"`
	Rating         decimal.Decimal `json:"rating"`
	Tags           []string        `json:"tags,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}

var phonePattern = regexp.MustCompile(`^\+?[0-9]{8,15}$`)

// NormalizePhone strips spaces, dots and dashes.
func NormalizePhone(s string) string {
	return strings.NewReplacer(" ", "", "-", "", ".", "").Replace(strings.TrimSpace(s))
}

// ValidPhone reports whether s is an international or local phone number of 8 to 15 digits.
func ValidPhone(s string) bool {
	return phonePattern.MatchString(NormalizePhone(s))
}

func validURL(s string) bool {
	return strings.HasPrefix(s, "https://") || strings.HasPrefix(s, "http://")
}

type CreateBusinessRequest struct {
	Name           string       `json:"name"`
	Type           BusinessType `json:"type"`
	ActivitySector string       `json:"activitySector"`
	Description    string       `json:"description,omitempty"`
	Address        string       `json:"address"`
	Phone          string       `json:"phone,omitempty"`
	LogoURL        string       `json:"logoUrl,omitempty"`
	CoverImageURL  string       `json:"coverImageUrl,omitempty"`
	Tags           []string     `json:"tags,omitempty"`
}

func (r CreateBusinessRequest) Validate() error {
	var v ValidationError
	if strings.TrimSpace(r.Name) == "" {
		v.add("name", "required")
	} else if len(r.Name) > 120 {
		v.add("name", "must be at most 120 characters")
	}
	if !r.Type.Valid() {
		v.add("type", "must be one of COMMERCANT, RESTAURATEUR, FOURNISSEUR, LIVREUR")
	}
	if strings.TrimSpace(r.ActivitySector) == "" {
		v.add("activitySector", "required")
	}
	if strings.TrimSpace(r.Address) == "" {
		v.add("address", "required")
	}
	if r.Phone != "" && !ValidPhone(r.Phone) {
		v.add("phone", "invalid phone number")
	}
	if r.LogoURL != "" && !validURL(r.LogoURL) {
		v.add("logoUrl", "must be an http(s) URL")
	}
	if r.CoverImageURL != "" && !validURL(r.CoverImageURL) {
		v.add("coverImageUrl", "must be an http(s) URL")
	}
	return v.orNil()
}

// UpdateBusinessRequest only carries the fields being changed; nil means untouched.
type UpdateBusinessRequest struct {
	Name           *string   `json:"name,omitempty"`
	ActivitySector *string   `json:"activitySector,omitempty"`
	Description    *string   `json:"description,omitempty"`
	Address        *string   `json:"address,omitempty"`
	Phone          *string   `json:"phone,omitempty"`
	LogoURL        *string   `json:"logoUrl,omitempty"`
	CoverImageURL  *string   `json:"coverImageUrl,omitempty"`
	Tags           *[]string `json:"tags,omitempty"`
}

func (r UpdateBusinessRequest) Empty() bool {
	return r.Name == nil && r.ActivitySector == nil && r.Description == nil && r.Address == nil &&
		r.Phone == nil && r.LogoURL == nil && r.CoverImageURL == nil && r.Tags == nil
}

func (r UpdateBusinessRequest) Validate() error {
	var v ValidationError
	if r.Empty() {
		v.add("body", "no field to update")
	}
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		v.add("name", "cannot be blank")
	}
	if r.ActivitySector != nil && strings.TrimSpace(*r.ActivitySector) == "" {
		v.add("activitySector", "cannot be blank")
	}
	if r.Address != nil && strings.TrimSpace(*r.Address) == "" {
		v.add("address", "cannot be blank")
	}
	if r.Phone != nil && *r.Phone != "" && !ValidPhone(*r.Phone) {
		v.add("phone", "invalid phone number")
	}
	if r.LogoURL != nil && *r.LogoURL != "" && !validURL(*r.LogoURL) {
		v.add("logoUrl", "must be an http(s) URL")
	}
	if r.CoverImageURL != nil && *r.CoverImageURL != "" && !validURL(*r.CoverImageURL) {
		v.add("coverImageUrl", "must be an http(s) URL")
	}
	return v.orNil()
}

// UserProfile is the serialized profile kept in device storage.
type UserProfile struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}
