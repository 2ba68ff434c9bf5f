package model

import (
	"time"

	"github.com/google/uuid"
)

// Application is one journalist's submitted registration.
//
// DATABASE MAPPING (journalist_applications):
//   - id UUID PRIMARY KEY
//   - email TEXT, UNIQUE (idx_journalist_applications_email)
//   - (verified, created_at) btree index, used by the retention job
//   - profile_picture / press_card hold a data URL or a document store reference, NULL when absent
type Application struct {
	ID uuid.UUID

	// Identity
	FullName  string
	Email     string
	Location  string
	Languages []string
	Pronouns  string

	// Professional
	PrimaryRole                  Role
	OtherRole                    string
	MediaAffiliation             string
	Portfolio                    string
	DomainContribution1          string
	DomainContributionAdditional string
	VideoSubmission              string

	// Documents
	ProfilePicture *string
	PressCard      *string

	// Narrative
	Recognition string
	Subjects    string
	Motivation  string
	Reason      string

	Affiliation        Affiliation
	AffiliationDetails string

	SelfDeclaration bool
	TermsAgreement  bool

	Verified bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewApplication builds an unverified application from an already validated and sanitized submission.
func NewApplication(s *Submission) *Application {
	now := time.Now().UTC()
	return &Application{
		ID:                           uuid.New(),
		FullName:                     s.FullName,
		Email:                        s.Email,
		Location:                     s.Location,
		Languages:                    append([]string(nil), s.Languages...),
		Pronouns:                     s.Pronouns,
		PrimaryRole:                  Role(s.PrimaryRole),
		OtherRole:                    s.OtherRole,
		MediaAffiliation:             s.MediaAffiliation,
		Portfolio:                    s.Portfolio,
		DomainContribution1:          s.DomainContribution1,
		DomainContributionAdditional: s.DomainContributionAdditional,
		VideoSubmission:              s.VideoSubmission,
		ProfilePicture:               optional(s.ProfilePicture),
		PressCard:                    optional(s.PressCard),
		Recognition:                  s.Recognition,
		Subjects:                     s.Subjects,
		Motivation:                   s.Motivation,
		Reason:                       s.Reason,
		Affiliation:                  Affiliation(s.Affiliation),
		AffiliationDetails:           s.AffiliationDetails,
		SelfDeclaration:              s.SelfDeclaration,
		TermsAgreement:               s.TermsAgreement,
		Verified:                     false,
		CreatedAt:                    now,
		UpdatedAt:                    now,
	}
}

// Document returns the stored value of a document field, nil when the field is empty or unknown.
func (a *Application) Document(field string) *string {
	switch field {
	case FieldProfilePicture:
		return a.ProfilePicture
	case FieldPressCard:
		return a.PressCard
	}
	return nil
}

// SetDocument replaces the stored value of a document field.
func (a *Application) SetDocument(field string, value *string) {
	switch field {
	case FieldProfilePicture:
		a.ProfilePicture = value
	case FieldPressCard:
		a.PressCard = value
	}
}

// ListFilter narrows admin listings. Nil Verified lists everything.
type ListFilter struct {
	Verified *bool
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
