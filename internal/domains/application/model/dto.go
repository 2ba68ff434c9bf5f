package model

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ========================================
// REGISTRATION DTOs
// ========================================

// Submission is the raw registration payload posted by the wizard.
type Submission struct {
	FullName  string       `json:"fullName" form:"fullName"`
	Email     string       `json:"email" form:"email"`
	Location  string       `json:"location" form:"location"`
	Languages LanguageList `json:"languages" form:"languages"`
	Pronouns  string       `json:"pronouns,omitempty" form:"pronouns"`

	PrimaryRole                  string `json:"primaryRole" form:"primaryRole"`
	OtherRole                    string `json:"otherRole,omitempty" form:"otherRole"`
	MediaAffiliation             string `json:"mediaAffiliation" form:"mediaAffiliation"`
	Portfolio                    string `json:"portfolio,omitempty" form:"portfolio"`
	DomainContribution1          string `json:"domainContribution1" form:"domainContribution1"`
	DomainContributionAdditional string `json:"domainContributionAdditional,omitempty" form:"domainContributionAdditional"`
	VideoSubmission              string `json:"videoSubmission,omitempty" form:"videoSubmission"`

	// Data URLs (data:<mime>;base64,...)
	ProfilePicture string `json:"profilePicture,omitempty" form:"-"`
	PressCard      string `json:"pressCard,omitempty" form:"-"`

	Recognition string `json:"recognition" form:"recognition"`
	Subjects    string `json:"subjects" form:"subjects"`
	Motivation  string `json:"motivation" form:"motivation"`
	Reason      string `json:"reason" form:"reason"`

	Affiliation        string `json:"affiliation" form:"affiliation"`
	AffiliationDetails string `json:"affiliationDetails,omitempty" form:"affiliationDetails"`

	SelfDeclaration bool `json:"selfDeclaration" form:"selfDeclaration"`
	TermsAgreement  bool `json:"termsAgreement" form:"termsAgreement"`
}

// Normalize trims every text field, lower-cases the email and cleans the language list.
func (s *Submission) Normalize() {
	for _, f := range []*string{
		&s.FullName, &s.Location, &s.Pronouns, &s.PrimaryRole, &s.OtherRole,
		&s.MediaAffiliation, &s.Portfolio, &s.DomainContribution1,
		&s.DomainContributionAdditional, &s.VideoSubmission, &s.ProfilePicture,
		&s.PressCard, &s.Recognition, &s.Subjects, &s.Motivation, &s.Reason,
		&s.Affiliation, &s.AffiliationDetails,
	} {
		*f = strings.TrimSpace(*f)
	}
	s.Email = strings.ToLower(strings.TrimSpace(s.Email))
	s.Languages = s.Languages.Clean()
}

// Clone returns a deep copy.
func (s Submission) Clone() Submission {
	s.Languages = append(LanguageList(nil), s.Languages...)
	return s
}

// LanguageList accepts either a JSON array of strings or a single comma separated string.
type LanguageList []string

// LanguagesTypeError is returned when "languages" is neither a string nor an array of strings.
type LanguagesTypeError struct{}

func (LanguagesTypeError) Error() string { return "Languages must be a string or array" }

func (l *LanguageList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*l = list
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*l = SplitLanguages(single)
		return nil
	}
	return LanguagesTypeError{}
}

// Clean splits comma separated entries, trims them and drops empties.
func (l LanguageList) Clean() LanguageList {
	out := make(LanguageList, 0, len(l))
	for _, entry := range l {
		out = append(out, SplitLanguages(entry)...)
	}
	return out
}

// SplitLanguages turns "English, French" into ["English", "French"].
func SplitLanguages(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ========================================
// RESPONSE DTOs
// ========================================

// ApplicationResponse is the JSON view of an application. Admin listings use the same shape.
type ApplicationResponse struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Location  string    `json:"location"`
	Languages []string  `json:"languages"`
	Pronouns  string    `json:"pronouns,omitempty"`

	PrimaryRole                  Role   `json:"primaryRole"`
	OtherRole                    string `json:"otherRole,omitempty"`
	MediaAffiliation             string `json:"mediaAffiliation"`
	Portfolio                    string `json:"portfolio,omitempty"`
	DomainContribution1          string `json:"domainContribution1"`
	DomainContributionAdditional string `json:"domainContributionAdditional,omitempty"`
	VideoSubmission              string `json:"videoSubmission,omitempty"`

	ProfilePicture *string `json:"profilePicture"`
	PressCard      *string `json:"pressCard"`

	Recognition string `json:"recognition"`
	Subjects    string `json:"subjects"`
	Motivation  string `json:"motivation"`
	Reason      string `json:"reason"`

	Affiliation        Affiliation `json:"affiliation"`
	AffiliationDetails string      `json:"affiliationDetails,omitempty"`

	SelfDeclaration bool `json:"selfDeclaration"`
	TermsAgreement  bool `json:"termsAgreement"`

	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToResponse converts the entity to its JSON view.
func (a *Application) ToResponse() ApplicationResponse {
	languages := a.Languages
	if languages == nil {
		languages = []string{}
	}
	return ApplicationResponse{
		ID:                           a.ID,
		FullName:                     a.FullName,
		Email:                        a.Email,
		Location:                     a.Location,
		Languages:                    languages,
		Pronouns:                     a.Pronouns,
		PrimaryRole:                  a.PrimaryRole,
		OtherRole:                    a.OtherRole,
		MediaAffiliation:             a.MediaAffiliation,
		Portfolio:                    a.Portfolio,
		DomainContribution1:          a.DomainContribution1,
		DomainContributionAdditional: a.DomainContributionAdditional,
		VideoSubmission:              a.VideoSubmission,
		ProfilePicture:               a.ProfilePicture,
		PressCard:                    a.PressCard,
		Recognition:                  a.Recognition,
		Subjects:                     a.Subjects,
		Motivation:                   a.Motivation,
		Reason:                       a.Reason,
		Affiliation:                  a.Affiliation,
		AffiliationDetails:           a.AffiliationDetails,
		SelfDeclaration:              a.SelfDeclaration,
		TermsAgreement:               a.TermsAgreement,
		Verified:                     a.Verified,
		CreatedAt:                    a.CreatedAt,
	}
}

// ========================================
// ADMIN DTOs
// ========================================

// VerifyRequest - PATCH /admin/:id/verify
type VerifyRequest struct {
	Verified *bool `json:"verified"`
}

// VerifyResponse echoes the persisted flag.
type VerifyResponse struct {
	Verified bool `json:"verified"`
}

// Document is a decoded document ready to be served.
type Document struct {
	Data     []byte
	MimeType string
}
