package model

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"megheza-backend/pkg/dataurl"
	"megheza-backend/pkg/sanitize"
)

// Kind selects how a field value is checked.
type Kind string

const (
	KindText    Kind = "text"
	KindURL     Kind = "url"
	KindEmail   Kind = "email"
	KindEnum    Kind = "enum"
	KindFile    Kind = "file"
	KindBoolean Kind = "boolean"
	KindList    Kind = "list"
)

// Section is one page of the registration wizard.
type Section int

const (
	SectionPersonal Section = iota + 1
	SectionCredentials
	SectionStatements
	SectionDeclaration
)

// Sections lists the wizard pages in order.
var Sections = []Section{SectionPersonal, SectionCredentials, SectionStatements, SectionDeclaration}

func (s Section) String() string {
	switch s {
	case SectionPersonal:
		return "Personal Information"
	case SectionCredentials:
		return "Professional Credentials"
	case SectionStatements:
		return "Statements"
	case SectionDeclaration:
		return "Declaration"
	}
	return fmt.Sprintf("Section(%d)", int(s))
}

var (
	EmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	URLPattern   = regexp.MustCompile(`(?i)^(https?://)?[\da-z.-]+\.[a-z.]{2,6}(:\d{1,5})?([/?#][^\s<>"]*)?$`)
)

// FieldRule declares how one submission field is validated.
type FieldRule struct {
	Field     string
	Label     string
	Kind      Kind
	Section   Section
	Required  bool
	MaxLength int
	Pattern   *regexp.Regexp
	Allowed   []string // enum values, or MIME patterns for files
	MaxBytes  int

	// When gates the rule; a false predicate skips it entirely.
	When func(*Submission) bool

	// RequiredMessage overrides "<Label> is required".
	RequiredMessage string

	value func(*Submission) interface{}
}

// ========================================
// RULES TABLE
// ========================================

var Rules = []FieldRule{
	// Personal
	{Field: "fullName", Label: "Full name", Kind: KindText, Section: SectionPersonal, Required: true, MaxLength: 100,
		value: func(s *Submission) interface{} { return s.FullName }},
	{Field: "email", Label: "Email", Kind: KindEmail, Section: SectionPersonal, Required: true, Pattern: EmailPattern,
		value: func(s *Submission) interface{} { return s.Email }},
	{Field: "location", Label: "Location", Kind: KindText, Section: SectionPersonal, Required: true, MaxLength: 100,
		value: func(s *Submission) interface{} { return s.Location }},
	{Field: "languages", Label: "Languages", Kind: KindList, Section: SectionPersonal, Required: true, MaxLength: 100,
		RequiredMessage: "Languages are required",
		value:           func(s *Submission) interface{} { return []string(s.Languages) }},
	{Field: "pronouns", Label: "Pronouns", Kind: KindText, Section: SectionPersonal, MaxLength: 50,
		value: func(s *Submission) interface{} { return s.Pronouns }},
	{Field: FieldProfilePicture, Label: "Profile picture", Kind: KindFile, Section: SectionPersonal,
		Allowed: ProfilePictureTypes, MaxBytes: MaxDocumentBytes,
		value: func(s *Submission) interface{} { return s.ProfilePicture }},

	// Credentials
	{Field: "primaryRole", Label: "Primary role", Kind: KindEnum, Section: SectionCredentials, Required: true,
		Allowed: roleValues(),
		value:   func(s *Submission) interface{} { return s.PrimaryRole }},
	{Field: "otherRole", Label: "Other role", Kind: KindText, Section: SectionCredentials, Required: true, MaxLength: 100,
		RequiredMessage: `Other role is required when primary role is "Other"`,
		When:            func(s *Submission) bool { return s.PrimaryRole == string(RoleOther) },
		value:           func(s *Submission) interface{} { return s.OtherRole }},
	{Field: "mediaAffiliation", Label: "Media affiliation", Kind: KindText, Section: SectionCredentials, Required: true, MaxLength: 200,
		value: func(s *Submission) interface{} { return s.MediaAffiliation }},
	{Field: "portfolio", Label: "Portfolio", Kind: KindURL, Section: SectionCredentials, Pattern: URLPattern,
		value: func(s *Submission) interface{} { return s.Portfolio }},
	{Field: "domainContribution1", Label: "Domain contribution link", Kind: KindURL, Section: SectionCredentials, Required: true, Pattern: URLPattern,
		value: func(s *Submission) interface{} { return s.DomainContribution1 }},
	{Field: "domainContributionAdditional", Label: "Additional contribution link", Kind: KindURL, Section: SectionCredentials, Pattern: URLPattern,
		value: func(s *Submission) interface{} { return s.DomainContributionAdditional }},
	{Field: FieldPressCard, Label: "Press card", Kind: KindFile, Section: SectionCredentials,
		Allowed: PressCardTypes, MaxBytes: MaxDocumentBytes,
		value: func(s *Submission) interface{} { return s.PressCard }},

	// Statements
	{Field: "recognition", Label: "Recognition", Kind: KindText, Section: SectionStatements, Required: true, MaxLength: 500,
		RequiredMessage: "Recognition statement is required",
		value:           func(s *Submission) interface{} { return s.Recognition }},
	{Field: "subjects", Label: "Subjects", Kind: KindText, Section: SectionStatements, Required: true, MaxLength: 500,
		RequiredMessage: "Subjects are required",
		value:           func(s *Submission) interface{} { return s.Subjects }},
	{Field: "motivation", Label: "Motivation", Kind: KindText, Section: SectionStatements, Required: true, MaxLength: 500,
		value: func(s *Submission) interface{} { return s.Motivation }},
	{Field: "affiliation", Label: "Affiliation", Kind: KindEnum, Section: SectionStatements, Required: true,
		Allowed:         []string{string(AffiliationYes), string(AffiliationNo)},
		RequiredMessage: "Affiliation status is required",
		value:           func(s *Submission) interface{} { return s.Affiliation }},
	{Field: "affiliationDetails", Label: "Affiliation details", Kind: KindText, Section: SectionStatements, Required: true, MaxLength: 500,
		RequiredMessage: `Affiliation details are required when affiliation is "Yes"`,
		When:            func(s *Submission) bool { return s.Affiliation == string(AffiliationYes) },
		value:           func(s *Submission) interface{} { return s.AffiliationDetails }},
	{Field: "reason", Label: "Reason", Kind: KindText, Section: SectionStatements, Required: true, MaxLength: 500,
		RequiredMessage: "Reason for seeking access is required",
		value:           func(s *Submission) interface{} { return s.Reason }},
	{Field: "videoSubmission", Label: "Video submission", Kind: KindURL, Section: SectionStatements, Pattern: URLPattern,
		value: func(s *Submission) interface{} { return s.VideoSubmission }},

	// Declaration
	{Field: "selfDeclaration", Label: "Self-declaration", Kind: KindBoolean, Section: SectionDeclaration, Required: true,
		value: func(s *Submission) interface{} { return s.SelfDeclaration }},
	{Field: "termsAgreement", Label: "Terms agreement", Kind: KindBoolean, Section: SectionDeclaration, Required: true,
		value: func(s *Submission) interface{} { return s.TermsAgreement }},
}

func roleValues() []string {
	out := make([]string, len(Roles))
	for i, r := range Roles {
		out[i] = string(r)
	}
	return out
}

// ========================================
// EVALUATION
// ========================================

// Validate checks every rule against the submission and returns field -> error.
// The result is empty when the submission is acceptable.
func Validate(s *Submission) validation.Errors {
	return evaluate(s, func(FieldRule) bool { return true })
}

// ValidateSection checks only the rules belonging to one wizard section.
func ValidateSection(s *Submission, section Section) validation.Errors {
	return evaluate(s, func(r FieldRule) bool { return r.Section == section })
}

// SectionOf returns the wizard section holding a field, 0 when the field is unknown.
func SectionOf(field string) Section {
	for _, r := range Rules {
		if r.Field == field {
			return r.Section
		}
	}
	return 0
}

// FieldsOf lists the field names shown on a wizard section.
func FieldsOf(section Section) []string {
	var fields []string
	for _, r := range Rules {
		if r.Section == section {
			fields = append(fields, r.Field)
		}
	}
	return fields
}

func evaluate(s *Submission, include func(FieldRule) bool) validation.Errors {
	errs := validation.Errors{}
	for _, r := range Rules {
		if !include(r) {
			continue
		}
		if r.When != nil && !r.When(s) {
			continue
		}
		if err := validation.Validate(r.value(s), r.rules()...); err != nil {
			errs[r.Field] = err
		}
	}
	return errs
}

func (r FieldRule) requiredMessage() string {
	if r.RequiredMessage != "" {
		return r.RequiredMessage
	}
	return r.Label + " is required"
}

func (r FieldRule) rules() []validation.Rule {
	var rules []validation.Rule
	if r.Required {
		rules = append(rules, validation.Required.Error(r.requiredMessage()))
	}

	switch r.Kind {
	case KindText:
		rules = append(rules, validation.RuneLength(0, r.MaxLength).
			Error(fmt.Sprintf("%s cannot exceed %d characters", r.Label, r.MaxLength)))
	case KindEmail:
		rules = append(rules, validation.Match(r.Pattern).Error("Invalid email format"))
	case KindURL:
		rules = append(rules, validation.Match(r.Pattern).Error("Invalid URL format"))
	case KindEnum:
		allowed := make([]interface{}, len(r.Allowed))
		for i, v := range r.Allowed {
			allowed[i] = v
		}
		rules = append(rules, validation.In(allowed...).
			Error(fmt.Sprintf("%s must be one of: %s", r.Label, strings.Join(r.Allowed, ", "))))
	case KindList:
		rules = append(rules, validation.By(r.checkEntries))
	case KindFile:
		rules = append(rules, validation.By(r.checkFile))
	}
	return rules
}

func (r FieldRule) checkEntries(value interface{}) error {
	entries, _ := value.([]string)
	for _, e := range entries {
		if utf8.RuneCountInString(e) > r.MaxLength {
			return validation.NewError("validation_entry_too_long",
				fmt.Sprintf("%s cannot exceed %d characters", r.Label, r.MaxLength))
		}
	}
	return nil
}

func (r FieldRule) checkFile(value interface{}) error {
	encoded, _ := value.(string)
	if encoded == "" {
		return nil
	}
	err := dataurl.Validate(encoded, r.Allowed, r.MaxBytes)
	if err == nil {
		return nil
	}
	var fe *dataurl.FileError
	if errors.As(err, &fe) && fe.Kind == dataurl.TooLarge {
		return validation.NewError(string(dataurl.TooLarge),
			fmt.Sprintf("%s exceeds %d KB limit", r.Label, r.MaxBytes/dataurl.KB))
	}
	code := string(dataurl.Malformed)
	if fe != nil {
		code = string(fe.Kind)
	}
	return validation.NewError(code, "Invalid file format for "+strings.ToLower(r.Label))
}

// ========================================
// SANITIZATION
// ========================================

// Sanitize strips markup from every free-text field in place.
// Email, URL, enum, boolean and file fields are left untouched.
func Sanitize(s *Submission) {
	for _, f := range []*string{
		&s.FullName, &s.Location, &s.Pronouns, &s.OtherRole, &s.MediaAffiliation,
		&s.Recognition, &s.Subjects, &s.Motivation, &s.Reason, &s.AffiliationDetails,
	} {
		*f = sanitize.Text(*f)
	}
	s.Languages = sanitize.Strings(s.Languages)
}
