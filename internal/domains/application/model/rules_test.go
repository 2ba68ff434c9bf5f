package model_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"megheza-backend/internal/domains/application/model"
	"megheza-backend/internal/testutil"
	"megheza-backend/pkg/dataurl"
)

func TestValidate_CompleteSubmission(t *testing.T) {
	sub := testutil.ValidSubmission("alice@example.com")
	sub.ProfilePicture = testutil.PNGDataURL(100 * 1024)
	sub.PressCard = testutil.PDFDataURL(10 * 1024)

	assert.Empty(t, model.Validate(sub))
}

func TestValidate_MissingRequiredField(t *testing.T) {
	blank := map[string]func(*model.Submission){
		"fullName":            func(s *model.Submission) { s.FullName = "" },
		"email":               func(s *model.Submission) { s.Email = "" },
		"location":            func(s *model.Submission) { s.Location = "" },
		"languages":           func(s *model.Submission) { s.Languages = nil },
		"primaryRole":         func(s *model.Submission) { s.PrimaryRole = "" },
		"mediaAffiliation":    func(s *model.Submission) { s.MediaAffiliation = "" },
		"domainContribution1": func(s *model.Submission) { s.DomainContribution1 = "" },
		"recognition":         func(s *model.Submission) { s.Recognition = "" },
		"subjects":            func(s *model.Submission) { s.Subjects = "" },
		"motivation":          func(s *model.Submission) { s.Motivation = "" },
		"reason":              func(s *model.Submission) { s.Reason = "" },
		"affiliation":         func(s *model.Submission) { s.Affiliation = "" },
		"selfDeclaration":     func(s *model.Submission) { s.SelfDeclaration = false },
		"termsAgreement":      func(s *model.Submission) { s.TermsAgreement = false },
	}

	for field, mutate := range blank {
		t.Run(field, func(t *testing.T) {
			sub := testutil.ValidSubmission("alice@example.com")
			mutate(sub)

			errs := model.Validate(sub)
			require.Len(t, errs, 1)
			assert.Contains(t, errs, field)
		})
	}
}

func TestValidate_RequiredMessages(t *testing.T) {
	sub := testutil.ValidSubmission("alice@example.com")
	sub.FullName = ""
	sub.Reason = ""

	errs := model.Validate(sub)
	assert.EqualError(t, errs["fullName"], "Full name is required")
	assert.EqualError(t, errs["reason"], "Reason for seeking access is required")
}

func TestValidate_OtherRole(t *testing.T) {
	sub := testutil.ValidSubmission("alice@example.com")
	sub.PrimaryRole = string(model.RoleOther)

	errs := model.Validate(sub)
	require.Contains(t, errs, "otherRole")
	assert.EqualError(t, errs["otherRole"], `Other role is required when primary role is "Other"`)

	sub.OtherRole = "Data journalist"
	assert.Empty(t, model.Validate(sub))

	// Not required for other roles
	sub.PrimaryRole = string(model.RoleEditor)
	sub.OtherRole = ""
	assert.NotContains(t, model.Validate(sub), "otherRole")
}

func TestValidate_AffiliationDetails(t *testing.T) {
	sub := testutil.ValidSubmission("alice@example.com")
	sub.Affiliation = string(model.AffiliationYes)

	errs := model.Validate(sub)
	require.Contains(t, errs, "affiliationDetails")
	assert.EqualError(t, errs["affiliationDetails"], `Affiliation details are required when affiliation is "Yes"`)

	sub.AffiliationDetails = "Member of a press union"
	assert.Empty(t, model.Validate(sub))

	// "No" never requires details, whatever they contain
	sub.Affiliation = string(model.AffiliationNo)
	for _, details := range []string{"", "anything", strings.Repeat("x", 900)} {
		sub.AffiliationDetails = details
		assert.NotContains(t, model.Validate(sub), "affiliationDetails")
	}
}

func TestValidate_Formats(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.Submission)
		field  string
		msg    string
	}{
		{"bad email", func(s *model.Submission) { s.Email = "alice@example" }, "email", "Invalid email format"},
		{"email with space", func(s *model.Submission) { s.Email = "al ice@example.com" }, "email", "Invalid email format"},
		{"bad portfolio", func(s *model.Submission) { s.Portfolio = "not a url" }, "portfolio", "Invalid URL format"},
		{"bad contribution", func(s *model.Submission) { s.DomainContribution1 = "ftp//x" }, "domainContribution1", "Invalid URL format"},
		{"bad video", func(s *model.Submission) { s.VideoSubmission = "<script>" }, "videoSubmission", "Invalid URL format"},
		{"unknown role", func(s *model.Submission) { s.PrimaryRole = "Blogger" }, "primaryRole", ""},
		{"unknown affiliation", func(s *model.Submission) { s.Affiliation = "Maybe" }, "affiliation", ""},
		{"long name", func(s *model.Submission) { s.FullName = strings.Repeat("a", 101) }, "fullName", "Full name cannot exceed 100 characters"},
		{"long media", func(s *model.Submission) { s.MediaAffiliation = strings.Repeat("a", 201) }, "mediaAffiliation", "Media affiliation cannot exceed 200 characters"},
		{"long pronouns", func(s *model.Submission) { s.Pronouns = strings.Repeat("a", 51) }, "pronouns", "Pronouns cannot exceed 50 characters"},
		{"long motivation", func(s *model.Submission) { s.Motivation = strings.Repeat("é", 501) }, "motivation", "Motivation cannot exceed 500 characters"},
		{"long language", func(s *model.Submission) { s.Languages = model.LanguageList{strings.Repeat("a", 101)} }, "languages", "Languages cannot exceed 100 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := testutil.ValidSubmission("alice@example.com")
			tt.mutate(sub)

			errs := model.Validate(sub)
			require.Len(t, errs, 1)
			require.Contains(t, errs, tt.field)
			if tt.msg != "" {
				assert.EqualError(t, errs[tt.field], tt.msg)
			}
		})
	}
}

func TestValidate_URLShapes(t *testing.T) {
	for _, u := range []string{
		"example.com",
		"http://example.com",
		"https://news.example.co.uk/2024/05/story-title",
		"https://example.com:8443/path?q=1#top",
		"www.youtube.com/watch?v=abc123",
	} {
		assert.True(t, model.URLPattern.MatchString(u), u)
	}
	for _, u := range []string{"example", "http://", "https://exa mple.com", "javascript:alert(1)"} {
		assert.False(t, model.URLPattern.MatchString(u), u)
	}
}

func TestValidate_Documents(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.Submission)
		field  string
		msg    string
	}{
		{
			"profile picture too large",
			func(s *model.Submission) { s.ProfilePicture = testutil.PNGDataURL(200 * 1024) },
			model.FieldProfilePicture, "Profile picture exceeds 150 KB limit",
		},
		{
			"press card too large",
			func(s *model.Submission) { s.PressCard = testutil.PDFDataURL(151 * 1024) },
			model.FieldPressCard, "Press card exceeds 150 KB limit",
		},
		{
			"pdf profile picture",
			func(s *model.Submission) { s.ProfilePicture = testutil.PDFDataURL(1024) },
			model.FieldProfilePicture, "Invalid file format for profile picture",
		},
		{
			"svg profile picture",
			func(s *model.Submission) {
				s.ProfilePicture = dataurl.Encode([]byte(`<svg xmlns="http://www.w3.org/2000/svg"><script>alert(1)</script></svg>`), "image/svg+xml")
			},
			model.FieldProfilePicture, "Invalid file format for profile picture",
		},
		{
			"svg press card",
			func(s *model.Submission) {
				s.PressCard = dataurl.Encode([]byte(`<svg xmlns="http://www.w3.org/2000/svg"></svg>`), "image/svg+xml")
			},
			model.FieldPressCard, "Invalid file format for press card",
		},
		{
			"malformed press card",
			func(s *model.Submission) { s.PressCard = "data:application/pdf,raw" },
			model.FieldPressCard, "Invalid file format for press card",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := testutil.ValidSubmission("alice@example.com")
			tt.mutate(sub)

			errs := model.Validate(sub)
			require.Len(t, errs, 1)
			assert.EqualError(t, errs[tt.field], tt.msg)
		})
	}
}

func TestValidate_Deterministic(t *testing.T) {
	sub := &model.Submission{Email: "bad", PrimaryRole: "Other", Affiliation: "Yes"}

	first := model.Validate(sub)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first.Error(), model.Validate(sub).Error())
	}
}

func TestValidateSection(t *testing.T) {
	sub := &model.Submission{
		FullName:  "Alice",
		Email:     "alice@example.com",
		Location:  "Lyon",
		Languages: model.LanguageList{"English"},
	}

	assert.Empty(t, model.ValidateSection(sub, model.SectionPersonal))

	errs := model.ValidateSection(sub, model.SectionCredentials)
	assert.Contains(t, errs, "primaryRole")
	assert.Contains(t, errs, "mediaAffiliation")
	assert.Contains(t, errs, "domainContribution1")
	assert.NotContains(t, errs, "recognition")

	// Conditional rules follow the in-progress record
	sub.PrimaryRole = string(model.RoleOther)
	assert.Contains(t, model.ValidateSection(sub, model.SectionCredentials), "otherRole")
}

func TestSections(t *testing.T) {
	seen := map[string]bool{}
	for _, section := range model.Sections {
		for _, field := range model.FieldsOf(section) {
			assert.False(t, seen[field], "field %s listed twice", field)
			seen[field] = true
			assert.Equal(t, section, model.SectionOf(field))
		}
	}
	assert.Len(t, seen, len(model.Rules))
	assert.Equal(t, model.Section(0), model.SectionOf("unknown"))
	assert.Equal(t, []string{"selfDeclaration", "termsAgreement"}, model.FieldsOf(model.SectionDeclaration))
}

func TestSanitize(t *testing.T) {
	sub := testutil.ValidSubmission("alice@example.com")
	sub.FullName = "<script>alert(1)</script>Jane"
	sub.Motivation = "<b>Truth</b> matters"
	sub.Languages = model.LanguageList{"<i>English</i>", "<img src=x>"}
	sub.Portfolio = "https://example.com/?a=<b>"

	model.Sanitize(sub)

	assert.Equal(t, "Jane", sub.FullName)
	assert.Equal(t, "Truth matters", sub.Motivation)
	assert.Equal(t, model.LanguageList{"English"}, sub.Languages)
	assert.Equal(t, "https://example.com/?a=<b>", sub.Portfolio)
}
