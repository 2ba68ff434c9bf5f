// Package wizard is the registration form state machine:
// Intro -> Personal -> Credentials -> Statements -> Declaration -> Review -> Submitted.
//
// Transitions are pure functions over State. Only Wizard.Submit talks to the
// outside world, through a Submitter.
package wizard

import (
	"context"
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"megheza-backend/internal/domains/application/model"
	"megheza-backend/pkg/dataurl"
)

// Step is a wizard page.
type Step int

const (
	StepIntro Step = iota
	StepPersonal
	StepCredentials
	StepStatements
	StepDeclaration
	StepReview
	StepSubmitted
)

func (s Step) String() string {
	switch s {
	case StepIntro:
		return "Intro"
	case StepReview:
		return "Review"
	case StepSubmitted:
		return "Submitted"
	}
	if sec := s.Section(); sec != 0 {
		return sec.String()
	}
	return fmt.Sprintf("Step(%d)", int(s))
}

// Section maps a form step to its rules section, 0 for Intro, Review and Submitted.
func (s Step) Section() model.Section {
	if s >= StepPersonal && s <= StepDeclaration {
		return model.Section(s)
	}
	return 0
}

func stepOf(section model.Section) Step {
	return Step(section)
}

// GeneralErrorMessage is shown when the server could not be reached or failed.
const GeneralErrorMessage = "Submission failed. Please try again later."

var (
	ErrNotOnReview  = errors.New("wizard: submit is only possible from the review step")
	ErrUnknownField = errors.New("wizard: unknown field")
	ErrNotAFile     = errors.New("wizard: field does not take a file")
)

// Submitter delivers a complete record to the registration endpoint.
// Field level rejections must come back as *model.ValidationError.
type Submitter interface {
	Submit(ctx context.Context, sub *model.Submission) (*model.ApplicationResponse, error)
}

// State is the whole wizard: current step, in-progress record and visible errors.
type State struct {
	Step         Step
	Record       model.Submission
	Errors       map[string]string
	GeneralError string
}

// ========================================
// PURE TRANSITIONS
// ========================================

// Next leaves Intro unconditionally and a form section only when that section validates.
func Next(s State) State {
	switch {
	case s.Step == StepIntro:
		s.Step = StepPersonal
		s.Errors = nil
		return s
	case s.Step.Section() != 0:
		section := s.Step.Section()
		errs := check(s.Record, func(rec *model.Submission) validation.Errors {
			return model.ValidateSection(rec, section)
		})
		if len(errs) > 0 {
			s.Errors = errs
			return s
		}
		s.Errors = nil
		s.Step++
		return s
	}
	return s
}

// Back moves one step towards Intro. It never validates and keeps the record.
func Back(s State) State {
	switch s.Step {
	case StepIntro, StepSubmitted:
		return s
	}
	s.Step--
	s.Errors = nil
	s.GeneralError = ""
	return s
}

// SetField stores a text, boolean or language value and clears that field's error.
func SetField(s State, field string, value interface{}) (State, error) {
	rec := s.Record.Clone()
	if err := assign(&rec, field, value); err != nil {
		return s, err
	}
	s.Record = rec
	s.Errors = without(s.Errors, field)
	return s, nil
}

// AttachFile encodes a document as a data URL. Size and type are checked on Next.
func AttachFile(s State, field string, data []byte, mimeType string) (State, error) {
	rec := s.Record.Clone()
	encoded := ""
	if data != nil {
		encoded = dataurl.Encode(data, mimeType)
	}
	switch field {
	case model.FieldProfilePicture:
		rec.ProfilePicture = encoded
	case model.FieldPressCard:
		rec.PressCard = encoded
	default:
		return s, fmt.Errorf("%w: %s", ErrNotAFile, field)
	}
	s.Record = rec
	s.Errors = without(s.Errors, field)
	return s, nil
}

// Reject lands on the first section holding a field error and shows that section's errors.
// Errors on unknown fields become the general error.
func Reject(s State, fields map[string]string) State {
	first := model.Section(0)
	for field := range fields {
		sec := model.SectionOf(field)
		if sec != 0 && (first == 0 || sec < first) {
			first = sec
		}
	}
	if first == 0 {
		s.Step = StepReview
		s.Errors = nil
		s.GeneralError = GeneralErrorMessage
		return s
	}

	shown := make(map[string]string)
	for field, msg := range fields {
		if model.SectionOf(field) == first {
			shown[field] = msg
		}
	}
	s.Step = stepOf(first)
	s.Errors = shown
	s.GeneralError = ""
	return s
}

// Accept clears the record and finishes the wizard.
func Accept(s State) State {
	return State{Step: StepSubmitted}
}

// Fail keeps the wizard on Review with a general error.
func Fail(s State) State {
	s.Step = StepReview
	s.GeneralError = GeneralErrorMessage
	return s
}

// ========================================
// WIZARD
// ========================================

// Wizard holds the current State and performs the single side effect, Submit.
type Wizard struct {
	state     State
	submitter Submitter
	result    *model.ApplicationResponse
}

func New(submitter Submitter) *Wizard {
	return &Wizard{submitter: submitter}
}

func (w *Wizard) State() State {
	s := w.state
	s.Record = s.Record.Clone()
	s.Errors = copyErrors(s.Errors)
	return s
}

func (w *Wizard) Step() Step { return w.state.Step }

func (w *Wizard) Errors() map[string]string { return copyErrors(w.state.Errors) }

func (w *Wizard) GeneralError() string { return w.state.GeneralError }

// Result is the created application after a successful Submit.
func (w *Wizard) Result() *model.ApplicationResponse { return w.result }

func (w *Wizard) Next() bool {
	before := w.state.Step
	w.state = Next(w.state)
	return w.state.Step != before
}

func (w *Wizard) Back() {
	w.state = Back(w.state)
}

func (w *Wizard) SetField(field string, value interface{}) error {
	s, err := SetField(w.state, field, value)
	w.state = s
	return err
}

func (w *Wizard) AttachFile(field string, data []byte, mimeType string) error {
	s, err := AttachFile(w.state, field, data, mimeType)
	w.state = s
	return err
}

// Submit re-validates the whole record, then sends it. Local or server field
// errors move the wizard to the first failing section; any other failure
// leaves it on Review.
func (w *Wizard) Submit(ctx context.Context) error {
	if w.state.Step != StepReview {
		return ErrNotOnReview
	}

	if errs := check(w.state.Record, model.Validate); len(errs) > 0 {
		w.state = Reject(w.state, errs)
		return &model.ValidationError{Fields: errs}
	}

	rec := w.state.Record.Clone()
	resp, err := w.submitter.Submit(ctx, &rec)
	if err != nil {
		var fieldErr *model.ValidationError
		if errors.As(err, &fieldErr) {
			w.state = Reject(w.state, fieldErr.Fields)
		} else {
			w.state = Fail(w.state)
		}
		return err
	}

	w.result = resp
	w.state = Accept(w.state)
	return nil
}

// ========================================
// HELPERS
// ========================================

// check validates a normalized copy, the same view the server validates.
func check(rec model.Submission, validate func(*model.Submission) validation.Errors) map[string]string {
	rec = rec.Clone()
	rec.Normalize()
	out := make(map[string]string)
	for field, err := range validate(&rec) {
		out[field] = err.Error()
	}
	return out
}

func assign(rec *model.Submission, field string, value interface{}) error {
	if field == "languages" {
		switch v := value.(type) {
		case string:
			rec.Languages = model.LanguageList{v}
		case []string:
			rec.Languages = append(model.LanguageList(nil), v...)
		default:
			return model.LanguagesTypeError{}
		}
		return nil
	}

	switch field {
	case "selfDeclaration", "termsAgreement":
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("wizard: %s takes a bool", field)
		}
		if field == "selfDeclaration" {
			rec.SelfDeclaration = b
		} else {
			rec.TermsAgreement = b
		}
		return nil
	}

	text, ok := value.(string)
	if !ok {
		return fmt.Errorf("wizard: %s takes a string", field)
	}
	dst := textField(rec, field)
	if dst == nil {
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	*dst = text
	return nil
}

func textField(rec *model.Submission, field string) *string {
	switch field {
	case "fullName":
		return &rec.FullName
	case "email":
		return &rec.Email
	case "location":
		return &rec.Location
	case "pronouns":
		return &rec.Pronouns
	case "primaryRole":
		return &rec.PrimaryRole
	case "otherRole":
		return &rec.OtherRole
	case "mediaAffiliation":
		return &rec.MediaAffiliation
	case "portfolio":
		return &rec.Portfolio
	case "domainContribution1":
		return &rec.DomainContribution1
	case "domainContributionAdditional":
		return &rec.DomainContributionAdditional
	case "videoSubmission":
		return &rec.VideoSubmission
	case "recognition":
		return &rec.Recognition
	case "subjects":
		return &rec.Subjects
	case "motivation":
		return &rec.Motivation
	case "reason":
		return &rec.Reason
	case "affiliation":
		return &rec.Affiliation
	case "affiliationDetails":
		return &rec.AffiliationDetails
	}
	return nil
}

func without(errs map[string]string, field string) map[string]string {
	if _, ok := errs[field]; !ok {
		return errs
	}
	out := copyErrors(errs)
	delete(out, field)
	return out
}

func copyErrors(errs map[string]string) map[string]string {
	if errs == nil {
		return nil
	}
	out := make(map[string]string, len(errs))
	for k, v := range errs {
		out[k] = v
	}
	return out
}
