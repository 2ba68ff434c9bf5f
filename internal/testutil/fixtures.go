// Package testutil holds fixtures and in-memory fakes shared by package tests.
package testutil

import (
	"bytes"

	"megheza-backend/internal/domains/application/model"
	"megheza-backend/pkg/dataurl"
)

// PNG returns n bytes that sniff as image/png.
func PNG(n int) []byte {
	sig := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	if n < len(sig) {
		n = len(sig)
	}
	return append(sig, bytes.Repeat([]byte{0}, n-len(sig))...)
}

// PDF returns n bytes that sniff as application/pdf.
func PDF(n int) []byte {
	sig := []byte("%PDF-1.7\n")
	if n < len(sig) {
		n = len(sig)
	}
	return append(sig, bytes.Repeat([]byte{' '}, n-len(sig))...)
}

// PNGDataURL is a data URL wrapping PNG(n).
func PNGDataURL(n int) string {
	return dataurl.Encode(PNG(n), "image/png")
}

// PDFDataURL is a data URL wrapping PDF(n).
func PDFDataURL(n int) string {
	return dataurl.Encode(PDF(n), "application/pdf")
}

// ValidSubmission returns a complete submission that passes every rule.
func ValidSubmission(email string) *model.Submission {
	return &model.Submission{
		FullName:            "Alice Martin",
		Email:               email,
		Location:            "Lyon, France",
		Languages:           model.LanguageList{"English", "French"},
		Pronouns:            "she/her",
		PrimaryRole:         string(model.RoleReporter),
		MediaAffiliation:    "Le Quotidien",
		Portfolio:           "https://alice.example.com",
		DomainContribution1: "https://news.example.com/articles/42",
		Recognition:         "Regional press award 2021",
		Subjects:            "Climate, local politics",
		Motivation:          "Independent verification of my reporting",
		Reason:              "Access to press events",
		Affiliation:         string(model.AffiliationNo),
		SelfDeclaration:     true,
		TermsAgreement:      true,
	}
}
