package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"megheza-backend/internal/domains/application/model"
)

const exportSheet = "Applications"

var exportHeaders = []string{
	"ID",
	"Full Name",
	"Email",
	"Location",
	"Languages",
	"Pronouns",
	"Primary Role",
	"Other Role",
	"Media Affiliation",
	"Portfolio",
	"Domain Contribution",
	"Additional Contribution",
	"Video Submission",
	"Recognition",
	"Subjects",
	"Motivation",
	"Reason",
	"Affiliation",
	"Affiliation Details",
	"Has Profile Picture",
	"Has Press Card",
	"Verified",
	"Created At",
}

func (s *applicationService) Export(ctx context.Context, w io.Writer) error {
	apps, err := s.repo.List(ctx, model.ListFilter{})
	if err != nil {
		return s.storeError("Export", err)
	}

	f, err := buildExportFile(apps)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func buildExportFile(apps []*model.Application) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	for colIdx, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 1)
		f.SetCellValue(exportSheet, cell, header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
		f.SetCellStyle(exportSheet, "A1", last, headerStyle)
	}

	// Data rows start at row 2
	for i, a := range apps {
		values := []interface{}{
			a.ID.String(),
			a.FullName,
			a.Email,
			a.Location,
			strings.Join(a.Languages, ", "),
			a.Pronouns,
			string(a.PrimaryRole),
			a.OtherRole,
			a.MediaAffiliation,
			a.Portfolio,
			a.DomainContribution1,
			a.DomainContributionAdditional,
			a.VideoSubmission,
			a.Recognition,
			a.Subjects,
			a.Motivation,
			a.Reason,
			string(a.Affiliation),
			a.AffiliationDetails,
			a.ProfilePicture != nil,
			a.PressCard != nil,
			a.Verified,
			a.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			f.SetCellValue(exportSheet, cell, v)
		}
	}

	return f, nil
}
