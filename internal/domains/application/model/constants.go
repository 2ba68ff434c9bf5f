package model

import "megheza-backend/pkg/dataurl"

// Role is the applicant's primary journalism role.
type Role string

const (
	RoleReporter      Role = "Reporter"
	RoleEditor        Role = "Editor"
	RoleCorrespondent Role = "Correspondent"
	RoleInvestigative Role = "Investigative Journalist"
	RoleFreelance     Role = "Freelance Journalist"
	RolePhotoVideo    Role = "Photo/Video Journalist"
	RoleOther         Role = "Other"
)

// Roles lists every accepted primary role in display order.
var Roles = []Role{
	RoleReporter,
	RoleEditor,
	RoleCorrespondent,
	RoleInvestigative,
	RoleFreelance,
	RolePhotoVideo,
	RoleOther,
}

// Affiliation answers "are you affiliated with a political party, government or lobby".
type Affiliation string

const (
	AffiliationYes Affiliation = "Yes"
	AffiliationNo  Affiliation = "No"
)

// Document fields
const (
	FieldProfilePicture = "profilePicture"
	FieldPressCard      = "pressCard"
)

// Document limits
const (
	MaxDocumentBytes = 150 * dataurl.KB
)

// Raster formats only. Vector and markup types (image/svg+xml) can carry script.
var (
	ImageTypes = []string{
		"image/jpeg", "image/jpg", "image/png", "image/gif",
		"image/webp", "image/bmp", "image/tiff", "image/avif", "image/heic",
	}
	ProfilePictureTypes = ImageTypes
	PressCardTypes      = append(append([]string(nil), ImageTypes...), "application/pdf")
)

// Task types and queues
const (
	TypeRedactDocuments = "application:redact_documents"
	TypeNotifyVerified  = "application:notify_verified"

	QueueApplication = "application"
	QueueEmail       = "email"
)
