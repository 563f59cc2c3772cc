package domain

// UserRole is the role an identity holds in the portal.
type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

func (r UserRole) String() string { return string(r) }

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleUser, UserRoleAdmin:
		return true
	}
	return false
}

func (r UserRole) IsAdmin() bool { return r == UserRoleAdmin }

// InvestorStatus is the resolved access level of an identity. The zero value
// is StatusNone: no registration record exists.
type InvestorStatus string

const (
	StatusNone     InvestorStatus = ""
	StatusPending  InvestorStatus = "pending"
	StatusApproved InvestorStatus = "approved"
	StatusRejected InvestorStatus = "rejected"
)

func (s InvestorStatus) String() string {
	if s == StatusNone {
		return "none"
	}
	return string(s)
}

// IsValid reports whether s is one of the statuses a registration record can
// hold. StatusNone is not a record status.
func (s InvestorStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// IsDecided reports whether an admin has already approved or rejected.
func (s InvestorStatus) IsDecided() bool {
	return s == StatusApproved || s == StatusRejected
}

// AccreditationStatus is the self-declared accreditation of an investor.
type AccreditationStatus string

const (
	AccreditationPendingVerification AccreditationStatus = "pending_verification"
	AccreditationAccredited          AccreditationStatus = "accredited"
	AccreditationQualifiedPurchaser  AccreditationStatus = "qualified_purchaser"
	AccreditationNonAccredited       AccreditationStatus = "non_accredited"
)

func (a AccreditationStatus) String() string { return string(a) }

func (a AccreditationStatus) IsValid() bool {
	switch a {
	case AccreditationPendingVerification, AccreditationAccredited,
		AccreditationQualifiedPurchaser, AccreditationNonAccredited:
		return true
	}
	return false
}

// CapacityRange is the declared investment capacity bracket.
type CapacityRange string

const (
	CapacityUnder250K CapacityRange = "under_250k"
	Capacity250KTo1M  CapacityRange = "250k_to_1m"
	Capacity1MTo5M    CapacityRange = "1m_to_5m"
	Capacity5MTo10M   CapacityRange = "5m_to_10m"
	CapacityAbove10M  CapacityRange = "above_10m"
)

func (c CapacityRange) String() string { return string(c) }

func (c CapacityRange) IsValid() bool {
	switch c {
	case CapacityUnder250K, Capacity250KTo1M, Capacity1MTo5M, Capacity5MTo10M, CapacityAbove10M:
		return true
	}
	return false
}

// InvestmentPreferences lists the preference options offered on the
// registration form, in display order.
var InvestmentPreferences = []string{
	"Early Stage",
	"Growth Stage",
	"Clinical Trials",
	"Research & Development",
	"Medical Devices",
	"Therapeutics",
}

// IsInvestmentPreference reports whether p is one of InvestmentPreferences.
func IsInvestmentPreference(p string) bool {
	for _, known := range InvestmentPreferences {
		if known == p {
			return true
		}
	}
	return false
}

// FileType is the kind of artifact an investor document points to.
type FileType string

const (
	FileTypePDF          FileType = "pdf"
	FileTypeImage        FileType = "image"
	FileTypeSpreadsheet  FileType = "spreadsheet"
	FileTypePresentation FileType = "presentation"
)

func (f FileType) String() string { return string(f) }

func (f FileType) IsValid() bool {
	switch f {
	case FileTypePDF, FileTypeImage, FileTypeSpreadsheet, FileTypePresentation:
		return true
	}
	return false
}
