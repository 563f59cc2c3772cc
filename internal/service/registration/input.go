package registration

import (
	"strings"

	"github.com/endocyclic/investor-portal/internal/domain"
)

const (
	minPasswordLength = 8
	maxNameLength     = 100
	maxFieldLength    = 200
)

// Input is the registration form.
type Input struct {
	FirstName             string
	LastName              string
	Email                 string
	Password              string
	Phone                 string
	Company               string
	JobTitle              string
	InvestmentPreferences []string
	AccreditationStatus   domain.AccreditationStatus
	CapacityRange         domain.CapacityRange
}

// Result is returned by a successful registration. No session is created:
// the investor signs in separately once the form is accepted.
type Result struct {
	Registration *domain.Registration
	Identity     *domain.Identity
	Message      string
}

func (i *Input) normalize() {
	i.FirstName = domain.NormalizeName(i.FirstName)
	i.LastName = domain.NormalizeName(i.LastName)
	i.Email = domain.NormalizeEmail(i.Email)
	i.Phone = strings.TrimSpace(i.Phone)
	i.Company = strings.TrimSpace(i.Company)
	i.JobTitle = strings.TrimSpace(i.JobTitle)

	prefs := make([]string, 0, len(i.InvestmentPreferences))
	seen := make(map[string]struct{}, len(i.InvestmentPreferences))
	for _, p := range i.InvestmentPreferences {
		p = strings.TrimSpace(p)
		if _, dup := seen[p]; dup || p == "" {
			continue
		}
		seen[p] = struct{}{}
		prefs = append(prefs, p)
	}
	i.InvestmentPreferences = prefs
}

// Validate checks the form. requirePreference rejects an empty preference
// set.
func (i *Input) Validate(requirePreference bool) error {
	var errs []domain.FieldError

	if i.FirstName == "" {
		errs = append(errs, domain.FieldError{Field: "firstName", Message: "required"})
	} else if len(i.FirstName) > maxNameLength {
		errs = append(errs, domain.FieldError{Field: "firstName", Message: "too long"})
	}
	if i.LastName == "" {
		errs = append(errs, domain.FieldError{Field: "lastName", Message: "required"})
	} else if len(i.LastName) > maxNameLength {
		errs = append(errs, domain.FieldError{Field: "lastName", Message: "too long"})
	}

	if i.Email == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "required"})
	} else if !domain.IsValidEmail(i.Email) {
		errs = append(errs, domain.FieldError{Field: "email", Message: "invalid email"})
	}

	if len(i.Password) < minPasswordLength {
		errs = append(errs, domain.FieldError{Field: "password", Message: "must be at least 8 characters"})
	}

	if len(i.Company) > maxFieldLength {
		errs = append(errs, domain.FieldError{Field: "company", Message: "too long"})
	}
	if len(i.JobTitle) > maxFieldLength {
		errs = append(errs, domain.FieldError{Field: "role", Message: "too long"})
	}
	if len(i.Phone) > maxFieldLength {
		errs = append(errs, domain.FieldError{Field: "phone", Message: "too long"})
	}

	if i.AccreditationStatus != "" && !i.AccreditationStatus.IsValid() {
		errs = append(errs, domain.FieldError{Field: "accreditationStatus", Message: "invalid value"})
	}
	if i.CapacityRange != "" && !i.CapacityRange.IsValid() {
		errs = append(errs, domain.FieldError{Field: "investmentCapacityRange", Message: "invalid value"})
	}

	for _, p := range i.InvestmentPreferences {
		if !domain.IsInvestmentPreference(p) {
			errs = append(errs, domain.FieldError{Field: "investmentPreferences", Message: "unknown preference: " + p})
			break
		}
	}
	if requirePreference && len(i.InvestmentPreferences) == 0 {
		errs = append(errs, domain.FieldError{Field: "investmentPreferences", Message: "select at least one"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// userMetadata is the profile embedded in the new identity.
func (i *Input) userMetadata() map[string]any {
	prefs := make([]any, len(i.InvestmentPreferences))
	for k, p := range i.InvestmentPreferences {
		prefs[k] = p
	}
	return map[string]any{
		domain.MetaFirstName:             i.FirstName,
		domain.MetaLastName:              i.LastName,
		domain.MetaPhone:                 i.Phone,
		domain.MetaCompany:               i.Company,
		domain.MetaJobTitle:              i.JobTitle,
		domain.MetaInvestmentPreferences: prefs,
		domain.MetaAccreditationStatus:   string(i.accreditation()),
		domain.MetaCapacityRange:         string(i.CapacityRange),
		domain.MetaInvestorStatus:        string(domain.StatusPending),
	}
}

func (i *Input) accreditation() domain.AccreditationStatus {
	if i.AccreditationStatus == "" {
		return domain.AccreditationPendingVerification
	}
	return i.AccreditationStatus
}
