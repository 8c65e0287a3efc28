package form

import "strings"

// Values is the flat snapshot of the cockpit form fields. Empty and
// whitespace-only strings are treated as absent everywhere in this package.
type Values struct {
	Channel          string
	EntityType       string
	ContactService   string
	InteractionType  string
	CompanyName      string
	CompanyCity      string
	ContactFirstName string
	ContactLastName  string
	ContactPosition  string
	ContactName      string
	ContactPhone     string
	ContactEmail     string
	Subject          string
	MegaFamilies     []string
	StatusID         string
	OrderRef         string
	ReminderAt       string
	Notes            string
	EntityID         string
	ContactID        string
}

// DerivedContactName rebuilds the display name from the identity fields.
func (v Values) DerivedContactName() string {
	return strings.TrimSpace(strings.TrimSpace(v.ContactFirstName) + " " + strings.TrimSpace(v.ContactLastName))
}

func isSet(s string) bool {
	return strings.TrimSpace(s) != ""
}
