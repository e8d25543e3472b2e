package document

// Fallback text used in the rendered output when an optional field is empty.
// The request itself is never modified.
const (
	FallbackPurpose         = "General Donation"
	FallbackVenue           = "Organization Premises"
	FallbackNextMeeting     = "To be announced"
	FallbackAttendees       = "(List not provided)"
	FallbackAgenda          = "(Agenda not specified)"
	FallbackDecisions       = "(Decisions to be recorded)"
	FallbackClosingRemarks  = "There being no other business, the meeting was adjourned with a vote of thanks to the Chair."
	FallbackResolution      = "The resolution details to be recorded here as per the decisions taken in the meeting of the Governing Body / Executive Committee."
	FallbackSignatoryLine   = "___________________"
	FallbackAuthorityName   = "(Name of Authorized Signatory)"
	FallbackNotProvided     = "Not Provided"
	FallbackEmergencyPerson = "Contact Person"
)

// Defaults are the values a blank form starts with. They apply when the
// corresponding field is left empty.
type Defaults struct {
	PaymentMode          string
	MembershipType       string
	Designation          string
	AuthorityDesignation string
	MeetingTime          string
	ValidityDays         int
}

// DefaultDefaults returns the stock form values.
func DefaultDefaults() Defaults {
	return Defaults{
		PaymentMode:          "Cash",
		MembershipType:       "General Member",
		Designation:          "Volunteer",
		AuthorityDesignation: "President",
		MeetingTime:          "10:00",
		ValidityDays:         365,
	}
}

// or returns s unless it is blank, in which case it returns fallback.
func or(s, fallback string) string {
	if isBlank(s) {
		return fallback
	}
	return trim(s)
}
