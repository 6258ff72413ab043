package models

// Destination is a single notification target from a feed's config
// file. Exactly one identifying field is honored per record: phone
// wins over username, username over group, group over email.
type Destination struct {
	Phone    string `json:"phone,omitempty"`
	Username string `json:"username,omitempty"`
	Group    string `json:"group,omitempty"`
	Email    string `json:"email,omitempty"`
	Enabled  *bool  `json:"enabled,omitempty"`
}

type Destinations []Destination

const (
	PlatformSignal = "signal"
	PlatformEmail  = "email"
)

// IsEnabled defaults to true when the config omits the flag.
func (d Destination) IsEnabled() bool {
	return d.Enabled == nil || *d.Enabled
}

// Platform resolves which sender handles this destination. Empty
// means the record is malformed and should be skipped.
func (d Destination) Platform() string {
	switch {
	case d.Phone != "", d.Username != "", d.Group != "":
		return PlatformSignal
	case d.Email != "":
		return PlatformEmail
	}
	return ""
}

// Recipient is the identifying value, for logs and the delivery log.
func (d Destination) Recipient() string {
	switch {
	case d.Phone != "":
		return d.Phone
	case d.Username != "":
		return d.Username
	case d.Group != "":
		return d.Group
	case d.Email != "":
		return d.Email
	}
	return ""
}

// SignalArgs is the trailing signal-cli recipient argument vector.
func (d Destination) SignalArgs() []string {
	switch {
	case d.Phone != "":
		return []string{d.Phone}
	case d.Username != "":
		return []string{"-u", d.Username}
	case d.Group != "":
		return []string{"-g", d.Group}
	}
	return nil
}
