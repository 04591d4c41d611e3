package notify

// Role selects the audience and template of a rendered message.
type Role string

const (
	RoleInternalNew        Role = "internal_new"
	RoleClientConfirmation Role = "client_confirmation"
	RoleClientStatusChange Role = "client_status_change"
)

// Template names the trigger a decision came from.
type Template string

const (
	TemplateCreated       Template = "created"
	TemplateStatusChanged Template = "status_changed"
)

// Skip reasons, logged at info level.
const (
	ReasonNoSnapshot      = "snapshot unavailable"
	ReasonStatusUnchanged = "status did not change"
	ReasonNoClientEmail   = "missing client email"
)

// Decision is the classifier output. When Notify is false, Reason says why.
type Decision struct {
	Notify   bool
	Template Template
	Roles    []Role
	Reason   string
}

func skip(reason string) Decision {
	return Decision{Reason: reason}
}

// ClassifyCreate always notifies the internal inbox and, when the record has
// an email address, the client.
func ClassifyCreate(after Snapshot) Decision {
	if after == nil {
		return skip(ReasonNoSnapshot)
	}

	roles := []Role{RoleInternalNew}
	if after.String("email", "") != "" {
		roles = append(roles, RoleClientConfirmation)
	}
	return Decision{Notify: true, Template: TemplateCreated, Roles: roles}
}

// ClassifyUpdate notifies the client only when the status field changed and
// the record has an email address. Edits to any other field are ignored.
// A status appearing or disappearing counts as a change.
func ClassifyUpdate(before, after Snapshot) Decision {
	if after == nil {
		return skip(ReasonNoSnapshot)
	}
	if !StatusChanged(before, after) {
		return skip(ReasonStatusUnchanged)
	}
	if after.String("email", "") == "" {
		return skip(ReasonNoClientEmail)
	}
	return Decision{Notify: true, Template: TemplateStatusChanged, Roles: []Role{RoleClientStatusChange}}
}

// StatusChanged compares the status field of two snapshots by presence and
// string value.
func StatusChanged(before, after Snapshot) bool {
	b, bok := statusOf(before)
	a, aok := statusOf(after)
	if bok != aok {
		return true
	}
	return a != b
}

func statusOf(s Snapshot) (string, bool) {
	v, ok := s.Lookup("status")
	if !ok {
		return "", false
	}
	if str, ok := v.(string); ok {
		return str, true
	}
	str, _ := scalarString(v)
	return str, true
}
