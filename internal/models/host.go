package models

// SSHHost is a named remote-host credential. Exactly one of Password or
// KeyPath is used, selected by UseKeyAuth.
type SSHHost struct {
	ID         string
	Host       string
	Port       int
	Username   string
	Password   string
	KeyPath    string
	UseKeyAuth bool
}

// Redacted returns a copy safe to hand out through bulk accessors.
func (h SSHHost) Redacted() SSHHost {
	h.Password = ""
	return h
}

// Capped returns a copy with every string field bounded to its cap.
func (h SSHHost) Capped() SSHHost {
	h.ID = Truncate(h.ID, MaxNameLen)
	h.Host = Truncate(h.Host, MaxLabelLen)
	h.Username = Truncate(h.Username, MaxNameLen)
	h.Password = Truncate(h.Password, MaxLabelLen)
	h.KeyPath = Truncate(h.KeyPath, MaxPathLen)
	return h
}
