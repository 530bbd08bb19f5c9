package schema

// SessionTable represents the 'users.session' table
type SessionTable struct {
	Table     string
	ID        string
	UserID    string
	Success   string
	Error     string
	IPAddress string
	UserAgent string
	Number    string
	ExpiredAt string
	CreatedAt string
}

// Session is the schema definition for users.session
var Session = SessionTable{
	Table:     "users.session",
	ID:        "id",
	UserID:    "userid",
	Success:   "success",
	Error:     "error",
	IPAddress: "ipaddress",
	UserAgent: "useragent",
	Number:    "number",
	ExpiredAt: "expiredat",
	CreatedAt: "createdat",
}

// Columns returns all standard column names
func (t SessionTable) Columns() []string {
	return []string{
		t.ID, t.UserID, t.Success, t.Error, t.IPAddress, t.UserAgent, t.Number, t.ExpiredAt, t.CreatedAt,
	}
}
