package schema

// VerificationTable represents the 'users.verification' table
type VerificationTable struct {
	Table     string
	ID        string
	UserID    string
	Type      string
	Value     string
	Code      string
	ExpiredAt string
	CreatedAt string
}

// Verification is the schema definition for users.verification
var Verification = VerificationTable{
	Table:     "users.verification",
	ID:        "id",
	UserID:    "userid",
	Type:      "type",
	Value:     "value",
	Code:      "code",
	ExpiredAt: "expiredat",
	CreatedAt: "createdat",
}

// Columns returns all standard column names
func (t VerificationTable) Columns() []string {
	return []string{
		t.ID, t.UserID, t.Type, t.Value, t.Code, t.ExpiredAt, t.CreatedAt,
	}
}
