package schema

// UserTable represents the 'users.user' table
type UserTable struct {
	Table         string
	ID            string
	Email         string
	Phone         string
	Name          string
	Password      string
	Role          string
	Status        string
	TotpSecret    string
	TotpEnabled   string
	EmailVerified string
	PhoneVerified string
	CreatedAt     string
	UpdatedAt     string
}

// User is the schema definition for users.user
var User = UserTable{
	Table:         `users."user"`,
	ID:            "id",
	Email:         "email",
	Phone:         "phone",
	Name:          "name",
	Password:      "password",
	Role:          "role",
	Status:        "status",
	TotpSecret:    "totpsecret",
	TotpEnabled:   "totpenabled",
	EmailVerified: "emailverified",
	PhoneVerified: "phoneverified",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
}

// Columns returns all standard column names
func (t UserTable) Columns() []string {
	return []string{
		t.ID, t.Email, t.Phone, t.Name, t.Password, t.Role, t.Status, t.TotpSecret, t.TotpEnabled, t.EmailVerified, t.PhoneVerified, t.CreatedAt, t.UpdatedAt,
	}
}
