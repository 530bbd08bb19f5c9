package schema

// SaveTable represents the 'library.save' table
type SaveTable struct {
	Table     string
	ID        string
	UserID    string
	MediaID   string
	CreatedAt string
}

// Save is the schema definition for library.save
var Save = SaveTable{
	Table:     "library.save",
	ID:        "id",
	UserID:    "userid",
	MediaID:   "mediaid",
	CreatedAt: "createdat",
}

// Columns returns all standard column names
func (t SaveTable) Columns() []string {
	return []string{
		t.ID, t.UserID, t.MediaID, t.CreatedAt,
	}
}
