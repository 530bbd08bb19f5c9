package schema

// ListItemTable represents the 'library.listitem' table
type ListItemTable struct {
	Table     string
	ID        string
	ListID    string
	MediaID   string
	Position  string
	CreatedAt string
}

// ListItem is the schema definition for library.listitem
var ListItem = ListItemTable{
	Table:     "library.listitem",
	ID:        "id",
	ListID:    "listid",
	MediaID:   "mediaid",
	Position:  "position",
	CreatedAt: "createdat",
}

// Columns returns all standard column names
func (t ListItemTable) Columns() []string {
	return []string{
		t.ID, t.ListID, t.MediaID, t.Position, t.CreatedAt,
	}
}
