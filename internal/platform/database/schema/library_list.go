package schema

// ListTable represents the 'library.list' table
type ListTable struct {
	Table      string
	ID         string
	OwnerID    string
	Name       string
	Visibility string
	CreatedAt  string
	UpdatedAt  string
}

// List is the schema definition for library.list
var List = ListTable{
	Table:      "library.list",
	ID:         "id",
	OwnerID:    "ownerid",
	Name:       "name",
	Visibility: "visibility",
	CreatedAt:  "createdat",
	UpdatedAt:  "updatedat",
}

// Columns returns all standard column names
func (t ListTable) Columns() []string {
	return []string{
		t.ID, t.OwnerID, t.Name, t.Visibility, t.CreatedAt, t.UpdatedAt,
	}
}
