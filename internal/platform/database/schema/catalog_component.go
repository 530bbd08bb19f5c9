package schema

// ComponentTable represents the 'catalog.component' table
type ComponentTable struct {
	Table       string
	ID          string
	MediaID     string
	Name        string
	Position    string
	Kind        string
	Duration    string
	PublishedAt string
	CreatedAt   string
	UpdatedAt   string
}

// Component is the schema definition for catalog.component
var Component = ComponentTable{
	Table:       "catalog.component",
	ID:          "id",
	MediaID:     "mediaid",
	Name:        "name",
	Position:    "position",
	Kind:        "kind",
	Duration:    "duration",
	PublishedAt: "publishedat",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns all standard column names
func (t ComponentTable) Columns() []string {
	return []string{
		t.ID, t.MediaID, t.Name, t.Position, t.Kind, t.Duration, t.PublishedAt, t.CreatedAt, t.UpdatedAt,
	}
}
