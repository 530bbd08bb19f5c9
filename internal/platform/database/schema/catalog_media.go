package schema

// MediaTable represents the 'catalog.media' table
type MediaTable struct {
	Table       string
	ID          string
	OwnerID     string
	Name        string
	Slug        string
	Description string
	Type        string
	Published   string
	ReleasedAt  string
	CreatedAt   string
	UpdatedAt   string
}

// Media is the schema definition for catalog.media
var Media = MediaTable{
	Table:       "catalog.media",
	ID:          "id",
	OwnerID:     "ownerid",
	Name:        "name",
	Slug:        "slug",
	Description: "description",
	Type:        "type",
	Published:   "published",
	ReleasedAt:  "releasedat",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns all standard column names
func (t MediaTable) Columns() []string {
	return []string{
		t.ID, t.OwnerID, t.Name, t.Slug, t.Description, t.Type, t.Published, t.ReleasedAt, t.CreatedAt, t.UpdatedAt,
	}
}
