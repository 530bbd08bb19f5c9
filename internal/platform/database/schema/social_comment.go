package schema

// CommentTable represents the 'social.comment' table
type CommentTable struct {
	Table     string
	ID        string
	UserID    string
	MediaID   string
	Body      string
	EditedAt  string
	CreatedAt string
}

// Comment is the schema definition for social.comment
var Comment = CommentTable{
	Table:     "social.comment",
	ID:        "id",
	UserID:    "userid",
	MediaID:   "mediaid",
	Body:      "body",
	EditedAt:  "editedat",
	CreatedAt: "createdat",
}

// Columns returns all standard column names
func (t CommentTable) Columns() []string {
	return []string{
		t.ID, t.UserID, t.MediaID, t.Body, t.EditedAt, t.CreatedAt,
	}
}
