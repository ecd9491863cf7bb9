package entity

// DocType is the kind of item filed in a document folder.
type DocType string

const (
	DocNote      DocType = "note"
	DocDoc       DocType = "doc"
	DocExcel     DocType = "excel"
	DocImage     DocType = "image"
	DocChecklist DocType = "checklist"
)

// ChecklistItem is one step of a grade change checklist.
type ChecklistItem struct {
	Task  string `json:"task"`
	Value string `json:"value"`
	Done  bool   `json:"done"`
}

// DocItem is a file or note in a folder. Checklist is only set for
// DocChecklist items.
type DocItem struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Type      DocType         `json:"type"`
	Content   string          `json:"content,omitempty"`
	URL       string          `json:"url,omitempty"`
	Checklist []ChecklistItem `json:"checklist,omitempty"`
}

// DocFolder is a node of a document tree. Subfolder ids extend the parent
// id, so a folder's subtree shares its id prefix.
type DocFolder struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Subfolders []DocFolder `json:"subfolders"`
	Files      []DocItem   `json:"files"`
}

// DefaultGradeChangeFolders is the folder layout a new grade change library
// starts with.
func DefaultGradeChangeFolders() []DocFolder {
	folder := func(id, name string, subs ...DocFolder) DocFolder {
		if subs == nil {
			subs = []DocFolder{}
		}
		return DocFolder{ID: id, Name: name, Subfolders: subs, Files: []DocItem{}}
	}
	return []DocFolder{
		folder("1", "Grade Change Procedures",
			folder("1-1", "Standard Grades"),
			folder("1-2", "Special Grades")),
		folder("2", "Product Settings",
			folder("2-1", "Core Sizes"),
			folder("2-2", "Roll Sizes")),
		folder("3", "Quality Standards",
			folder("3-1", "Specifications"),
			folder("3-2", "Testing Procedures")),
	}
}
