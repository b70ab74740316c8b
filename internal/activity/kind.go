// Package activity defines the closed set of activity event kinds and their
// display categories.
//
// Kinds are stored as their tag string ("login", "add-log", ...). Parsing is
// total: any tag outside the known set, including the empty string, becomes
// Generic, so a feed never carries an event without a category.
package activity

import (
	"encoding/json"
	"strings"
)

// Kind is the category tag of an activity event.
type Kind uint8

const (
	Generic Kind = iota
	Login
	Logout
	AddTask
	ListStatus
	AddLog
	ExportLogs
)

var kindTags = [...]string{
	Generic:    "activity",
	Login:      "login",
	Logout:     "logout",
	AddTask:    "add-task",
	ListStatus: "list-status",
	AddLog:     "add-log",
	ExportLogs: "export-logs",
}

// Category is what a client needs to render an event: a stable name and
// an icon identifier.
type Category struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

var categories = [...]Category{
	Generic:    {Name: "activity", Icon: "bell-outline"},
	Login:      {Name: "login", Icon: "login"},
	Logout:     {Name: "logout", Icon: "logout"},
	AddTask:    {Name: "add-task", Icon: "plus-box-outline"},
	ListStatus: {Name: "list-status", Icon: "checkbox-marked-outline"},
	AddLog:     {Name: "add-log", Icon: "notebook-edit-outline"},
	ExportLogs: {Name: "export-logs", Icon: "file-export-outline"},
}

// Kinds lists every kind, Generic first.
func Kinds() []Kind {
	return []Kind{Generic, Login, Logout, AddTask, ListStatus, AddLog, ExportLogs}
}

// Parse maps a stored tag to a Kind. Unknown tags map to Generic.
func Parse(tag string) Kind {
	tag = strings.ToLower(strings.TrimSpace(tag))
	for k, t := range kindTags {
		if t == tag {
			return Kind(k)
		}
	}
	return Generic
}

// String returns the storage tag.
func (k Kind) String() string {
	if int(k) < len(kindTags) {
		return kindTags[k]
	}
	return kindTags[Generic]
}

// Category returns the display category. Out-of-range values fall back to
// the Generic category.
func (k Kind) Category() Category {
	if int(k) < len(categories) {
		return categories[k]
	}
	return categories[Generic]
}

func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *Kind) UnmarshalJSON(b []byte) error {
	var tag string
	if err := json.Unmarshal(b, &tag); err != nil {
		*k = Generic
		return nil
	}
	*k = Parse(tag)
	return nil
}
