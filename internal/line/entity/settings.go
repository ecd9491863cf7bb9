package entity

import (
	"encoding/json"
	"time"
)

// FieldType is the input kind of a settings template field.
type FieldType string

const (
	FieldNumber FieldType = "number"
	FieldText   FieldType = "text"
	FieldSelect FieldType = "select"
)

func (t FieldType) Valid() bool {
	return t == FieldNumber || t == FieldText || t == FieldSelect
}

// SettingField is one field of a template. Options are only used by select
// fields.
type SettingField struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Type    FieldType `json:"type"`
	Unit    string    `json:"unit,omitempty"`
	Options []string  `json:"options,omitempty"`
}

// SettingsTemplate describes the fields recorded for one kind of best
// settings sheet.
type SettingsTemplate struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	FolderID string         `json:"folderId,omitempty"`
	Fields   []SettingField `json:"fields"`
}

type SettingsFolder struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// FieldValue is a recorded value. Numbers stored by older clients decode to
// their literal text.
type FieldValue string

func (v *FieldValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = FieldValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*v = FieldValue(n.String())
	return nil
}

type SettingValue struct {
	FieldID string     `json:"fieldId"`
	Value   FieldValue `json:"value"`
}

// SavedSettings is one filled-in template.
type SavedSettings struct {
	ID         string         `json:"id"`
	TemplateID string         `json:"templateId"`
	FolderID   string         `json:"folderId,omitempty"`
	Title      string         `json:"title"`
	Date       time.Time      `json:"date"`
	Values     []SettingValue `json:"values"`
}

// SettingsLibrary is everything the best settings page stores.
type SettingsLibrary struct {
	Folders   []SettingsFolder   `json:"folders"`
	Templates []SettingsTemplate `json:"templates"`
	Saved     []SavedSettings    `json:"saved"`
}
