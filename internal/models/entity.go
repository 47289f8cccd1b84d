package models

import "errors"

var (
	// ErrEntityIsError is returned by accessors that need metadata on an
	// entity that failed to load.
	ErrEntityIsError = errors.New("entity is an error entity")
	// ErrNoEntityType means the metadata carries no EntityType attribute.
	ErrNoEntityType = errors.New("entity type not present in metadata")
)

const unknownError = "Unknown error"

// Entity is a named provider object with descriptive metadata, or the error
// the provider reported for that name.
type Entity struct {
	name         string
	primaryName  string
	title        string
	errorMessage string
	metadata     *Metadata
}

// NewEntity creates a successfully loaded entity. A nil metadata is
// replaced by an empty one.
func NewEntity(name, primaryName, title string, metadata *Metadata) Entity {
	if metadata == nil {
		metadata = NewMetadata(nil)
	}
	return Entity{
		name:        name,
		primaryName: primaryName,
		title:       title,
		metadata:    metadata,
	}
}

// NewErrorEntity creates an entity carrying a provider error.
func NewErrorEntity(name, message string) Entity {
	if message == "" {
		message = unknownError
	}
	return Entity{name: name, errorMessage: message}
}

// Name is the name the entity was requested by.
func (e Entity) Name() string { return e.name }

// PrimaryName is the provider's primary name for the entity.
func (e Entity) PrimaryName() string { return e.primaryName }

// Title is the human readable description.
func (e Entity) Title() string { return e.title }

// IsError reports whether the provider failed to load the entity.
func (e Entity) IsError() bool { return e.metadata == nil }

// ErrorMessage is the provider's error text, empty unless IsError.
func (e Entity) ErrorMessage() string { return e.errorMessage }

// Metadata is nil for error entities.
func (e Entity) Metadata() *Metadata { return e.metadata }

// EntityType reads the EntityType attribute, e.g. "TimeSeries".
func (e Entity) EntityType() (string, error) {
	if e.IsError() {
		return "", ErrEntityIsError
	}
	if _, ok := e.metadata.FirstValue("EntityType"); !ok {
		return "", ErrNoEntityType
	}
	return e.metadata.Text("EntityType"), nil
}

func (e Entity) String() string { return e.name }

// ToMap flattens the entity for tabular export. Metadata keys are prefixed
// with "metadata.".
func (e Entity) ToMap() map[string]any {
	if e.IsError() {
		return map[string]any{"Name": e.name, "ErrorMessage": e.errorMessage}
	}
	out := map[string]any{
		"Name":        e.name,
		"PrimaryName": e.primaryName,
		"Title":       e.title,
	}
	for k, v := range e.metadata.ToMap() {
		out["metadata."+k] = v
	}
	return out
}
