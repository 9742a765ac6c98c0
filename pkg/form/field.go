package form

// FieldScope fixes the identity of one field inside a Form. It carries no state
// and cannot open another FieldScope.
type FieldScope struct {
	form *Form
	path string
}

// Path returns the field path.
func (s FieldScope) Path() string { return s.path }

// Item opens the item scope, generating the item identifier once.
func (s FieldScope) Item() *Item {
	if s.form == nil {
		panic("form: Item must be called within a Field scope")
	}
	return &Item{form: s.form, path: s.path, id: s.form.ids.NewID()}
}

// Item is one rendered instance of a field. Its identifier is fixed for the
// lifetime of the instance.
type Item struct {
	form *Form
	path string
	id   string
}

// ID returns the opaque item identifier.
func (i *Item) ID() string {
	if i == nil {
		return ""
	}
	return i.id
}

// Path returns the field path this item renders.
func (i *Item) Path() string {
	if i == nil {
		return ""
	}
	return i.path
}

// Snapshot is a read-only projection of one field's identity and state.
type Snapshot struct {
	Path          string
	ItemID        string
	ControlID     string
	DescriptionID string
	MessageID     string
	Value         any
	Error         string
	Invalid       bool
	Touched       bool
	Dirty         bool
}

// StringValue returns Value when it holds a string.
func (s Snapshot) StringValue() string {
	v, _ := s.Value.(string)
	return v
}

// Resolve merges the item identity with the current form state. It panics
// when the item was not opened from a FieldScope.
func (i *Item) Resolve() Snapshot {
	if i == nil || i.form == nil {
		panic("form: Resolve must be called within a Field scope")
	}
	st := &i.form.state
	msg := st.errors[i.path]
	return Snapshot{
		Path:          i.path,
		ItemID:        i.id,
		ControlID:     ControlID(i.id),
		DescriptionID: DescriptionID(i.id),
		MessageID:     MessageID(i.id),
		Value:         st.value(i.path),
		Error:         msg,
		Invalid:       msg != "",
		Touched:       st.isTouched(i.path),
		Dirty:         st.dirty(i.path),
	}
}
