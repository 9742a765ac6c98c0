// Package form holds per-form state and the field binding scopes.
//
// A Form owns values, published errors and touched flags. Form.Field opens a
// FieldScope for one declared path; FieldScope.Item opens an Item with a
// generated identifier; Item.Resolve projects both onto the current state as
// a Snapshot that label, control, description and message renderers consume
// without touching the Form directly.
//
//	f := form.New(s, form.WithSubmitter(sub))
//	item := f.Field("email").Item()
//	snap := item.Resolve()
//	_ = snap.ControlID // "<id>-form-item"
package form
