// Package uischema loads presentation documents for forms: titles, field
// labels, placeholders, input types, helper text and the links and buttons
// around the form. Validation lives in the schema package; nothing here
// changes what a form accepts.
package uischema
