// Package sanitizer normalizes user input before validation and storage.
//
// All functions are idempotent. Invalid input is reported by returning an
// empty string rather than an error, so callers decide whether an empty result
// is a validation failure.
//
// Normalization includes:
//   - Free text (titles, names): collapse whitespace runs to one space, trim
//   - Multi-line text (details): collapse whitespace inside each line, keep line breaks
//   - Phone numbers: E.164 (+[country][number]), empty when not a valid number
//   - Aircraft registrations: upper case, no whitespace ("oh-abc" becomes "OH-ABC")
//   - Airport identifiers: upper case, trimmed
package sanitizer
