// Package sanitizer normalizes inbound conversational data before it
// touches session state or lead storage.
//
// All normalization functions are idempotent - applying them multiple times
// produces the same result. Functions handle invalid input gracefully,
// typically by returning empty strings rather than errors.
//
// Normalization includes:
//   - Phone numbers: Convert to E.164 format, with Oman local numbers
//     (8 digits starting 9/7/8) promoted to the 968 country code first
//   - Digits: Arabic-Indic numerals converted to ASCII
//   - Names, tour types and date terms: common Arabic forms mapped to the
//     English spellings used in stored lead rows
//   - Strings: Collapse whitespace, trim leading/trailing spaces
package sanitizer
