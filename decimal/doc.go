// Package decimal provides a fixed point base 10 number.
//
// The equation for a decimal number is:
//
//  number = value * 10 ^ scale
//
// Where number is fixed point number, value is an unscaled integer, and scale
// is base 10 exponent. For example:
//
//  1.23 = 123 * 10^-2
//
// Rounding
//
// Round converts an exact rational number into a decimal with a fixed number
// of fractional digits. Ties are broken towards the even neighbour, the same
// way a correctly rounded float formatter treats values that are exactly
// representable in binary:
//
//  | Input      | Digits | Value | Scale | String |
//  |------------|--------|-------|-------|--------|
//  | 1/256      | 2      | 0     | -2    | 0.00   |
//  | 3/256      | 2      | 1     | -2    | 0.01   |
//  | 1/8        | 2      | 12    | -2    | 0.12   |
//  | 3/8        | 2      | 38    | -2    | 0.38   |
//  | 255/256    | 2      | 100   | -2    | 1.00   |
//  |------------|--------|-------|-------|--------|
//
// Fraction
//
// Fraction returns only the digits after the point. A value that rounded up
// to the next integer therefore reads as all zeros (255/256 above yields
// "00"); callers that must not confuse that with zero have to check for it.
package decimal
