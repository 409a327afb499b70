// Package float24 provides the 24 bit floating point format used by the
// capacitance meter firmware.
//
// The equation for a float24 number is:
//
//  number = (-1)^sign * 2^(exponent - 63) * 1.fraction
//
// Where sign is a single bit, exponent is a 7 bit unsigned integer biased by
// 63, and fraction holds the 16 bits after the implicit leading one. For
// example:
//
//  -16.25 = (-1)^1 * 2^(67 - 63) * 1.015625
//
// Encoding
//
// The value is laid out most significant bit first:
//
//  | 0 | 1 . 2 . 3 . 4 . 5 . 6 . 7 | 8 ... 23                       |
//  |---|---------------------------|--------------------------------|
//  | s | exponent (biased by 63)   | fraction (implicit leading 1)  |
//  |---|---------------------------|--------------------------------|
//
// The all zero pattern is zero. It is the only pattern without an implicit
// leading one.
//
// Encoding normalizes the magnitude into [1, 2) by halving or doubling it and
// counting the steps. The fraction is then built greedily from the most
// significant bit down, which truncates: the encoded magnitude is never
// larger than the input and smaller by less than 2^-16 relative.
//
// Examples
//
// One (0x3f0000)
//
//  | 0 | 1 . 2 . 3 . 4 . 5 . 6 . 7 | 8 ... 23                       |
//  |---|---------------------------|--------------------------------|
//  | 0 | 0 . 1 . 1 . 1 . 1 . 1 . 1 | 0000 0000 0000 0000            |
//  |---|---------------------------|--------------------------------|
//
// 3.75 (0x40e000)
//
//  | 0 | 1 . 2 . 3 . 4 . 5 . 6 . 7 | 8 ... 23                       |
//  |---|---------------------------|--------------------------------|
//  | 0 | 1 . 0 . 0 . 0 . 0 . 0 . 0 | 1110 0000 0000 0000            |
//  |---|---------------------------|--------------------------------|
//
// -16.25 (0xc30400)
//
//  | 0 | 1 . 2 . 3 . 4 . 5 . 6 . 7 | 8 ... 23                       |
//  |---|---------------------------|--------------------------------|
//  | 1 | 1 . 0 . 0 . 0 . 0 . 1 . 1 | 0000 0100 0000 0000            |
//  |---|---------------------------|--------------------------------|
//
// Range
//
// The exponent field limits the magnitude to [2^-63, 2^65). Encoding
// anything outside of that (other than zero), NaN or an infinity fails with a
// RangeError, as does decoding a pattern wider than 24 bits.
package float24
