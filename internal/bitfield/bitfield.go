/*
LEAP bit-field decoder.

Copyright 2026, Richard Cornwell

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/

// Package bitfield extracts named contiguous bit ranges out of 32-bit
// instruction words.
package bitfield

// Field names a contiguous, inclusive bit range [Top:Bottom] within a
// 32-bit word, Top >= Bottom.
type Field struct {
	Top    uint8
	Bottom uint8
}

// Width returns the number of bits the field spans.
func (f Field) Width() uint8 {
	return f.Top - f.Bottom + 1
}

// Mask returns the unshifted bitmask covering the field's width.
func (f Field) Mask() uint32 {
	return (uint32(1) << f.Width()) - 1
}

// Extract returns the unsigned value of the field within word.
func (f Field) Extract(word uint32) uint32 {
	return (word >> f.Bottom) & f.Mask()
}
