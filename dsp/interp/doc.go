// Package interp provides the fractional interpolation kernels used by
// delay lines.
//
//   - [Linear2]:  2-point linear interpolation
//   - [Hermite4]: 4-point cubic Hermite
package interp
