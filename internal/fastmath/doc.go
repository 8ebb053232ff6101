// Package fastmath selects transcendental functions for the voice hot path.
//
// The default build uses the standard library. Building with
// `-tags fastmath` switches Exp, Exp2, Log2, Sqrt and Tanh to
// algo-approx approximations. Both variants are deterministic.
package fastmath
