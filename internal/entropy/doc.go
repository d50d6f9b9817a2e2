// Package entropy estimates the Shannon entropy of 8-bit intensity signals.
//
// Entropy is the measure the border detector uses to tell a flat margin from
// real content: a band of identical pixels carries no information (0 bits),
// while a band of N equally frequent values carries log2(N) bits.
//
// # Degenerate Input
//
// Empty signals and signals with a single distinct value both return exactly
// 0.0. Neither is an error; callers treat 0.0 as "no information".
package entropy
