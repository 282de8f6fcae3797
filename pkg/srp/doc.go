// Package srp implements the SRP-6a Secure Remote Password protocol
// (RFC 5054): a password-authenticated key agreement in which neither the
// password nor a password equivalent crosses the wire.
//
// Client and Server expose the two roles as stateless operations over
// unsigned big-endian byte slices. The digest and random source are
// capabilities supplied through Config; every value fed to the digest is
// left-padded to the byte width of N:
//
//	k  = H(PAD(N) | PAD(g))
//	u  = H(PAD(A) | PAD(B))
//	x  = H(salt | H(I | ":" | P))
//	S  = (B - k*g^x)^(a + u*x) mod N     (client)
//	S  = (A * v^u)^b mod N               (server)
//	M1 = H(PAD(A) | PAD(B) | PAD(S))
//	M2 = H(PAD(A) | PAD(M1) | PAD(S))
//	K  = H(PAD(S))
//
// Missing or degenerate inputs are reported as errors wrapping
// ErrInvalidArgument. Evidence mismatches are reported as a false result.
package srp
