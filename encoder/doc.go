// Package encoder holds the encoder-side control plane of the AV1 port,
// starting with the speed feature derivation: the single place where the
// speed dial, deadline mode, frame classification and resolution are
// reconciled into one consistent set of search and optimization controls.
//
// Two entry points cover the two derivation scopes:
//
//	d := encoder.DeriveFramesizeIndependent(ctx, rd)   // per configuration change
//	encoder.DeriveFramesizeDependent(ctx, &d.SF, rd)   // per active resolution
//
// Both are deterministic pure functions of the EncodeContext. The derived
// SpeedFeatures record is treated as read-only shared data by the frame
// worker threads; re-deriving while a frame is in flight is the caller's
// synchronization problem, not this package's.
package encoder
