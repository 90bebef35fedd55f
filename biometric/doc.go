// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package biometric matches webcam captures against enrolled templates.

Matcher is the contract a recognition engine fulfills: given a frame,
return the single best Match (identity plus confidence) or ErrNoMatch.
Frames below the liveness floor fail early with ErrNotLive.

TemplateMatcher is the built-in reference implementation. It compares
the capture's SHA-256 digest against every enrolled template reference
and returns an exact match with confidence 1.0. It stands in for a
real engine behind the same interface; swapping in one that produces
fractional confidences changes nothing upstream, since the session
layer applies the acceptance threshold.

TemplateRef derives the stored template reference from an enrollment
capture:

	ref := biometric.TemplateRef(image)
*/
package biometric
