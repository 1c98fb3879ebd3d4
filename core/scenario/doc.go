// Package scenario loads a YAML bundle describing one run() invocation — a
// patient snapshot plus the fluid choice, total volume, and duration to drive it
// with — the configuration-file counterpart to constructing a
// twin.PatientInput by hand. It carries forward the teacher's
// PolicyBundle/LoadPolicyBundle/Validate shape from sim/bundle.go: strict
// decoding, a closed validity registry per tag field, and optional clinical
// fields represented as nil-means-unset pointers.
package scenario
