// Package transform reshapes a flat, prefix-encoded spreadsheet export into
// the nested energy-certificate document.
//
// The pipeline is:
//
//	[]Entry
//	  → Classify (four streams by family prefix)
//	  → BuildStructures / BuildProposals / BuildSystems / Materialize
//	  → Assemble (merge sections, mandatory coercions, attachments)
//
// Everything here is a pure computation over in-memory values. A call owns
// all of its accumulators, so independent inputs may be transformed
// concurrently without locking.
package transform
