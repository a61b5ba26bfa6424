// Package domain defines the core business entities for ensaio.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Contract: a photography engagement tracked by the studio
//   - ContractInput: the creation payload, with form validation
//   - ContractPatch: a partial update
//   - AppSettings: display and server settings
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
