// Package errors provides structured, coded errors for the modification pipeline.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Registry errors
	CodeUnknownKey   Code = "REGISTRY_UNKNOWN_KEY"
	CodeInvalidKey   Code = "REGISTRY_INVALID_KEY"
	CodeDuplicateKey Code = "REGISTRY_DUPLICATE_KEY"

	// Modification errors
	CodeNullArgument    Code = "MODIFICATION_NULL_ARGUMENT"
	CodeContextFrozen   Code = "MODIFICATION_CONTEXT_FROZEN"
	CodeModifierFailed  Code = "MODIFICATION_MODIFIER_FAILED"
	CodeInvalidModifier Code = "MODIFICATION_INVALID_MODIFIER"

	// Input errors
	CodeScriptInvalid    Code = "SCRIPT_INVALID"
	CodeWorldFileInvalid Code = "WORLD_FILE_INVALID"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	case CodeInvalidKey,
		CodeNullArgument,
		CodeInvalidModifier,
		CodeScriptInvalid,
		CodeWorldFileInvalid:
		return codes.InvalidArgument

	case CodeContextFrozen:
		return codes.FailedPrecondition

	case CodeUnknownKey,
		CodeNotFound:
		return codes.NotFound

	case CodeDuplicateKey:
		return codes.AlreadyExists

	case CodeModifierFailed:
		return codes.Aborted

	default:
		return codes.Internal
	}
}
