package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeUnknown          = "UNKNOWN"
	CodeUnknownKey       = "REGISTRY_UNKNOWN_KEY"
	CodeInvalidKey       = "REGISTRY_INVALID_KEY"
	CodeDuplicateKey     = "REGISTRY_DUPLICATE_KEY"
	CodeNullArgument     = "MODIFICATION_NULL_ARGUMENT"
	CodeContextFrozen    = "MODIFICATION_CONTEXT_FROZEN"
	CodeModifierFailed   = "MODIFICATION_MODIFIER_FAILED"
	CodeInvalidModifier  = "MODIFICATION_INVALID_MODIFIER"
	CodeScriptInvalid    = "SCRIPT_INVALID"
	CodeWorldFileInvalid = "WORLD_FILE_INVALID"
	CodeNotFound         = "NOT_FOUND"
)

var enUSMessages = map[Code]string{
	CodeUnknown:          "An unexpected error occurred.",
	CodeUnknownKey:       "{{.Registry}} has no entry {{.Key}}.{{if .Suggestion}} Did you mean {{.Suggestion}}?{{end}}",
	CodeInvalidKey:       "{{.Key}} is not a valid identifier.",
	CodeDuplicateKey:     "{{.Registry}} already contains {{.Key}}.",
	CodeNullArgument:     "{{.Argument}} is required.",
	CodeContextFrozen:    "Biome {{.Biome}} can no longer be modified.",
	CodeModifierFailed:   "Modifier {{.Modifier}} failed on biome {{.Biome}}.",
	CodeInvalidModifier:  "Modifier {{.Modifier}} is invalid.",
	CodeScriptInvalid:    "Modifier script {{.Script}} is invalid.",
	CodeWorldFileInvalid: "World file {{.Path}} is invalid.",
	CodeNotFound:         "Pass run {{.Run}} was not found.",
}
