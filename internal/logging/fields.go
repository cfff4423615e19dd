package logging

// Field names for structured logging.
const (
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"
	FieldJobs       = "jobs"

	// Lexing.
	FieldLanguage = "language"
	FieldTokens   = "tokens"
	FieldOffset   = "offset"
	FieldRemoved  = "removed"
	FieldInserted = "inserted"
	FieldOutcome  = "outcome"
	FieldEdit     = "edit"

	FieldRemovedTokens = "removed_tokens"
	FieldAddedTokens   = "added_tokens"

	// Statistics.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesSkipped    = "files_skipped"
	FieldFilesErrored    = "files_errored"

	// Version.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
