package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors represent content-graph and configuration failures.
// These are distinct from data source I/O errors, which are never wrapped.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrFrozen indicates a mutation was attempted on frozen site data.
	ErrFrozen = errors.New("frozen")

	// ErrCompilerUnavailable indicates the site has no compiler configured.
	ErrCompilerUnavailable = errors.New("compiler unavailable")

	// Configuration Errors.

	// ErrConfigNotFound indicates no site configuration file exists in the site directory.
	ErrConfigNotFound = errors.New("site configuration not found")

	// ErrConfigParentMissing indicates a parent_config_file reference points nowhere.
	ErrConfigParentMissing = errors.New("parent configuration file not found")

	// ErrConfigCycle indicates the parent_config_file chain revisits a file.
	ErrConfigCycle = errors.New("parent configuration cycle")

	// Data Source Errors.

	// ErrUnknownDataSource indicates no data source is registered for a type name.
	ErrUnknownDataSource = errors.New("unknown data source type")

	// ErrNotActivated indicates a data source was pulled outside its activation scope.
	ErrNotActivated = errors.New("data source not activated")

	// Content Errors.

	// ErrDuplicateIdentifier indicates two nodes of the same kind share an identifier.
	ErrDuplicateIdentifier = errors.New("duplicate identifier")
)

// ConfigCycleError reports the parent chain that led back to Path.
type ConfigCycleError struct {
	Path  string
	Chain []string
}

func (e *ConfigCycleError) Error() string {
	return fmt.Sprintf("parent configuration cycle: %s -> %s", strings.Join(e.Chain, " -> "), e.Path)
}

// Is reports whether target is ErrConfigCycle.
func (e *ConfigCycleError) Is(target error) bool {
	return target == ErrConfigCycle
}

// ConfigParentMissingError reports a parent reference that does not exist.
type ConfigParentMissingError struct {
	Path     string
	Referrer string
}

func (e *ConfigParentMissingError) Error() string {
	return fmt.Sprintf("parent configuration file %q (referenced from %q) not found", e.Path, e.Referrer)
}

// Is reports whether target is ErrConfigParentMissing.
func (e *ConfigParentMissingError) Is(target error) bool {
	return target == ErrConfigParentMissing
}

// UnknownDataSourceError names the unregistered data source type.
type UnknownDataSourceError struct {
	Type string
}

func (e *UnknownDataSourceError) Error() string {
	return fmt.Sprintf("unknown data source type %q", e.Type)
}

// Is reports whether target is ErrUnknownDataSource.
func (e *UnknownDataSourceError) Is(target error) bool {
	return target == ErrUnknownDataSource
}

// DuplicateIdentifierError reports the first repeated identifier found in a collection.
type DuplicateIdentifierError struct {
	Identifier Identifier
	Kind       NodeKind
}

func (e *DuplicateIdentifierError) Error() string {
	return fmt.Sprintf("there are multiple %ss with the %s identifier", e.Kind, e.Identifier)
}

// Is reports whether target is ErrDuplicateIdentifier.
func (e *DuplicateIdentifierError) Is(target error) bool {
	return target == ErrDuplicateIdentifier
}
