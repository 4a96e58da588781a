/*
SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and manifest-enricher contributors
SPDX-License-Identifier: Apache-2.0
*/

package types

import "fmt"

// Processing phase of a pipeline unit.
type Phase string

const (
	PhaseCreate    Phase = "create"
	PhaseAdapt     Phase = "adapt"
	PhaseCustomize Phase = "customize"
)

// ConfigurationError is returned for unknown profiles, unresolvable unit identifiers and malformed
// profile or configuration documents. It is always fatal.
type ConfigurationError struct {
	err        error
	identifier string
}

func NewConfigurationError(err error, identifier string) ConfigurationError {
	return ConfigurationError{err: err, identifier: identifier}
}

func (e ConfigurationError) Error() string {
	if e.identifier == "" {
		return fmt.Sprintf("configuration error: %s", e.err)
	}
	return fmt.Sprintf("configuration error (%s): %s", e.identifier, e.err)
}

func (e ConfigurationError) Unwrap() error {
	return e.err
}

func (e ConfigurationError) Cause() error {
	return e.err
}

// Identifier of the profile, unit or document the error refers to (may be empty).
func (e ConfigurationError) Identifier() string {
	return e.identifier
}

// ProcessingError is returned if a unit fails in one of its phases; the whole pipeline invocation is aborted.
type ProcessingError struct {
	err   error
	unit  string
	phase Phase
}

func NewProcessingError(err error, unit string, phase Phase) ProcessingError {
	return ProcessingError{err: err, unit: unit, phase: phase}
}

func (e ProcessingError) Error() string {
	return fmt.Sprintf("error running %s (phase %s): %s", e.unit, e.phase, e.err)
}

func (e ProcessingError) Unwrap() error {
	return e.err
}

func (e ProcessingError) Cause() error {
	return e.err
}

func (e ProcessingError) Unit() string {
	return e.unit
}

func (e ProcessingError) Phase() Phase {
	return e.phase
}

// ExternalServiceError wraps failures of cluster queries, submissions or image builds.
type ExternalServiceError struct {
	err       error
	operation string
}

func NewExternalServiceError(err error, operation string) ExternalServiceError {
	return ExternalServiceError{err: err, operation: operation}
}

func (e ExternalServiceError) Error() string {
	return fmt.Sprintf("%s failed: %s", e.operation, e.err)
}

func (e ExternalServiceError) Unwrap() error {
	return e.err
}

func (e ExternalServiceError) Cause() error {
	return e.err
}

func (e ExternalServiceError) Operation() string {
	return e.operation
}

// CapabilityError is returned by pre-flight checks, before anything is mutated on the target.
type CapabilityError struct {
	capability string
	target     string
}

func NewCapabilityError(capability string, target string) CapabilityError {
	return CapabilityError{capability: capability, target: target}
}

func (e CapabilityError) Error() string {
	return fmt.Sprintf("target %s does not support %s", e.target, e.capability)
}

func (e CapabilityError) Capability() string {
	return e.capability
}

func (e CapabilityError) Target() string {
	return e.target
}
