// Copyright 2026 The Pour-Over LBM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package simerr implements the engine's error taxonomy. Errors inside a
// kernel never attempt local recovery; they surface through the stability
// gate at end of step, per the error-handling design's propagation
// policy. The only auto-recoverable events (tau_eff clips, low-|S| LES
// suppression) are not errors: tau_eff clips are counted in
// Grid.TauEffClips, while low-|S| suppression sets nu_s to zero without
// any counter.
package simerr

import "fmt"

// ConfigurationError reports an invalid configuration: bad extents,
// tau<=0.5, negative permeability, inconsistent thermal parameters.
// Raised by Create or LoadGeometry, fatal before any step runs.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Reason)
}

// Code returns the machine-readable taxonomy code.
func (e *ConfigurationError) Code() string { return "configuration_error" }

// NewConfigurationError formats a ConfigurationError.
func NewConfigurationError(format string, args ...any) error {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}

// StabilityError reports a stability-gate failure: non-finite rho or u,
// |u| > 0.3 c_s, CFL > 0.1, or tau_eff <= 0.5. Raised by Step; subsequent
// steps refuse until Reset is called. It carries the short
// machine-readable reason code plus the diagnostics snapshot computed
// for the failing step. The grid is not rolled back: the macro view
// after a failed step shows the state that step produced, not the
// pre-step state.
type StabilityError struct {
	Reason      string
	Diagnostics any // the failing step's diagnostics snapshot (sim.Diagnostics); any to avoid an import cycle
}

func (e *StabilityError) Error() string {
	return fmt.Sprintf("stability error: %s", e.Reason)
}

// Code returns the machine-readable taxonomy code.
func (e *StabilityError) Code() string { return "stability_error" }

// NewStabilityError builds a StabilityError carrying the given reason and
// diagnostics snapshot.
func NewStabilityError(reason string, diag any) error {
	return &StabilityError{Reason: reason, Diagnostics: diag}
}

// ResourceError reports allocation failure or particle-pool overflow.
type ResourceError struct {
	Reason string
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("resource error: %s", e.Reason)
}

// Code returns the machine-readable taxonomy code.
func (e *ResourceError) Code() string { return "resource_error" }

// NewResourceError formats a ResourceError.
func NewResourceError(format string, args ...any) error {
	return &ResourceError{Reason: fmt.Sprintf(format, args...)}
}

// PreconditionError reports an invalid call order, e.g. Step before
// LoadGeometry.
type PreconditionError struct {
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("precondition error: %s", e.Reason)
}

// Code returns the machine-readable taxonomy code.
func (e *PreconditionError) Code() string { return "precondition_error" }

// NewPreconditionError formats a PreconditionError.
func NewPreconditionError(format string, args ...any) error {
	return &PreconditionError{Reason: fmt.Sprintf(format, args...)}
}
