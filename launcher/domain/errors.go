package domain

import (
	"fmt"
)

// ConnectivityError: the controller could not be reached or could not answer
// a listing or load probe the run depends on.
type ConnectivityError struct {
	Op  string
	Err error
}

func NewConnectivityError(op string, err error) *ConnectivityError {
	return &ConnectivityError{Op: op, Err: err}
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ConnectivityError) Cause() error {
	return e.Err
}

// EmptySelectionError: nothing could be resolved from the project or the selection.
type EmptySelectionError struct {
	Reason string
}

func NewEmptySelectionError(reason string) *EmptySelectionError {
	return &EmptySelectionError{Reason: reason}
}

func (e *EmptySelectionError) Error() string {
	return e.Reason
}

// StartCommandError: the controller rejected or failed the start of Node.
type StartCommandError struct {
	Node Node
	Err  error
}

func NewStartCommandError(node Node, err error) *StartCommandError {
	return &StartCommandError{Node: node, Err: err}
}

func (e *StartCommandError) Error() string {
	return fmt.Sprintf("Can't start node '%s' (%s): %v", e.Node.Name, e.Node.Id, e.Err)
}

func (e *StartCommandError) Cause() error {
	return e.Err
}

// InterruptedError: the operator stopped the run.
type InterruptedError struct {
	Err error
}

func NewInterruptedError(err error) *InterruptedError {
	return &InterruptedError{Err: err}
}

func (e *InterruptedError) Error() string {
	return "Aborted"
}

func (e *InterruptedError) Cause() error {
	return e.Err
}

type causer interface {
	Cause() error
}

// find walks the github.com/pkg/errors cause chain until match succeeds.
// Each level is matched before unwrapping, so errors.Cause would stop too late.
func find(err error, match func(error) bool) bool {
	for err != nil {
		if match(err) {
			return true
		}
		c, ok := err.(causer)
		if !ok {
			return false
		}
		err = c.Cause()
	}
	return false
}

func IsConnectivityError(err error) bool {
	return find(err, func(e error) bool { _, ok := e.(*ConnectivityError); return ok })
}

func IsEmptySelectionError(err error) bool {
	return find(err, func(e error) bool { _, ok := e.(*EmptySelectionError); return ok })
}

func IsStartCommandError(err error) bool {
	return find(err, func(e error) bool { _, ok := e.(*StartCommandError); return ok })
}

func IsInterruptedError(err error) bool {
	return find(err, func(e error) bool { _, ok := e.(*InterruptedError); return ok })
}

// AsStartCommandError returns the StartCommandError in err's cause chain, if any.
func AsStartCommandError(err error) (*StartCommandError, bool) {
	var found *StartCommandError
	find(err, func(e error) bool {
		found, _ = e.(*StartCommandError)
		return found != nil
	})
	return found, found != nil
}
