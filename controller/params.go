package controller

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/netlab/startnodes/common"
)

// Only the head of a parameter file is read.
const maxParamsBytes = 512

// Params locate and authenticate against the controller.
type Params struct {
	URL      string
	User     string
	Password string
}

func (p Params) String() string {
	return fmt.Sprintf("%s (user %q)", p.URL, p.User)
}

// ParamsError means the parameter file could not be read or parsed.
type ParamsError struct {
	Err error
}

func (e *ParamsError) Error() string {
	return fmt.Sprintf("Can't get controller connection params: %v", e.Err)
}

func IsParamsError(err error) bool {
	_, ok := errors.Cause(err).(*ParamsError)
	return ok
}

// LoadParams reads the URL, user and password from the first three lines of
// the file at path. Files named *.tmp are handed over by the caller for a
// single use and are removed once they have been parsed.
func LoadParams(path string) (Params, error) {
	f, err := os.Open(path)
	if err != nil {
		return Params{}, &ParamsError{err}
	}
	data, err := ioutil.ReadAll(io.LimitReader(f, maxParamsBytes))
	f.Close()
	if err != nil {
		return Params{}, &ParamsError{err}
	}

	lines := splitLines(string(data))
	if len(lines) < 3 {
		return Params{}, &ParamsError{fmt.Errorf("expected url, user and password lines, got %d lines", len(lines))}
	}
	params := Params{URL: lines[0], User: lines[1], Password: lines[2]}

	if strings.HasSuffix(path, common.TransientParamFileSuffix) {
		if err := os.Remove(path); err != nil {
			return Params{}, &ParamsError{err}
		}
	}
	return params, nil
}

// splitLines splits on \n or \r\n; a final line terminator does not start a new line.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.TrimSuffix(strings.Replace(s, "\r\n", "\n", -1), "\n")
	return strings.Split(s, "\n")
}
