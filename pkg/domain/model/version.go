package model

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/slipway-dev/slipway/pkg/domain/types"
)

// ValidateVersion checks that candidate can be used as a release tag. The
// only format rule is a literal "v" prefix; no semver parsing is applied.
func ValidateVersion(candidate string) error {
	if candidate == "" {
		return goerr.New("version is empty", goerr.T(types.ErrTagInvalidFormat))
	}

	if !strings.HasPrefix(candidate, "v") {
		return goerr.New("version must start with 'v'",
			goerr.V("candidate", candidate),
			goerr.T(types.ErrTagInvalidFormat),
		)
	}

	return nil
}
