package utils

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aws/smithy-go"
	providererrors "github.com/qdm12/allowlist-updater/internal/provider/errors"
	"github.com/stretchr/testify/assert"
	"google.golang.org/api/googleapi"
)

func Test_WrapGoogleAPIError(t *testing.T) {
	t.Parallel()

	errDummy := errors.New("dummy")

	testCases := map[string]struct {
		err      error
		sentinel error
	}{
		"not a Google API error": {
			err: errDummy,
		},
		"not found": {
			err:      fmt.Errorf("getting: %w", &googleapi.Error{Code: 404, Message: "missing"}),
			sentinel: providererrors.ErrNotFound,
		},
		"forbidden": {
			err: &googleapi.Error{Code: 403, Message: "forbidden"},
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := WrapGoogleAPIError(testCase.err)

			assert.ErrorIs(t, err, testCase.err)
			if testCase.sentinel != nil {
				assert.ErrorIs(t, err, testCase.sentinel)
			} else {
				assert.Equal(t, testCase.err, err)
			}
		})
	}
}

func Test_WrapEC2Error(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		err      error
		sentinel error
	}{
		"not an API error": {
			err: errors.New("dummy"),
		},
		"group not found": {
			err:      &smithy.GenericAPIError{Code: "InvalidGroup.NotFound"},
			sentinel: providererrors.ErrNotFound,
		},
		"duplicate permission": {
			err: fmt.Errorf("operation error EC2: AuthorizeSecurityGroupIngress: %w",
				&smithy.GenericAPIError{Code: "InvalidPermission.Duplicate"}),
			sentinel: providererrors.ErrPermissionDuplicate,
		},
		"permission not found": {
			err:      &smithy.GenericAPIError{Code: "InvalidPermission.NotFound"},
			sentinel: providererrors.ErrPermissionNotFound,
		},
		"other API error": {
			err: &smithy.GenericAPIError{Code: "UnauthorizedOperation"},
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := WrapEC2Error(testCase.err)

			assert.ErrorIs(t, err, testCase.err)
			if testCase.sentinel != nil {
				assert.ErrorIs(t, err, testCase.sentinel)
			} else {
				assert.Equal(t, testCase.err, err)
			}
		})
	}
}
