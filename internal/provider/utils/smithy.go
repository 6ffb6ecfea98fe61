package utils

import (
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
	providererrors "github.com/qdm12/allowlist-updater/internal/provider/errors"
)

// EC2 API error codes, see
// https://docs.aws.amazon.com/AWSEC2/latest/APIReference/errors-overview.html
const (
	codeGroupNotFound       = "InvalidGroup.NotFound"
	codePermissionDuplicate = "InvalidPermission.Duplicate"
	codePermissionNotFound  = "InvalidPermission.NotFound"
)

// WrapEC2Error wraps err with a sentinel error of the
// errors package depending on the EC2 API error code.
func WrapEC2Error(err error) error {
	var apiError smithy.APIError
	if !errors.As(err, &apiError) {
		return err
	}

	switch apiError.ErrorCode() {
	case codeGroupNotFound:
		return fmt.Errorf("%w: %w", providererrors.ErrNotFound, err)
	case codePermissionDuplicate:
		return fmt.Errorf("%w: %w", providererrors.ErrPermissionDuplicate, err)
	case codePermissionNotFound:
		return fmt.Errorf("%w: %w", providererrors.ErrPermissionNotFound, err)
	default:
		return err
	}
}
