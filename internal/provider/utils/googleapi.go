package utils

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	providererrors "github.com/qdm12/allowlist-updater/internal/provider/errors"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// WrapGoogleAPIError wraps err with a sentinel error of
// the errors package depending on the Google API status code.
func WrapGoogleAPIError(err error) error {
	googleAPIError := new(googleapi.Error)
	if errors.As(err, &googleAPIError) && googleAPIError.Code == http.StatusNotFound {
		return fmt.Errorf("%w: %w", providererrors.ErrNotFound, err)
	}
	return err
}

// GoogleClientOptions returns the client options to authenticate
// with the credentials file if it exists, and otherwise with the
// Application Default Credentials found in the environment.
func GoogleClientOptions(ctx context.Context, credentialsFile string) (
	options []option.ClientOption, err error) {
	if credentialsFile != "" {
		info, err := os.Stat(credentialsFile)
		if err == nil && !info.IsDir() {
			return []option.ClientOption{option.WithCredentialsFile(credentialsFile)}, nil
		}
	}

	const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"
	credentials, err := google.FindDefaultCredentials(ctx, cloudPlatformScope)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", providererrors.ErrCredentialsUnavailable, err)
	}
	return []option.ClientOption{option.WithCredentials(credentials)}, nil
}
