package response

import (
	"errors"

	"github.com/yungbote/photoshare-backend/internal/platform/apierr"
)

func asAPIError(err error) (*apierr.Error, bool) {
	var e *apierr.Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
