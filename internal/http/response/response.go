package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/photoshare-backend/internal/platform/apierr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Field   string `json:"field,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondAPIError writes err with the status of its code. Internal failures
// never echo their cause to the client.
func RespondAPIError(c *gin.Context, err error) {
	code := apierr.CodeOf(err)
	status := apierr.Status(code)
	body := APIError{Code: string(code), Message: "internal error"}
	if e, ok := asAPIError(err); ok {
		body.Field = e.Field
		if code != apierr.CodeInternal {
			body.Message = e.Error()
		}
	}
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, ErrorEnvelope{Error: body})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
