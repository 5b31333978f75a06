package handler

import (
	"errors"
	"net/http"

	"auth_api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid"
)

// response is the envelope every endpoint answers with. Data is always an
// array, empty on failure.
type response struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    []any  `json:"data"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"msg"`
}

type userResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

func publicUser(user models.User) userResponse {
	return userResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}
}

func newErrorResponse(c *gin.Context, statusCode int, errMessage string) {
	c.AbortWithStatusJSON(statusCode, response{
		Status:  false,
		Message: errMessage,
		Data:    []any{},
	})
}

func newSuccessResponse(c *gin.Context, statusCode int, message string, data ...any) {
	if data == nil {
		data = []any{}
	}
	c.JSON(statusCode, response{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

// validationErrors answers a failed binding with one item per violated rule,
// so a request with several bad fields gets every rule back in one response.
// The messages map is keyed by struct field name.
func validationErrors(c *gin.Context, err error, messages map[string]string) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		newErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	items := make([]any, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := messages[fe.Field()]
		if !ok {
			msg = "Invalid value"
		}
		items = append(items, fieldError{Field: fe.Field(), Message: msg})
	}

	c.AbortWithStatusJSON(http.StatusBadRequest, response{
		Status:  false,
		Message: "Validation errors",
		Data:    items,
	})
}
