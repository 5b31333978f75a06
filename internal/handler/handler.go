package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"auth_api/internal/auth"
	"auth_api/internal/service"
	"auth_api/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	serviceLayer service.Service
	tokens       *auth.TokenManager
	log          *slog.Logger
}

func NewHandler(srvc service.Service, tm *auth.TokenManager, lgr *slog.Logger) *Handler {
	return &Handler{
		serviceLayer: srvc,
		tokens:       tm,
		log:          lgr,
	}
}

func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()

	router.Use(RequestLogger(h.log), Recovery(h.log), cors.Default())

	auth := router.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.GET("/profile", AuthMiddleware(h.tokens), h.GetProfile)
	}

	admin := router.Group("/admin", AuthMiddleware(h.tokens), RequireRole("admin"))
	{
		admin.GET("/users", h.GetAllUsers)
	}

	return router
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role"`
}

var registerMessages = map[string]string{
	"Name":     "Name is required",
	"Email":    "Invalid email format",
	"Password": "Password must be at least 6 characters long",
}

// POST /auth/register
func (h *Handler) Register(c *gin.Context) {
	const op = "handler.Register"

	log := h.log.With(slog.String("op", op))

	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrors(c, err, registerMessages)

		return
	}

	user, err := h.serviceLayer.Register(c.Request.Context(), req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		if errors.Is(err, storage.ErrEmailTaken) {
			newErrorResponse(c, http.StatusBadRequest, "Email already registered")

			return
		}

		log.Error("failed to register user", slog.Any("error", err))

		newErrorResponse(c, http.StatusInternalServerError, "Server error")

		return
	}

	newSuccessResponse(c, http.StatusCreated, "User registered successfully", publicUser(user))
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

var loginMessages = map[string]string{
	"Email":    "Invalid email format",
	"Password": "Password is required",
}

type loginResult struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

// POST /auth/login
func (h *Handler) Login(c *gin.Context) {
	const op = "handler.Login"

	log := h.log.With(slog.String("op", op))

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrors(c, err, loginMessages)

		return
	}

	jwtToken, user, err := h.serviceLayer.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// unknown email and wrong password answer identically
		if errors.Is(err, service.ErrInvalidCredentials) {
			newErrorResponse(c, http.StatusBadRequest, "Invalid credentials")

			return
		}

		log.Error("failed to login user", slog.Any("error", err))

		newErrorResponse(c, http.StatusInternalServerError, "Server error")

		return
	}

	newSuccessResponse(c, http.StatusOK, "Login successful", loginResult{
		Token: jwtToken,
		User:  publicUser(user),
	})
}

// GET /auth/profile
func (h *Handler) GetProfile(c *gin.Context) {
	const op = "handler.GetProfile"

	log := h.log.With(slog.String("op", op))

	identity, ok := IdentityFromContext(c)
	if !ok {
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")

		return
	}

	user, err := h.serviceLayer.GetUserByID(c.Request.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			newErrorResponse(c, http.StatusNotFound, "User not found")

			return
		}

		log.Error("failed to get user by id", slog.Any("user_id", identity.UserID), slog.Any("error", err))

		newErrorResponse(c, http.StatusInternalServerError, "Server error")

		return
	}

	newSuccessResponse(c, http.StatusOK, "User profile fetched successfully", publicUser(user))
}

// GET /admin/users
func (h *Handler) GetAllUsers(c *gin.Context) {
	const op = "handler.GetAllUsers"

	log := h.log.With(slog.String("op", op))

	users, err := h.serviceLayer.ListUsers(c.Request.Context())
	if err != nil {
		log.Error("failed to get all users", slog.Any("error", err))

		newErrorResponse(c, http.StatusInternalServerError, "Server error")

		return
	}

	data := make([]any, 0, len(users))
	for _, user := range users {
		data = append(data, publicUser(user))
	}

	newSuccessResponse(c, http.StatusOK, "Users fetched successfully", data...)
}
