package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"mesto-server/internal/apperr"
	"mesto-server/internal/auth"
	"mesto-server/internal/domain"
	"mesto-server/internal/service"
)

const storeCallTimeout = 10 * time.Second

// Handler wires HTTP routes to domain services.
type Handler struct {
	users  service.UserService
	cards  service.CardService
	tokens *auth.TokenManager
	logger *logrus.Logger
}

func NewHandler(users service.UserService, cards service.CardService, tokens *auth.TokenManager, logger *logrus.Logger) *Handler {
	return &Handler{
		users:  users,
		cards:  cards,
		tokens: tokens,
		logger: logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())
	router.Use(requestLogger(h.logger))
	router.Use(errorNormalizer(h.logger))
	router.Use(requestTimeout(storeCallTimeout))

	router.POST("/signup", h.signup)
	router.POST("/signin", h.signin)

	authed := router.Group("/", authGuard(h.tokens))
	{
		authed.GET("/users", h.listUsers)
		authed.GET("/users/me", h.getMe)
		authed.GET("/users/:userId", h.getUser)
		authed.PATCH("/users/me", h.patchProfile)
		authed.PATCH("/users/me/avatar", h.patchAvatar)

		authed.GET("/cards", h.listCards)
		authed.POST("/cards", h.createCard)
		authed.DELETE("/cards/:cardId", h.deleteCard)
		authed.PUT("/cards/:cardId/likes", h.likeCard)
		authed.DELETE("/cards/:cardId/likes", h.unlikeCard)
	}

	router.NoRoute(func(c *gin.Context) {
		abortWithError(c, apperr.New(apperr.NotFound, "route not found"))
	})
}

type signupRequest struct {
	Name     string `json:"name" binding:"omitempty,min=2,max=30"`
	About    string `json:"about" binding:"omitempty,min=2,max=30"`
	Avatar   string `json:"avatar" binding:"omitempty,url"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type signinRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type profileRequest struct {
	Name  string `json:"name" binding:"required,min=2,max=30"`
	About string `json:"about" binding:"required,min=2,max=30"`
}

type avatarRequest struct {
	Avatar string `json:"avatar" binding:"required,url"`
}

type createCardRequest struct {
	Name string `json:"name" binding:"required,min=2,max=30"`
	Link string `json:"link" binding:"required,url"`
}

type UserResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	About  string `json:"about"`
	Avatar string `json:"avatar"`
	Email  string `json:"email"`
}

type CardResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Link      string   `json:"link"`
	Owner     string   `json:"owner"`
	Likes     []string `json:"likes"`
	CreatedAt string   `json:"created_at"`
}

func (h *Handler) signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, apperr.Wrap(apperr.BadRequest, "invalid signup data", err))
		return
	}

	user, err := h.users.Register(c.Request.Context(), service.RegisterInput{
		Name:     req.Name,
		About:    req.About,
		Avatar:   req.Avatar,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, userToResponse(user))
}

func (h *Handler) signin(c *gin.Context) {
	var req signinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, apperr.Wrap(apperr.BadRequest, "invalid credentials payload", err))
		return
	}

	token, email, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "email": email})
}

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}

	resp := make([]UserResponse, len(users))
	for i := range users {
		resp[i] = userToResponse(&users[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getMe(c *gin.Context) {
	user, err := h.users.GetByID(c.Request.Context(), principalID(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, userToResponse(user))
}

func (h *Handler) getUser(c *gin.Context) {
	user, err := h.users.GetByID(c.Request.Context(), c.Param("userId"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, userToResponse(user))
}

func (h *Handler) patchProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, apperr.Wrap(apperr.BadRequest, "invalid profile data", err))
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), principalID(c), req.Name, req.About)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, userToResponse(user))
}

func (h *Handler) patchAvatar(c *gin.Context) {
	var req avatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, apperr.Wrap(apperr.BadRequest, "invalid avatar url", err))
		return
	}

	user, err := h.users.UpdateAvatar(c.Request.Context(), principalID(c), req.Avatar)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, userToResponse(user))
}

func (h *Handler) listCards(c *gin.Context) {
	cards, err := h.cards.List(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}

	resp := make([]CardResponse, len(cards))
	for i := range cards {
		resp[i] = cardToResponse(&cards[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) createCard(c *gin.Context) {
	var req createCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, apperr.Wrap(apperr.BadRequest, "invalid card data", err))
		return
	}

	card, err := h.cards.Create(c.Request.Context(), principalID(c), req.Name, req.Link)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cardToResponse(card))
}

func (h *Handler) deleteCard(c *gin.Context) {
	if err := h.cards.Delete(c.Request.Context(), c.Param("cardId"), principalID(c)); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "card deleted"})
}

func (h *Handler) likeCard(c *gin.Context) {
	card, err := h.cards.Like(c.Request.Context(), c.Param("cardId"), principalID(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, cardToResponse(card))
}

func (h *Handler) unlikeCard(c *gin.Context) {
	card, err := h.cards.Unlike(c.Request.Context(), c.Param("cardId"), principalID(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, cardToResponse(card))
}

func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:     user.ID,
		Name:   user.Name,
		About:  user.About,
		Avatar: user.Avatar,
		Email:  user.Email,
	}
}

func cardToResponse(card *domain.Card) CardResponse {
	likes := card.Likes
	if likes == nil {
		likes = []string{}
	}
	return CardResponse{
		ID:        card.ID,
		Name:      card.Name,
		Link:      card.Link,
		Owner:     card.OwnerID,
		Likes:     likes,
		CreatedAt: card.CreatedAt.Format(time.RFC3339),
	}
}
