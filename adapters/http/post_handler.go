package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	postUC "github.com/khanhvu/devconnect/internal/application/usecase/post"
	"github.com/khanhvu/devconnect/pkg/apperror"
	"github.com/khanhvu/devconnect/pkg/logger"
)

type PostHandler struct {
	postUseCase *postUC.PostUseCase
	logger      logger.Logger
}

func NewPostHandler(uc *postUC.PostUseCase, log logger.Logger) *PostHandler {
	return &PostHandler{
		postUseCase: uc,
		logger:      log,
	}
}

func (h *PostHandler) parsePostID(c *gin.Context) (uuid.UUID, bool) {
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewNotFound("post", c.Param("id")))
		return uuid.Nil, false
	}
	return postID, true
}

func (h *PostHandler) ListPosts(c *gin.Context) {
	posts, err := h.postUseCase.ListAll(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToPostDTOs(posts))
}

func (h *PostHandler) GetPost(c *gin.Context) {
	postID, ok := h.parsePostID(c)
	if !ok {
		return
	}

	p, err := h.postUseCase.GetByID(c.Request.Context(), postID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToPostDTO(p))
}

func (h *PostHandler) CreatePost(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for post", err))
		return
	}

	p, err := h.postUseCase.Create(c.Request.Context(), userID, req.ToDomainInput())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToPostDTO(p))
}

func (h *PostHandler) DeletePost(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	postID, ok := h.parsePostID(c)
	if !ok {
		return
	}

	p, err := h.postUseCase.Delete(c.Request.Context(), postID, userID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToPostDTO(p))
}

func (h *PostHandler) LikePost(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	postID, ok := h.parsePostID(c)
	if !ok {
		return
	}

	p, err := h.postUseCase.Like(c.Request.Context(), postID, userID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToPostDTO(p))
}

func (h *PostHandler) UnlikePost(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	postID, ok := h.parsePostID(c)
	if !ok {
		return
	}

	p, err := h.postUseCase.Unlike(c.Request.Context(), postID, userID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToPostDTO(p))
}

func (h *PostHandler) AddComment(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	postID, ok := h.parsePostID(c)
	if !ok {
		return
	}

	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for comment", err))
		return
	}

	p, err := h.postUseCase.AddComment(c.Request.Context(), postID, userID, req.ToDomainInput())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, ToPostDTO(p))
}

func (h *PostHandler) DeleteComment(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	postID, ok := h.parsePostID(c)
	if !ok {
		return
	}

	p, err := h.postUseCase.RemoveComment(c.Request.Context(), postID, userID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToPostDTO(p))
}
