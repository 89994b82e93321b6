package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/davixiao/MeetTheDev/internal/api/metrics"
	"github.com/davixiao/MeetTheDev/internal/core/ports"
)

type PostHandler struct {
	posts ports.PostService
}

func NewPostHandler(posts ports.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

// Create publishes a post as the caller.
//
// @Summary      Create post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        body  body      ports.TextInput  true  "Post text"
// @Success      200   {object}  domain.Post
// @Failure      400   {object}  fieldErrorsDoc
// @Failure      401   {object}  msgResponse
// @Router       /posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var in ports.TextInput
	if err := bind(c, &in); err != nil {
		return err
	}

	post, err := h.posts.Create(c.Request().Context(), userID, in)
	if err != nil {
		return err
	}
	metrics.PostActionsTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusOK, post)
}

// List returns all posts, newest first.
//
// @Summary      All posts
// @Tags         posts
// @Produce      json
// @Security     TokenAuth
// @Success      200  {array}   domain.Post
// @Failure      401  {object}  msgResponse
// @Router       /posts [get]
func (h *PostHandler) List(c echo.Context) error {
	posts, err := h.posts.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

// Get returns one post.
//
// @Summary      Post by id
// @Tags         posts
// @Produce      json
// @Security     TokenAuth
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  domain.Post
// @Failure      404  {object}  msgResponse
// @Router       /posts/{id} [get]
func (h *PostHandler) Get(c echo.Context) error {
	post, err := h.posts.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// Delete removes the caller's post.
//
// @Summary      Delete post
// @Tags         posts
// @Produce      json
// @Security     TokenAuth
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  msgResponse
// @Failure      403  {object}  msgResponse
// @Failure      404  {object}  msgResponse
// @Router       /posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.posts.Delete(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	metrics.PostActionsTotal.WithLabelValues("delete").Inc()
	return c.JSON(http.StatusOK, msgResponse{Msg: "Post removed"})
}

// Like adds the caller's like.
//
// @Summary      Like post
// @Tags         posts
// @Produce      json
// @Security     TokenAuth
// @Param        id   path      string  true  "Post id"
// @Success      200  {array}   domain.Like
// @Failure      400  {object}  msgResponse
// @Failure      404  {object}  msgResponse
// @Router       /posts/like/{id} [put]
func (h *PostHandler) Like(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	likes, err := h.posts.Like(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}
	metrics.PostActionsTotal.WithLabelValues("like").Inc()
	return c.JSON(http.StatusOK, likes)
}

// Unlike removes the caller's like.
//
// @Summary      Unlike post
// @Tags         posts
// @Produce      json
// @Security     TokenAuth
// @Param        id   path      string  true  "Post id"
// @Success      200  {array}   domain.Like
// @Failure      400  {object}  msgResponse
// @Failure      404  {object}  msgResponse
// @Router       /posts/unlike/{id} [put]
func (h *PostHandler) Unlike(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	likes, err := h.posts.Unlike(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}
	metrics.PostActionsTotal.WithLabelValues("unlike").Inc()
	return c.JSON(http.StatusOK, likes)
}

// Comment adds a comment as the caller.
//
// @Summary      Comment on post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        id    path      string           true  "Post id"
// @Param        body  body      ports.TextInput  true  "Comment text"
// @Success      200   {array}   domain.Comment
// @Failure      400   {object}  fieldErrorsDoc
// @Failure      404   {object}  msgResponse
// @Router       /posts/comment/{id} [post]
func (h *PostHandler) Comment(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var in ports.TextInput
	if err := bind(c, &in); err != nil {
		return err
	}

	comments, err := h.posts.Comment(c.Request().Context(), userID, c.Param("id"), in)
	if err != nil {
		return err
	}
	metrics.PostActionsTotal.WithLabelValues("comment").Inc()
	return c.JSON(http.StatusOK, comments)
}

// Uncomment removes the caller's comment.
//
// @Summary      Delete comment
// @Tags         posts
// @Produce      json
// @Security     TokenAuth
// @Param        id          path      string  true  "Post id"
// @Param        comment_id  path      string  true  "Comment id"
// @Success      200         {array}   domain.Comment
// @Failure      403         {object}  msgResponse
// @Failure      404         {object}  msgResponse
// @Router       /posts/comment/{id}/{comment_id} [delete]
func (h *PostHandler) Uncomment(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	comments, err := h.posts.Uncomment(c.Request().Context(), userID, c.Param("id"), c.Param("comment_id"))
	if err != nil {
		return err
	}
	metrics.PostActionsTotal.WithLabelValues("uncomment").Inc()
	return c.JSON(http.StatusOK, comments)
}
