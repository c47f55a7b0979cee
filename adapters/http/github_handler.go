package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/devconnect/adapters/github"
)

// GithubHandler relays a user's latest GitHub repositories. Pure
// passthrough, no domain logic.
type GithubHandler struct {
	client *github.Client
}

func NewGithubHandler(client *github.Client) *GithubHandler {
	return &GithubHandler{client: client}
}

func (h *GithubHandler) GetRepos(c *gin.Context) {
	body, err := h.client.ListRepos(c.Request.Context(), c.Param("username"))
	if err != nil {
		c.Error(err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}
