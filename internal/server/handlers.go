// file: internal/server/handlers.go
// version: 1.0.0
// guid: 8d2f4a61-5c3e-4b7a-9e10-6f2b8c4d1a93

package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jdfalk/cover-preview/internal/catalog"
	"github.com/jdfalk/cover-preview/internal/preview"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100
)

// catalogFriend keeps the catalog index next to a friend so that an
// alphabetical listing still addresses the right selection.
type catalogFriend struct {
	Index int `json:"friendIndex"`
	catalog.Friend
}

func (s *Server) listCatalog(c *gin.Context) {
	cat := s.sessions.Catalog()

	order := make([]int, len(cat.Friends))
	for i := range order {
		order[i] = i
	}
	switch sort := c.DefaultQuery("sort", "catalog"); sort {
	case "catalog":
	case "alpha":
		order = cat.AlphabeticalOrder()
	default:
		RespondWithValidationError(c, "sort", fmt.Sprintf("unknown order %q", sort))
		return
	}

	friends := make([]catalogFriend, 0, len(order))
	for _, i := range order {
		friends = append(friends, catalogFriend{Index: i, Friend: cat.Friends[i]})
	}
	c.JSON(http.StatusOK, gin.H{
		"friends":  friends,
		"count":    len(friends),
		"editions": cat.EditionCount(),
	})
}

func (s *Server) searchCatalog(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		RespondWithValidationError(c, "q", "query is required")
		return
	}
	limit := ParseQueryInt(c, "limit", defaultSearchLimit)
	if limit < 1 || limit > maxSearchLimit {
		limit = defaultSearchLimit
	}

	cat, gen := s.sessions.CatalogGeneration()
	matches := s.searches.GetOrSet(searchKey(gen, limit, q), func() []catalog.Match {
		return cat.Search(q, limit)
	})
	RespondWithList(c, matches, len(matches), limit, 0)
}

// searchKey ties cached matches to the catalog generation they were
// computed from; a search racing a reload cannot fill the new generation.
func searchKey(gen uint64, limit int, q string) string {
	return fmt.Sprintf("%d:%d:%s", gen, limit, strings.ToLower(q))
}

// coverProps derives props for a fresh state built from the query alone.
// Screenshot jobs use it without opening a session.
func (s *Server) coverProps(c *gin.Context) {
	vp := preview.Viewport{
		Width:  ParseQueryInt(c, "width", s.viewport.Width),
		Height: ParseQueryInt(c, "height", s.viewport.Height),
	}
	if vp.Width <= 0 || vp.Height <= 0 {
		RespondWithValidationError(c, "viewport", "width and height must be positive")
		return
	}

	cat := s.sessions.Catalog()
	state, err := preview.ApplyQuery(cat, preview.Default(), c.Request.URL.Query())
	if err != nil {
		RespondWithDomainError(c, err)
		return
	}
	props, ok := preview.Derive(cat, state, vp)
	if !ok {
		RespondWithNotFound(c, "cover", c.Query(preview.ParamPath))
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": state, "props": props})
}

func (s *Server) openSession(c *gin.Context) {
	op := NewOperationLogger("openSession", c)
	view, err := s.sessions.Open(sessionIDFrom(c), c.Request.URL.Query())
	if err != nil {
		op.LogError(err)
		RespondWithDomainError(c, err)
		return
	}
	op.SetResourceID(view.ID)
	c.Header("X-Session-ID", view.ID)
	c.JSON(http.StatusCreated, view)
	op.LogSuccess(http.StatusCreated)
}

func (s *Server) getSession(c *gin.Context) {
	view, err := s.sessions.Get(c.Param("id"))
	if err != nil {
		RespondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (s *Server) pressKey(c *gin.Context) {
	var req struct {
		Key string `json:"key" binding:"required"`
	}
	if HandleBindError(c, c.ShouldBindJSON(&req)) {
		return
	}
	view, err := s.sessions.Press(c.Param("id"), req.Key)
	if err != nil {
		RespondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (s *Server) dispatchAction(c *gin.Context) {
	var action preview.Action
	if HandleBindError(c, c.ShouldBindJSON(&action)) {
		return
	}
	op := NewOperationLogger("dispatchAction", c)
	op.SetResourceID(c.Param("id"))
	op.AddDetail("type", string(action.Type))

	view, err := s.sessions.Dispatch(c.Param("id"), action)
	if err != nil {
		op.LogError(err)
		RespondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
	op.LogSuccess(http.StatusOK)
}

func (s *Server) setOverride(c *gin.Context) {
	var req struct {
		Text *string `json:"text" binding:"required"`
	}
	if HandleBindError(c, c.ShouldBindJSON(&req)) {
		return
	}
	view, err := s.sessions.SetOverride(c.Param("id"), c.Param("field"), *req.Text)
	if err != nil {
		RespondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (s *Server) resize(c *gin.Context) {
	var vp preview.Viewport
	if HandleBindError(c, c.ShouldBindJSON(&vp)) {
		return
	}
	view, err := s.sessions.Resize(c.Param("id"), vp)
	if err != nil {
		RespondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (s *Server) unloadSession(c *gin.Context) {
	op := NewOperationLogger("unloadSession", c)
	op.SetResourceID(c.Param("id"))
	if err := s.sessions.Unload(c.Param("id")); err != nil {
		op.LogError(err)
		RespondWithDomainError(c, err)
		return
	}
	RespondWithNoContent(c)
	op.LogSuccess(http.StatusNoContent)
}
