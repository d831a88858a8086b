package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rvc-001/planning-sub000/internal/usecase"
)

func errorBody(message string) gin.H {
	return gin.H{"success": false, "error": message}
}

func dataBody(data any) gin.H {
	return gin.H{"success": true, "data": data}
}

// writeError maps a use-case error onto the response the front end
// expects: validation failures carry the per-field map for inline
// display, everything else carries the message verbatim (the remote
// endpoint's own wording included) for the retry dialog.
func writeError(c *gin.Context, err error) {
	var vErr *usecase.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   vErr.Error(),
			"fields":  vErr.Fields,
		})
		return
	}
	if errors.Is(err, usecase.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, errorBody(err.Error()))
		return
	}
	c.JSON(http.StatusBadGateway, errorBody(err.Error()))
}

// --- auth ---

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("bad request body"))
		return
	}
	session, err := s.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dataBody(session))
}

func (s *Server) handleLogout(c *gin.Context) {
	token := bearerToken(c.GetHeader("Authorization"))
	if err := s.auth.Logout(c.Request.Context(), token); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dataBody(nil))
}

func (s *Server) handleMe(c *gin.Context) {
	c.JSON(http.StatusOK, dataBody(currentUser(c)))
}

// --- dashboard ---

func (s *Server) handleDashboard(c *gin.Context) {
	dash, err := s.dashboard.Load(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dataBody(dash))
}

// --- orders / job cards ---

func (s *Server) handleListOrders(c *gin.Context) {
	orders, err := s.orders.LoadOrders(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dataBody(orders))
}

func (s *Server) handleCreateOrder(c *gin.Context) {
	var sub usecase.OrderSubmit
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("bad request body"))
		return
	}
	if err := s.orders.CreateOrder(c.Request.Context(), sub); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dataBody(nil))
}

func (s *Server) handleUpdateOrder(c *gin.Context) {
	var sub usecase.OrderEditSubmit
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("bad request body"))
		return
	}
	rowIndex, err := strconv.Atoi(c.Param("rowIndex"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody("bad row index"))
		return
	}
	sub.RowIndex = rowIndex
	if err := s.orders.UpdateOrder(c.Request.Context(), sub); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dataBody(nil))
}

func (s *Server) handleJobCardsPage(c *gin.Context) {
	page, err := s.orders.LoadJobCardsPage(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dataBody(page))
}

func (s *Server) handleIssueJobCard(c *gin.Context) {
	var sub usecase.JobCardSubmit
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("bad request body"))
		return
	}
	if err := s.orders.IssueJobCard(c.Request.Context(), sub); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dataBody(nil))
}

// --- stage pages ---

func (s *Server) handleStagePage(spec usecase.StageSpec) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := s.workflow.LoadStagePage(c.Request.Context(), spec)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, dataBody(page))
	}
}

func (s *Server) handleStageSubmit(spec usecase.StageSpec) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sub usecase.StageSubmit
		if err := c.ShouldBindJSON(&sub); err != nil {
			c.JSON(http.StatusBadRequest, errorBody("bad request body"))
			return
		}
		if err := s.workflow.CompleteStage(c.Request.Context(), spec, sub); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, dataBody(nil))
	}
}

func (s *Server) handleKittingSubmit(c *gin.Context) {
	var sub usecase.KittingSubmit
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("bad request body"))
		return
	}
	if err := s.workflow.CompleteKitting(c.Request.Context(), sub); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dataBody(nil))
}

// --- settings ---

func (s *Server) handleListUsers(c *gin.Context) {
	users, err := s.auth.ListUsers(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dataBody(users))
}

func (s *Server) handleAddUser(c *gin.Context) {
	var sub usecase.UserSubmit
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("bad request body"))
		return
	}
	if err := s.auth.AddUser(c.Request.Context(), sub); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dataBody(nil))
}

func (s *Server) handleUpdateUser(c *gin.Context) {
	var sub usecase.UserSubmit
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("bad request body"))
		return
	}
	sub.ID = c.Param("id")
	if err := s.auth.UpdateUser(c.Request.Context(), sub); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dataBody(nil))
}

func (s *Server) handleDeleteUser(c *gin.Context) {
	if err := s.auth.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dataBody(nil))
}
