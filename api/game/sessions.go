package gameapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/beka-birhanu/vinom-maze/api/identity"
	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/beka-birhanu/vinom-maze/service"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// SessionController manages game sessions on behalf of HTTP clients.
type SessionController struct {
	gameSessionManager i.GameSessionManager
	tokenizer          i.Tokenizer
	tokenTTL           time.Duration
	logger             *logrus.Entry
}

// NewSessionController initializes a SessionController.
func NewSessionController(gsm i.GameSessionManager, t i.Tokenizer, tokenTTL time.Duration, logger *logrus.Entry) (*SessionController, error) {
	if gsm == nil || t == nil {
		return nil, errors.New("session controller needs a session manager and a tokenizer")
	}
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &SessionController{
		gameSessionManager: gsm,
		tokenizer:          t,
		tokenTTL:           tokenTTL,
		logger:             logger,
	}, nil
}

// RegisterPublic registers public routes.
func (sc *SessionController) RegisterPublic(route *gin.RouterGroup) {
	route.POST("/sessions", sc.create)
}

// RegisterProtected registers protected routes.
func (sc *SessionController) RegisterProtected(route *gin.RouterGroup) {
	sessions := route.Group("/sessions")
	{
		sessions.GET("/:ID", sc.snapshot)
		sessions.POST("/:ID/inputs", sc.input)
		sessions.DELETE("/:ID", sc.end)
	}
}

// create starts a session and hands out its token.
func (sc *SessionController) create(ctx *gin.Context) {
	var request NewSessionRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	difficulty, err := game.ParseDifficulty(request.Difficulty)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := sc.gameSessionManager.NewSession(ctx.Request.Context(), difficulty)
	if err != nil {
		sc.logger.WithError(err).Error("starting session")
		if errors.Is(err, service.ErrManagerClosed) {
			ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "server is shutting down"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while starting session"})
		return
	}

	token, err := sc.tokenizer.Generate(map[string]interface{}{identity.ClaimSessionID: id.String()}, sc.tokenTTL)
	if err != nil {
		sc.logger.WithError(err).Error("signing session token")
		_ = sc.gameSessionManager.EndSession(id)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while starting session"})
		return
	}

	ctx.JSON(http.StatusCreated, &NewSessionResponse{ID: id, Token: token})
}

// snapshot returns the current session state.
func (sc *SessionController) snapshot(ctx *gin.Context) {
	id, ok := sc.authorizedSession(ctx)
	if !ok {
		return
	}

	snap, err := sc.gameSessionManager.Snapshot(id)
	if err != nil {
		sc.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, snap)
}

// input queues one input event.
func (sc *SessionController) input(ctx *gin.Context) {
	id, ok := sc.authorizedSession(ctx)
	if !ok {
		return
	}

	var request InputRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	in, err := game.ParseInput(request.Input)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := sc.gameSessionManager.Submit(id, in); err != nil {
		sc.writeError(ctx, err)
		return
	}
	ctx.Status(http.StatusAccepted)
}

// end stops the session.
func (sc *SessionController) end(ctx *gin.Context) {
	id, ok := sc.authorizedSession(ctx)
	if !ok {
		return
	}

	if err := sc.gameSessionManager.EndSession(id); err != nil {
		sc.writeError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// authorizedSession parses the path id and checks it against the token's session.
func (sc *SessionController) authorizedSession(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return uuid.Nil, false
	}

	owned, ok := identity.SessionID(ctx)
	if !ok || owned != id {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "token is not valid for this session"})
		return uuid.Nil, false
	}
	return id, true
}

func (sc *SessionController) writeError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "No Session"})
	case errors.Is(err, service.ErrInputQueueFull):
		ctx.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
	default:
		sc.logger.WithError(err).Error("session request failed")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "unexpected error"})
	}
}
