package mazeapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/beka-birhanu/amazeing/api/identity"
	dmn "github.com/beka-birhanu/amazeing/domain"
	"github.com/beka-birhanu/amazeing/maze"
	"github.com/beka-birhanu/amazeing/service"
	"github.com/beka-birhanu/amazeing/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	formatJSON = "json"
	formatHex  = "hex"

	headerSeed = "X-Maze-Seed"
)

// MazeController serves generated and archived mazes.
type MazeController struct {
	mazeService i.MazeService
	encoder     i.Encoder
	logger      i.Logger
}

// NewMazeController initializes a MazeController.
func NewMazeController(ms i.MazeService, enc i.Encoder, logger i.Logger) (*MazeController, error) {
	if ms == nil || enc == nil || logger == nil {
		return nil, errors.New("maze controller needs a service, an encoder and a logger")
	}
	return &MazeController{
		mazeService: ms,
		encoder:     enc,
		logger:      logger,
	}, nil
}

// RegisterPublic registers public routes.
func (mc *MazeController) RegisterPublic(route *gin.RouterGroup) {
	route.GET("/mazes", mc.generate)
}

// RegisterProtected registers protected routes.
func (mc *MazeController) RegisterProtected(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.POST("", mc.archive)
		mazes.GET("/:ID", mc.fetch)
	}
	route.GET("/me/mazes", mc.list)
}

// generate handles GET /mazes?width=&height=[&entry=&exit=&seed=&perfect=&algorithm=&probability=&format=].
func (mc *MazeController) generate(ctx *gin.Context) {
	var request MazeRequest
	if err := ctx.ShouldBindQuery(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	format := ctx.DefaultQuery("format", formatJSON)
	if format != formatJSON && format != formatHex {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown format %q", format)})
		return
	}

	m, ok := mc.generateFrom(ctx, &request)
	if !ok {
		return
	}

	ctx.Header(headerSeed, strconv.FormatInt(m.Seed, 10))
	if format == formatHex {
		data, err := mc.encoder.Marshal(m.Record)
		if err != nil {
			mc.logger.Error(fmt.Sprintf("Encoding maze %s: %v", m.ID, err))
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while encoding maze"})
			return
		}
		ctx.Data(http.StatusOK, "text/plain; charset=utf-8", data)
		return
	}

	ctx.JSON(http.StatusOK, toResponse(m))
}

// archive generates the maze described by the JSON body and stores it under the caller.
func (mc *MazeController) archive(ctx *gin.Context) {
	owner, ok := identity.Username(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var request MazeRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, ok := mc.generateFrom(ctx, &request)
	if !ok {
		return
	}

	id, err := mc.mazeService.Archive(ctx, m, owner)
	if err != nil {
		mc.respondError(ctx, err)
		return
	}

	ctx.Header(headerSeed, strconv.FormatInt(m.Seed, 10))
	ctx.JSON(http.StatusCreated, &ArchiveResponse{ID: id.String()})
}

// fetch retrieves an archived maze.
func (mc *MazeController) fetch(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid maze id"})
		return
	}

	m, err := mc.mazeService.Fetch(ctx, id)
	if err != nil {
		mc.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toResponse(m))
}

// list returns the caller's archived mazes.
func (mc *MazeController) list(ctx *gin.Context) {
	owner, ok := identity.Username(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	mazes, err := mc.mazeService.List(ctx, owner)
	if err != nil {
		mc.respondError(ctx, err)
		return
	}

	response := make([]*MazeResponse, 0, len(mazes))
	for idx := range mazes {
		response = append(response, toResponse(&mazes[idx]))
	}
	ctx.JSON(http.StatusOK, response)
}

func (mc *MazeController) generateFrom(ctx *gin.Context, request *MazeRequest) (*dmn.Maze, bool) {
	cfg, err := request.Config()
	if err != nil {
		mc.respondError(ctx, err)
		return nil, false
	}

	m, err := mc.mazeService.Generate(ctx, cfg)
	if err != nil {
		mc.respondError(ctx, err)
		return nil, false
	}
	return m, true
}

// respondError maps service errors to status codes.
func (mc *MazeController) respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, maze.ErrConfiguration), errors.Is(err, service.ErrDimensionTooLarge):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, dmn.ErrMazeNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrArchiveDisabled):
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		mc.logger.Error(fmt.Sprintf("Serving %s %s: %v", ctx.Request.Method, ctx.Request.URL.Path, err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
