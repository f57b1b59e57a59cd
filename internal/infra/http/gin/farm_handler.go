package ginserver

import (
	"errors"
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"farmstay/internal/app/commands"
	"farmstay/internal/app/dto"
	farmapp "farmstay/internal/app/handlers/farms"
	"farmstay/internal/app/queries"
)

type FarmHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
	Logger   *slog.Logger
}

// Catalog lists every farm without requiring a caller.
func (h FarmHandler) Catalog(c *gin.Context) {
	if h.Queries == nil {
		respondError(c, h.Logger, errors.New("queries bus unavailable"))
		return
	}
	result, err := queries.Ask[farmapp.ListFarmsQuery, []dto.Farm](c.Request.Context(), h.Queries, farmapp.ListFarmsQuery{})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h FarmHandler) Get(c *gin.Context) {
	if h.Queries == nil {
		respondError(c, h.Logger, errors.New("queries bus unavailable"))
		return
	}
	query := farmapp.GetFarmQuery{FarmID: c.Param("id")}
	result, err := queries.Ask[farmapp.GetFarmQuery, dto.Farm](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// HostList lists the caller's farms; admins see every farm.
func (h FarmHandler) HostList(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	if h.Queries == nil {
		respondError(c, h.Logger, errors.New("queries bus unavailable"))
		return
	}
	result, err := queries.Ask[farmapp.ListFarmsQuery, []dto.Farm](c.Request.Context(), h.Queries, farmapp.ListFarmsQuery{Caller: principal})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h FarmHandler) Create(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	if h.Commands == nil {
		respondError(c, h.Logger, errors.New("commands bus unavailable"))
		return
	}

	var req farmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cmd := farmapp.CreateFarmCommand{
		FarmID:           uuid.NewString(),
		Caller:           principal,
		OwnerID:          req.OwnerID,
		Name:             req.Name,
		Location:         req.Location,
		Description:      req.Description,
		GuestsLimit:      req.GuestsLimit,
		Bedrooms:         req.Bedrooms,
		NightlyRateCents: req.NightlyRateCents,
		ContactEmail:     req.ContactEmail,
	}
	result, err := commands.Dispatch[farmapp.CreateFarmCommand, *dto.Farm](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.Header("Location", "/api/v1/farms/"+result.ID)
	c.JSON(http.StatusCreated, result)
}

func (h FarmHandler) Update(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	if h.Commands == nil {
		respondError(c, h.Logger, errors.New("commands bus unavailable"))
		return
	}

	var req farmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cmd := farmapp.UpdateFarmCommand{
		FarmID:           c.Param("id"),
		Caller:           principal,
		Name:             req.Name,
		Location:         req.Location,
		Description:      req.Description,
		GuestsLimit:      req.GuestsLimit,
		Bedrooms:         req.Bedrooms,
		NightlyRateCents: req.NightlyRateCents,
		ContactEmail:     req.ContactEmail,
	}
	result, err := commands.Dispatch[farmapp.UpdateFarmCommand, *dto.Farm](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type farmRequest struct {
	OwnerID          string `json:"owner_id"`
	Name             string `json:"name"`
	Location         string `json:"location"`
	Description      string `json:"description"`
	GuestsLimit      int    `json:"guests_limit"`
	Bedrooms         int    `json:"bedrooms"`
	NightlyRateCents int64  `json:"nightly_rate_cents"`
	ContactEmail     string `json:"contact_email"`
}
