package ginserver

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	gin "github.com/gin-gonic/gin"

	"farmstay/internal/app/commands"
	"farmstay/internal/app/dto"
	availabilityapp "farmstay/internal/app/handlers/availability"
	"farmstay/internal/app/queries"
	"farmstay/internal/domain/shared/dayrange"
)

type AvailabilityHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
	Logger   *slog.Logger
}

// Calendar returns the explicitly marked days of a farm, optionally bounded
// by from/to query parameters.
func (h AvailabilityHandler) Calendar(c *gin.Context) {
	if h.Queries == nil {
		respondError(c, h.Logger, errors.New("queries bus unavailable"))
		return
	}
	from, err := parseOptionalDay(c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from must be a YYYY-MM-DD date"})
		return
	}
	to, err := parseOptionalDay(c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to must be a YYYY-MM-DD date"})
		return
	}

	query := availabilityapp.GetCalendarQuery{FarmID: c.Param("id"), From: from, To: to}
	result, err := queries.Ask[availabilityapp.GetCalendarQuery, dto.Calendar](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// CheckStay answers whether a farm can host the half-open stay
// [check_in, check_out). Both parameters are required.
func (h AvailabilityHandler) CheckStay(c *gin.Context) {
	if h.Queries == nil {
		respondError(c, h.Logger, errors.New("queries bus unavailable"))
		return
	}
	checkIn, err := dayrange.ParseDay(c.Query("check_in"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "check_in must be a YYYY-MM-DD date"})
		return
	}
	checkOut, err := dayrange.ParseDay(c.Query("check_out"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "check_out must be a YYYY-MM-DD date"})
		return
	}

	query := availabilityapp.CheckStayQuery{FarmID: c.Param("id"), CheckIn: checkIn, CheckOut: checkOut}
	result, err := queries.Ask[availabilityapp.CheckStayQuery, dto.StayCheck](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// SetDays marks a single day or an inclusive range open or closed for the
// caller's farm.
func (h AvailabilityHandler) SetDays(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	if h.Commands == nil {
		respondError(c, h.Logger, errors.New("commands bus unavailable"))
		return
	}

	var req setDaysRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Open == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "open is required"})
		return
	}

	cmd := availabilityapp.SetDaysCommand{
		FarmID: c.Param("id"),
		Caller: principal,
		Open:   *req.Open,
	}
	if len(req.Days) > 0 {
		days := make([]dayrange.Day, 0, len(req.Days))
		for _, raw := range req.Days {
			d, err := dayrange.ParseDay(strings.TrimSpace(raw))
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "days must be YYYY-MM-DD dates"})
				return
			}
			days = append(days, d)
		}
		cmd.Days = days
	} else {
		start, err := dayrange.ParseDay(req.Start)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "start must be a YYYY-MM-DD date"})
			return
		}
		end := start
		if req.End != "" {
			end, err = dayrange.ParseDay(req.End)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "end must be a YYYY-MM-DD date"})
				return
			}
		}
		cmd.Start = start
		cmd.End = end
	}

	result, err := commands.Dispatch[availabilityapp.SetDaysCommand, *availabilityapp.SetDaysResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func parseOptionalDay(raw string) (dayrange.Day, error) {
	if strings.TrimSpace(raw) == "" {
		return dayrange.Day{}, nil
	}
	return dayrange.ParseDay(raw)
}

type setDaysRequest struct {
	Start string   `json:"start"`
	End   string   `json:"end"`
	Days  []string `json:"days"`
	Open  *bool    `json:"open"`
}
