package api

import (
	"fmt"

	"lsmc/internal/domain"
	"lsmc/internal/service"

	"github.com/gin-gonic/gin"
)

type simulateRequest struct {
	Spot       float64  `json:"spot"`
	Rate       *float64 `json:"rate"`
	Volatility float64  `json:"volatility"`
	Tenor      float64  `json:"tenor"`
	Steps      int      `json:"steps"`
	NumPaths   int      `json:"numPaths"`
	Seed       *uint64  `json:"seed"`
}

type simulateResponse struct {
	NumPaths int           `json:"numPaths"`
	NumSteps int           `json:"numSteps"`
	Paths    domain.Matrix `json:"paths"`
}

func (h ApiHandler) simulate(c *gin.Context) {
	var requestBody simulateRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to read request body: %w", err), c, 400)
		return
	}

	paths, err := h.PricingService.Simulate(c.Request.Context(), service.SimulateInput{
		Spot:       requestBody.Spot,
		Rate:       requestBody.Rate,
		Volatility: requestBody.Volatility,
		Tenor:      requestBody.Tenor,
		Steps:      requestBody.Steps,
		Paths:      requestBody.NumPaths,
		Seed:       requestBody.Seed,
	})
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, simulateResponse{
		NumPaths: paths.Rows(),
		NumSteps: paths.Cols() - 1,
		Paths:    paths,
	})
}
