package api

import (
	"fmt"

	"lsmc/internal/calculator"
	"lsmc/internal/domain"
	"lsmc/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type simulationRequest struct {
	Spot       float64 `json:"spot"`
	Volatility float64 `json:"volatility"`
	Steps      int     `json:"steps"`
	NumPaths   int     `json:"numPaths"`
	Seed       *uint64 `json:"seed"`
}

// priceOptionRequest prices either the supplied paths or, when paths is
// empty, paths simulated from the simulation block
type priceOptionRequest struct {
	Paths      domain.Matrix      `json:"paths"`
	Simulation *simulationRequest `json:"simulation"`

	OptionType string   `json:"optionType"`
	Strike     float64  `json:"strike"`
	Tenor      float64  `json:"tenor"`
	Rate       *float64 `json:"rate"`

	Degree          *int     `json:"degree"`
	DtConvention    string   `json:"dtConvention"`
	SparseFitPolicy string   `json:"sparseFitPolicy"`
	PFEQuantile     *float64 `json:"pfeQuantile"`

	// european reference for supplied paths
	Spot       *float64 `json:"spot"`
	Volatility *float64 `json:"volatility"`

	IncludeMatrices bool `json:"includeMatrices"`
}

type priceOptionResponse struct {
	RunID                string           `json:"runID"`
	OptionType           string           `json:"optionType"`
	Strike               float64          `json:"strike"`
	Tenor                float64          `json:"tenor"`
	Rate                 float64          `json:"rate"`
	Degree               int              `json:"degree"`
	Price                decimal.Decimal  `json:"price"`
	EuropeanPrice        *decimal.Decimal `json:"europeanPrice,omitempty"`
	EarlyExercisePremium *decimal.Decimal `json:"earlyExercisePremium,omitempty"`

	Dt            float64 `json:"dt"`
	NumPaths      int     `json:"numPaths"`
	NumSteps      int     `json:"numSteps"`
	NumExercised  int     `json:"numExercised"`
	FallbackSteps []int   `json:"fallbackSteps"`

	Exposure *calculator.ExposureProfile `json:"exposure"`

	Cashflows        domain.Matrix `json:"cashflows,omitempty"`
	PositiveExposure domain.Matrix `json:"positiveExposure,omitempty"`
	NegativeExposure domain.Matrix `json:"negativeExposure,omitempty"`
	ExerciseStep     []int         `json:"exerciseStep,omitempty"`

	Profile *domain.Profile `json:"profile,omitempty"`
}

func (h ApiHandler) priceOption(c *gin.Context) {
	var requestBody priceOptionRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to read request body: %w", err), c, 400)
		return
	}

	optionType, err := domain.ParseOptionType(requestBody.OptionType)
	if err != nil {
		returnErrorJson(err, c)
		return
	}
	contract := domain.OptionContract{
		Type:   optionType,
		Strike: requestBody.Strike,
		Tenor:  requestBody.Tenor,
	}

	ctx := c.Request.Context()
	var result *service.PriceOptionResult
	if len(requestBody.Paths) == 0 && requestBody.Simulation != nil {
		sim := requestBody.Simulation
		result, err = h.PricingService.SimulateAndPrice(ctx, service.SimulateAndPriceInput{
			Spot:            sim.Spot,
			Volatility:      sim.Volatility,
			Steps:           sim.Steps,
			NumPaths:        sim.NumPaths,
			Seed:            sim.Seed,
			Contract:        contract,
			Rate:            requestBody.Rate,
			Degree:          requestBody.Degree,
			DtConvention:    requestBody.DtConvention,
			SparseFitPolicy: requestBody.SparseFitPolicy,
			PFEQuantile:     requestBody.PFEQuantile,
		})
	} else {
		result, err = h.PricingService.PriceOption(ctx, service.PriceOptionInput{
			Paths:           requestBody.Paths,
			Contract:        contract,
			Rate:            requestBody.Rate,
			Degree:          requestBody.Degree,
			DtConvention:    requestBody.DtConvention,
			SparseFitPolicy: requestBody.SparseFitPolicy,
			PFEQuantile:     requestBody.PFEQuantile,
			Spot:            requestBody.Spot,
			Volatility:      requestBody.Volatility,
		})
	}
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	out := priceOptionResponse{
		RunID:                result.RunID.String(),
		OptionType:           string(result.Contract.Type),
		Strike:               result.Contract.Strike,
		Tenor:                result.Contract.Tenor,
		Rate:                 result.Rate,
		Degree:               result.Degree,
		Price:                result.Price,
		EuropeanPrice:        result.EuropeanPrice,
		EarlyExercisePremium: result.EarlyExercisePremium,
		Dt:                   result.Pricing.Dt,
		NumPaths:             result.NumPaths,
		NumSteps:             result.NumSteps,
		NumExercised:         result.Pricing.NumExercised(),
		FallbackSteps:        result.Pricing.FallbackSteps,
		Exposure:             result.Exposure,
		Profile:              result.Profile,
	}
	if out.FallbackSteps == nil {
		out.FallbackSteps = []int{}
	}
	if requestBody.IncludeMatrices {
		out.Cashflows = result.Pricing.Cashflows
		out.PositiveExposure = result.Pricing.PositiveExposure
		out.NegativeExposure = result.Pricing.NegativeExposure
		out.ExerciseStep = result.Pricing.ExerciseStep
	}

	c.JSON(200, out)
}
