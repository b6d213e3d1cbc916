package formatting

import (
	"encoding/json"
	"net/http"
	"strconv"

	"calldeskrest/internal/models/dto"
	"calldeskrest/pkg/format"

	"github.com/gin-gonic/gin"
)

// FormattedValue pairs an input with its display form
type FormattedValue struct {
	Input     string `json:"input"`
	Formatted string `json:"formatted"`
	Valid     bool   `json:"valid"`
}

// Date renders value as MM/DD/YYYY
// @Summary      Format a date
// @Tags         format
// @Produce      json
// @Param        value  query     string  true  "ISO string, US date or epoch seconds/milliseconds"
// @Success      200    {object}  dto.SuccessResponse{data=FormattedValue}
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /format/date [get]
func Date() gin.HandlerFunc {
	return func(c *gin.Context) {
		value, ok := c.GetQuery("value")
		if !ok {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse(c, http.StatusBadRequest, "query parameter 'value' is required", "Error while formatting date", nil))
			return
		}

		var input any = value
		if _, err := strconv.ParseFloat(value, 64); err == nil {
			input = json.Number(value)
		}

		formatted := format.ToMMDDYYYY(input)
		c.JSON(http.StatusOK, dto.NewSuccessResponse(c, FormattedValue{
			Input:     value,
			Formatted: formatted,
			Valid:     formatted != "",
		}, "200 OK"))
	}
}

// Phone renders value as +1 (AAA) BBB-CCCC
// @Summary      Format a phone number
// @Tags         format
// @Produce      json
// @Param        value  query     string  true  "Phone number in any notation"
// @Success      200    {object}  dto.SuccessResponse{data=FormattedValue}
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /format/phone [get]
func Phone() gin.HandlerFunc {
	return func(c *gin.Context) {
		value, ok := c.GetQuery("value")
		if !ok {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse(c, http.StatusBadRequest, "query parameter 'value' is required", "Error while formatting phone", nil))
			return
		}

		formatted := format.Phone(value)
		c.JSON(http.StatusOK, dto.NewSuccessResponse(c, FormattedValue{
			Input:     value,
			Formatted: formatted,
			Valid:     formatted != format.NotAvailable,
		}, "200 OK"))
	}
}
