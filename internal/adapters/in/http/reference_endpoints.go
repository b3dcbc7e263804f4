package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"clinicalorders/internal/core/domain/model/reference"
)

type orderTypeResponse struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description,omitempty"`
	ParentID       *string  `json:"parentId,omitempty"`
	ConceptClasses []string `json:"conceptClasses"`
	Retired        bool     `json:"retired"`
}

type careSettingResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	SettingType string `json:"settingType"`
	Retired     bool   `json:"retired"`
}

type orderFrequencyResponse struct {
	ID              string  `json:"id"`
	ConceptID       string  `json:"conceptId"`
	FrequencyPerDay float64 `json:"frequencyPerDay"`
	Retired         bool    `json:"retired"`
}

// GetOrderTypes handles GET /api/v1/order-types.
// ?includeRetired=true includes retired types.
func (s *Server) GetOrderTypes(ctx echo.Context) error {
	includeRetired := ctx.QueryParam("includeRetired") == "true"

	orderTypes, err := s.referenceRepo.GetOrderTypes(ctx.Request().Context(), includeRetired)
	if err != nil {
		return s.respondError(ctx, err)
	}

	response := make([]orderTypeResponse, 0, len(orderTypes))
	for _, orderType := range orderTypes {
		classes := make([]string, 0, len(orderType.ConceptClasses()))
		for _, classID := range orderType.ConceptClasses() {
			classes = append(classes, classID.String())
		}

		response = append(response, orderTypeResponse{
			ID:             orderType.ID().String(),
			Name:           orderType.Name(),
			Description:    orderType.Description(),
			ParentID:       optionalUUIDString(orderType.ParentID()),
			ConceptClasses: classes,
			Retired:        orderType.IsRetired(),
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetCareSettings handles GET /api/v1/care-settings.
func (s *Server) GetCareSettings(ctx echo.Context) error {
	includeRetired := ctx.QueryParam("includeRetired") == "true"

	settings, err := s.referenceRepo.GetCareSettings(ctx.Request().Context(), includeRetired)
	if err != nil {
		return s.respondError(ctx, err)
	}

	response := make([]careSettingResponse, 0, len(settings))
	for _, setting := range settings {
		response = append(response, careSettingResponse{
			ID:          setting.ID().String(),
			Name:        setting.Name(),
			SettingType: settingTypeString(setting.SettingType()),
			Retired:     setting.IsRetired(),
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrderFrequencies handles GET /api/v1/order-frequencies.
func (s *Server) GetOrderFrequencies(ctx echo.Context) error {
	includeRetired := ctx.QueryParam("includeRetired") == "true"

	frequencies, err := s.referenceRepo.GetOrderFrequencies(ctx.Request().Context(), includeRetired)
	if err != nil {
		return s.respondError(ctx, err)
	}

	response := make([]orderFrequencyResponse, 0, len(frequencies))
	for _, frequency := range frequencies {
		response = append(response, orderFrequencyResponse{
			ID:              frequency.ID().String(),
			ConceptID:       frequency.ConceptID().String(),
			FrequencyPerDay: frequency.FrequencyPerDay(),
			Retired:         frequency.IsRetired(),
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

func settingTypeString(settingType reference.SettingType) string {
	switch settingType {
	case reference.SettingInpatient:
		return "INPATIENT"
	case reference.SettingOutpatient:
		return "OUTPATIENT"
	default:
		return "UNKNOWN"
	}
}
