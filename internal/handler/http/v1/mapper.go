package v1

import "github.com/shenikar/civic_resolve/internal/models"

// DTOToSubmission преобразует DTO заявки в доменную модель
func DTOToSubmission(dto CreateIncidentRequest) models.Submission {
	sub := models.Submission{
		Type:      dto.Type,
		Latitude:  dto.Latitude,
		Longitude: dto.Longitude,
		Address:   dto.Address,
		Image:     dto.Image,
	}
	for _, d := range dto.Detections {
		sub.Detections = append(sub.Detections, models.Detection{
			Class:      d.Class,
			Confidence: d.Confidence,
		})
	}
	return sub
}

// ModelToIncidentResponse преобразует доменную модель в DTO для ответа
func ModelToIncidentResponse(model *models.Incident) *IncidentResponse {
	resp := &IncidentResponse{
		ID:               model.ID,
		Type:             model.Type,
		Latitude:         model.Latitude,
		Longitude:        model.Longitude,
		Address:          model.Address,
		Status:           string(model.Status),
		OriginalImage:    model.OriginalImage,
		CreatedAt:        model.CreatedAt,
		LastTransitionAt: model.LastTransitionAt,
	}
	if model.AssignedWorker != nil {
		resp.AssignedWorker = *model.AssignedWorker
	}
	if model.ResolvedImage != nil {
		resp.ResolvedImage = *model.ResolvedImage
	}
	if model.VerificationNotes != nil {
		resp.VerificationNotes = *model.VerificationNotes
	}
	return resp
}

// ModelsToIncidentResponses преобразует слайс моделей в слайс DTO
func ModelsToIncidentResponses(models []*models.Incident) []*IncidentResponse {
	responses := make([]*IncidentResponse, len(models))
	for i, model := range models {
		responses[i] = ModelToIncidentResponse(model)
	}
	return responses
}

// ModelToStatsResponse преобразует агрегаты в DTO для ответа
func ModelToStatsResponse(stats *models.IncidentStats) *StatsResponse {
	return &StatsResponse{
		Total:          stats.Total,
		ByStatus:       stats.ByStatus,
		ByType:         stats.ByType,
		ResolutionRate: stats.ResolutionRate,
	}
}
