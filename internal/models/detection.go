package models

// Detection - один класс-кандидат из результата инференса детектора
type Detection struct {
	Class      string  `json:"class"`
	Confidence float64 `json:"confidence"`
}

// Submission - входящая заявка от камеры или гражданина.
// Либо Type задан явно (ручной путь), либо Detections содержит кандидатов,
// из которых политика порога выбирает класс.
type Submission struct {
	Type       string
	Detections []Detection
	Latitude   float64
	Longitude  float64
	Address    string
	Image      string
}

// BestDetection возвращает кандидата с максимальной уверенностью или nil
func (s Submission) BestDetection() *Detection {
	var best *Detection
	for i := range s.Detections {
		if best == nil || s.Detections[i].Confidence > best.Confidence {
			best = &s.Detections[i]
		}
	}
	return best
}
