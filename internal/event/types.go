// internal/event/types.go
package event

const (
	FOVChanged        EventType = "FOVChanged"        // Обнаружен новый FOV
	DetectionStarted  EventType = "DetectionStarted"  // Началось сканирование
	DetectionFinished EventType = "DetectionFinished" // Сканирование завершено (успех или неудача)
)
