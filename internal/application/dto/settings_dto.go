package dto

// SettingsDTO configuración general (GET/PUT /api/settings).
type SettingsDTO struct {
	ClosingDay int `json:"closing_day"`
}
