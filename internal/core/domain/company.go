package domain

import "time"

// CompanyProfile — профиль компании. Одна строка на владельца-пользователя.
type CompanyProfile struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Name         string    `json:"name"`
	ContactEmail string    `json:"contact_email"`
	Phone        string    `json:"phone"`
	WhatsApp     string    `json:"whatsapp"`
	Address      string    `json:"address"`
	City         string    `json:"city"`
	Website      string    `json:"website"`
	Instagram    string    `json:"instagram"`
	Facebook     string    `json:"facebook"`
	LogoURL      string    `json:"logo_url"`
	Mission      string    `json:"mission"`
	Vision       string    `json:"vision"`
	History      string    `json:"history"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TeamMember — сотрудник для страницы "о нас".
// OrderNumber задает порядок показа; перестановка всегда парная.
type TeamMember struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Position    string    `json:"position"`
	Bio         string    `json:"bio"`
	PhotoURL    string    `json:"photo_url"`
	Email       string    `json:"email"`
	LinkedIn    string    `json:"linkedin"`
	Instagram   string    `json:"instagram"`
	OrderNumber int       `json:"order_number"`
	IsActive    bool      `json:"is_active"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Session — текущая аутентифицированная личность из платформы.
type Session struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
}
