package domain

import "time"

// LeadStatus — воронка обработки лида.
type LeadStatus string

const (
	LeadStatusNew         LeadStatus = "new"
	LeadStatusContacted   LeadStatus = "contacted"
	LeadStatusQualified   LeadStatus = "qualified"
	LeadStatusUnqualified LeadStatus = "unqualified"
	LeadStatusConverted   LeadStatus = "converted"
)

// LeadSource — откуда пришел лид.
type LeadSource string

const (
	LeadSourceWebsite  LeadSource = "website"
	LeadSourceWhatsApp LeadSource = "whatsapp"
	LeadSourceEmail    LeadSource = "email"
)

// Lead — заявка с контактной формы. Теги совпадают с колонками платформы.
type Lead struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	Message     string     `json:"message"`
	PropertyID  string     `json:"property_id,omitempty"` // заявка может быть не привязана к объекту
	UserID      string     `json:"user_id"`               // владелец (агент), которому принадлежит лид
	Status      LeadStatus `json:"status"`
	Source      LeadSource `json:"source"`
	Notes       string     `json:"notes,omitempty"`
	LastContact *time.Time `json:"last_contact,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ActivityEntry — запись журнала активности. Используется как
// best-effort аудит, в том числе для неудачных отправок уведомлений.
type ActivityEntry struct {
	UserID      string    `json:"user_id,omitempty"`
	LeadID      string    `json:"lead_id,omitempty"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

const ActivityNotificationFailed = "notification_failed"
