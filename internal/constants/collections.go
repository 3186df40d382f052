package constants

import "time"

// Имена коллекций платформы.
const (
	CollectionProperties     = "properties"
	CollectionPropertyImages = "property_images"
	CollectionLeads          = "leads"
	CollectionCompanyProfile = "company_profiles"
	CollectionTeamMembers    = "team_members"
	CollectionActivities     = "activities"
)

// Бакет хранилища для фотографий объектов.
const PropertyImagesBucket = "property-images"

// Серверные функции платформы.
const (
	FnSendNewLeadNotification = "send-new-lead-notification"
	FnSendLeadAutoResponse    = "send-lead-autoresponse"
)

// Окна свежести кэша по типам данных.
const (
	ProfileTTL = 15 * time.Minute
	ListTTL    = 24 * time.Hour
)

// Таймаут отправки уведомлений: дольше ждать нет смысла,
// лид уже создан.
const NotificationTimeout = 5 * time.Second
