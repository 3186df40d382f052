package domain

import "github.com/google/uuid"

// ImageState — тег варианта изображения: запись либо уже сохранена
// в платформе, либо существует только на клиенте до загрузки.
type ImageState string

const (
	ImagePersisted ImageState = "persisted"
	ImagePending   ImageState = "pending"
)

// PropertyImage — изображение объекта. Вместо одного перегруженного
// id-поля используем явный тег: ID заполнен только у persisted,
// TempID — только у pending.
type PropertyImage struct {
	State      ImageState `json:"state,omitempty"`
	ID         string     `json:"id,omitempty"`
	TempID     string     `json:"temp_id,omitempty"`
	PropertyID string     `json:"property_id,omitempty"`
	URL        string     `json:"url"`
	// Путь внутри бакета. Нужен, чтобы удалить сам файл вместе с записью.
	StoragePath string `json:"storage_path,omitempty"`
	IsPrimary   bool   `json:"is_primary"`
}

// NewPendingImage создает еще не сохраненное изображение с временным id.
func NewPendingImage(url string, isPrimary bool) PropertyImage {
	return PropertyImage{
		State:     ImagePending,
		TempID:    uuid.New().String(),
		URL:       url,
		IsPrimary: isPrimary,
	}
}

// Persisted сообщает, сохранена ли запись в платформе.
func (i PropertyImage) Persisted() bool {
	return i.State == ImagePersisted
}
