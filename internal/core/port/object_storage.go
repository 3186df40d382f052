package port

import "context"

// ObjectStoragePort — бинарное хранилище платформы.
type ObjectStoragePort interface {
	// UploadObject загружает объект и возвращает его публичный URL.
	UploadObject(ctx context.Context, bucket, path, contentType string, data []byte, upsert bool) (string, error)

	// RemoveObjects удаляет объекты по путям. Отсутствующие пути не ошибка.
	RemoveObjects(ctx context.Context, bucket string, paths []string) error
}
