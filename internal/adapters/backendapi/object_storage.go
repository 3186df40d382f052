package backendapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Файловая поверхность платформы: /storage/v1.

// UploadObject загружает объект в бакет и возвращает публичный URL.
func (c *Client) UploadObject(ctx context.Context, bucket, path, contentType string, data []byte, upsert bool) (string, error) {
	url := c.baseURL + "/storage/v1/object/" + bucket + "/" + path

	headers := map[string]string{}
	if contentType != "" {
		headers["Content-Type"] = contentType
	}
	if upsert {
		headers["x-upsert"] = "true"
	}

	resp, err := c.doRequest(ctx, http.MethodPost, url, headers, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("upload object %s/%s: %w", bucket, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", readError(resp, "upload object "+bucket+"/"+path)
	}

	return c.baseURL + "/storage/v1/object/public/" + bucket + "/" + path, nil
}

// RemoveObjects удаляет объекты по путям одним запросом.
func (c *Client) RemoveObjects(ctx context.Context, bucket string, paths []string) error {
	if len(paths) == 0 {
		return nil
	}

	body, err := json.Marshal(map[string]interface{}{"prefixes": paths})
	if err != nil {
		return fmt.Errorf("remove objects %s: failed to marshal paths: %w", bucket, err)
	}

	url := c.baseURL + "/storage/v1/object/" + bucket
	resp, err := c.doRequest(ctx, http.MethodDelete, url, nil, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("remove objects %s: %w", bucket, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return readError(resp, "remove objects "+bucket)
	}
	return nil
}
