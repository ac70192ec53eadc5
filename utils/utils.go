package utils

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"

	"smart-parking/types"
)

// NowMillis returns the current time as epoch milliseconds, the timestamp
// unit every entity in this system uses.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}

// DefaultStartTime is the booking start applied when the client omits one:
// the current minute boundary, so displayed start/end times line up.
func DefaultStartTime() int64 {
	return now.New(time.Now()).BeginningOfMinute().UnixMilli()
}

// sanitizeRequestBody trims request bodies that should not land in the
// request log verbatim (file uploads, large blobs).
func sanitizeRequestBody(c *fiber.Ctx) string {
	contentType := c.Get("Content-Type")
	if strings.Contains(contentType, "multipart/form-data") {
		formData := make(map[string]interface{})
		if form, err := c.MultipartForm(); err == nil {
			for key, values := range form.Value {
				if len(values) > 0 {
					formData[key] = values[0]
				}
			}
			for key, files := range form.File {
				fileInfo := make([]map[string]interface{}, len(files))
				for i, file := range files {
					fileInfo[i] = map[string]interface{}{
						"filename": file.Filename,
						"size":     file.Size,
						"content":  "[FILE_CONTENT_REMOVED]",
					}
				}
				formData[key] = fileInfo
			}
		}
		if jsonBytes, err := json.Marshal(formData); err == nil {
			return string(jsonBytes)
		}
		return "[MULTIPART_FORM_DATA]"
	}

	body := string(c.Body())
	if len(body) > 1000 && (strings.Contains(body, "data:image/") ||
		strings.Contains(body, "base64") ||
		isLikelyBase64(body)) {
		return "[LARGE_REQUEST_BODY_WITH_POSSIBLE_FILE_CONTENT]"
	}
	return body
}

// isLikelyBase64 detects if content looks like base64
func isLikelyBase64(content string) bool {
	if len(content) < 100 {
		return false
	}

	base64Chars := 0
	for _, char := range content {
		if (char >= 'A' && char <= 'Z') ||
			(char >= 'a' && char <= 'z') ||
			(char >= '0' && char <= '9') ||
			char == '+' || char == '/' || char == '=' {
			base64Chars++
		}
	}
	return float64(base64Chars)/float64(len(content)) > 0.8
}

// CreateSanitizedLogEntry builds a log entry from the finished request,
// deep-copying everything so the entry survives fiber recycling its
// buffers after the handler returns.
func CreateSanitizedLogEntry(c *fiber.Ctx) types.LogEntry {
	method := string([]byte(c.Method()))
	url := string([]byte(c.OriginalURL()))
	requestBody := sanitizeRequestBody(c)
	responseBody := string(append([]byte(nil), c.Response().Body()...))

	requestHeaders := make([]byte, len(c.Request().Header.Header()))
	copy(requestHeaders, c.Request().Header.Header())

	responseHeaders := make([]byte, len(c.Response().Header.Header()))
	copy(responseHeaders, c.Response().Header.Header())

	return types.LogEntry{
		Method:          method,
		URL:             url,
		RequestBody:     requestBody,
		ResponseBody:    responseBody,
		RequestHeaders:  string(requestHeaders),
		ResponseHeaders: string(responseHeaders),
		StatusCode:      c.Response().StatusCode(),
		CreatedAt:       time.Now(),
	}
}
