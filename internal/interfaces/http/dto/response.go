package dto

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/mihrabhq/backend/internal/domain/shared"
)

// Response represents a standard API response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

// ErrorInfo represents error details
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Meta represents pagination metadata
type Meta struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data interface{}) Response {
	return Response{
		Success: true,
		Data:    data,
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(code, message string) Response {
	return Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
		},
	}
}

// Page is the paginated list envelope. A page past the last one is not an
// error: it carries an empty result list with null next/previous links.
type Page struct {
	Count    int64       `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}

// NewPage builds the page envelope with absolute next/previous links derived
// from the request URL.
func NewPage[T any](requestURL *url.URL, result *shared.Paginated[T]) Page {
	page := Page{
		Count:   result.Total,
		Results: result.Items,
	}

	lastPage := int((result.Total + int64(result.PageSize) - 1) / int64(result.PageSize))
	if result.Page < lastPage {
		page.Next = pageLink(requestURL, result.Page+1)
	}
	if result.Page > 1 && result.Page <= lastPage {
		page.Previous = pageLink(requestURL, result.Page-1)
	}
	return page
}

func pageLink(requestURL *url.URL, page int) *string {
	u := *requestURL
	q := u.Query()
	if page <= 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(page))
	}
	u.RawQuery = q.Encode()
	link := u.String()
	return &link
}

// FormatValidationError turns a binding error into a stable message.
func FormatValidationError(err error) string {
	return fmt.Sprintf("Invalid request: %s", err.Error())
}
