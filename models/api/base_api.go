package apimodels

type Response struct {
	Status  string      `json:"status"`            // fail/success
	Message string      `json:"message,omitempty"` // error message
	Error   string      `json:"error,omitempty"`   // same as message, kept for older clients
	Data    interface{} `json:"data,omitempty"`
}

type ScrollerResponse struct {
	Response
	RowCount int64 `json:"row_count"` // total rows matching the filter
}

func NewError(message string) Response {
	return Response{
		Status:  "fail",
		Message: message,
		Error:   message,
	}
}

func NewResponse(data interface{}) Response {
	return Response{
		Status: "success",
		Data:   data,
	}
}

type Pagination struct {
	Limit int `json:"limit" query:"limit"` // rows per page
	Page  int `json:"page" query:"page"`   // page number starting from 1
}

func (r Pagination) GetPage() (page, limit int) {
	page = 1
	limit = 20
	if r.Page > 0 {
		page = r.Page
	}
	if r.Limit > 0 {
		limit = r.Limit
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

func (r Pagination) Offset() int {
	page, limit := r.GetPage()
	return (page - 1) * limit
}

func NewScrollerResponse(data interface{}, rowCount int64) ScrollerResponse {
	return ScrollerResponse{
		Response: Response{
			Status: "success",
			Data:   data,
		},
		RowCount: rowCount,
	}
}
