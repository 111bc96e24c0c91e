package dto

// CreateSerialRequest 创建连续出版物请求
type CreateSerialRequest struct {
	Title           string  `json:"title" binding:"required"`
	ISSN            *string `json:"issn"`
	AcquisitionType string  `json:"acquisition_type"`
	ShelfSection    *string `json:"shelf_section"`
	ShelfID         *string `json:"shelf_id"`
	ShelfRow        *int    `json:"shelf_row"`
	ShelfColumn     *int    `json:"shelf_column"`
	ShelfNote       *string `json:"shelf_note"`
	Remark          *string `json:"remark"`
}

// UpdateSerialRequest 更新连续出版物请求
type UpdateSerialRequest struct {
	Title           *string `json:"title"`
	ISSN            *string `json:"issn"`
	AcquisitionType *string `json:"acquisition_type"`
	ShelfSection    *string `json:"shelf_section"`
	ShelfID         *string `json:"shelf_id"`
	ShelfRow        *int    `json:"shelf_row"`
	ShelfColumn     *int    `json:"shelf_column"`
	ShelfNote       *string `json:"shelf_note"`
	Remark          *string `json:"remark"`
}

// SerialListQuery 连续出版物检索参数
type SerialListQuery struct {
	Keyword         string `form:"q"`
	ISSN            string `form:"issn"`
	ShelfSection    string `form:"shelf_section"`
	AcquisitionType string `form:"acquisition_type"`
}
