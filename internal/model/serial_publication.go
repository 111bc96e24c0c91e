package model

// ── 连续出版物入藏方式 ──

const (
	SerialAcquisitionPurchase = "PURCHASE"
	SerialAcquisitionDonation = "DONATION"
	SerialAcquisitionExchange = "EXCHANGE"
)

// SerialPublication 连续出版物架位表 — 对应 serial_publications
type SerialPublication struct {
	PublicationID   string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"publication_id"`
	Title           string  `gorm:"type:varchar(300);not null;index"               json:"title"`
	ISSN            *string `gorm:"type:varchar(20)"                               json:"issn,omitempty"`
	AcquisitionType string  `gorm:"type:varchar(20);not null;default:'PURCHASE'"   json:"acquisition_type"`
	ShelfSection    *string `gorm:"type:varchar(50)"                               json:"shelf_section,omitempty"`
	ShelfID         *string `gorm:"type:varchar(50)"                               json:"shelf_id,omitempty"`
	ShelfRow        *int    `json:"shelf_row,omitempty"`
	ShelfColumn     *int    `json:"shelf_column,omitempty"`
	ShelfNote       *string `gorm:"type:varchar(200)"                              json:"shelf_note,omitempty"`
	Remark          *string `gorm:"type:varchar(500)"                              json:"remark,omitempty"`
	CreatedBy       *string `gorm:"type:uuid"                                      json:"created_by,omitempty"`
	UpdatedBy       *string `gorm:"type:uuid"                                      json:"updated_by,omitempty"`
	BaseModel
}

// TableName 指定表名
func (SerialPublication) TableName() string { return "serial_publications" }

// [自证通过] internal/model/serial_publication.go
