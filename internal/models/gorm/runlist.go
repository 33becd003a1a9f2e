package gorm

import "time"

// Runlist represents one ingested auction runlist file
type Runlist struct {
	ID              string     `gorm:"column:id;primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Name            string     `gorm:"column:name;type:text;not null" json:"name"`
	AuctionName     string     `gorm:"column:auction_name;type:text;not null;index" json:"auction_name"`
	AuctionDate     *time.Time `gorm:"column:auction_date;type:date" json:"auction_date"`
	UploadedBy      string     `gorm:"column:uploaded_by;type:varchar(100)" json:"uploaded_by"`
	TotalVehicles   int        `gorm:"column:total_vehicles;default:0" json:"total_vehicles"`
	MatchedVehicles int        `gorm:"column:matched_vehicles;default:0" json:"matched_vehicles"`
	Status          string     `gorm:"column:status;type:varchar(20);default:'uploaded';index" json:"status"`
	UploadedAt      time.Time  `gorm:"column:uploaded_at;autoCreateTime" json:"uploaded_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Runlist) TableName() string {
	return "runlists"
}
