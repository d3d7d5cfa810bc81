package models

import "time"

// Aliment is a catalog ingredient. Calories and macro quantities are per 100 g.
type Aliment struct {
	ID        string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name      string         `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Cal100g   int            `gorm:"column:cal_100g;not null" json:"cal_100g"`
	Macros    []AlimentMacro `gorm:"foreignKey:AlimentID;constraint:OnDelete:CASCADE" json:"macros,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

func (Aliment) TableName() string { return "aliments" }

// AlimentMacro is the quantity (grams per 100 g of aliment) of one macro.
type AlimentMacro struct {
	AlimentID string  `gorm:"type:varchar(36);primaryKey" json:"alimentId"`
	MacroID   string  `gorm:"type:varchar(36);primaryKey" json:"macroId"`
	Quantity  float64 `gorm:"not null" json:"quantity"`
	Macro     *Macro  `gorm:"foreignKey:MacroID" json:"macro,omitempty"`
}

func (AlimentMacro) TableName() string { return "aliment_macros" }

type Macro struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name      string    `gorm:"size:30;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Macro) TableName() string { return "macros" }

type Equipment struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name      string    `gorm:"size:40;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Equipment) TableName() string { return "equipments" }

// Preparation is a reusable recipe step. EstimatedTime is in minutes.
type Preparation struct {
	ID            string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Step          int       `gorm:"not null" json:"step"`
	Description   string    `gorm:"size:200;not null" json:"description"`
	EstimatedTime int       `gorm:"not null" json:"estimatedTime"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (Preparation) TableName() string { return "preparations" }
