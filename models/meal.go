package models

import "time"

type MealType string

const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeDinner    MealType = "dinner"
	MealTypeSnack     MealType = "snack"
)

// Meal is a recipe from the catalog. Calories is the declared value for one portion.
type Meal struct {
	ID           string            `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title        string            `gorm:"size:60;not null" json:"title"`
	Description  string            `gorm:"type:text" json:"description"`
	Calories     int               `gorm:"not null" json:"calories"`
	Aliments     []MealAliment     `gorm:"foreignKey:MealID;constraint:OnDelete:CASCADE" json:"aliments"`
	Preparations []MealPreparation `gorm:"foreignKey:MealID;constraint:OnDelete:CASCADE" json:"preparations"`
	Equipments   []MealEquipment   `gorm:"foreignKey:MealID;constraint:OnDelete:CASCADE" json:"equipments"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

func (Meal) TableName() string { return "meals" }

// TotalPreparationTime sums the estimated minutes of every linked step.
func (m *Meal) TotalPreparationTime() int {
	total := 0
	for _, p := range m.Preparations {
		if p.Preparation != nil {
			total += p.Preparation.EstimatedTime
		}
	}
	return total
}

// MealAliment links an aliment to a meal. Quantity is in grams.
type MealAliment struct {
	MealID    string   `gorm:"type:varchar(36);primaryKey" json:"mealId"`
	AlimentID string   `gorm:"type:varchar(36);primaryKey" json:"alimentId"`
	Quantity  float64  `gorm:"not null" json:"quantity"`
	Aliment   *Aliment `gorm:"foreignKey:AlimentID" json:"aliment,omitempty"`
}

func (MealAliment) TableName() string { return "meal_aliments" }

type MealPreparation struct {
	MealID        string       `gorm:"type:varchar(36);primaryKey" json:"mealId"`
	PreparationID string       `gorm:"type:varchar(36);primaryKey" json:"preparationId"`
	Order         int          `gorm:"column:position;not null" json:"order"`
	Preparation   *Preparation `gorm:"foreignKey:PreparationID" json:"preparation,omitempty"`
}

func (MealPreparation) TableName() string { return "meal_preparations" }

type MealEquipment struct {
	MealID      string     `gorm:"type:varchar(36);primaryKey" json:"mealId"`
	EquipmentID string     `gorm:"type:varchar(36);primaryKey" json:"equipmentId"`
	Equipment   *Equipment `gorm:"foreignKey:EquipmentID" json:"equipment,omitempty"`
}

func (MealEquipment) TableName() string { return "meal_equipments" }
