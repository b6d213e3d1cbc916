package entities

import "time"

// Patient is a row of the patient directory
type Patient struct {
	PatientKey int64      `gorm:"column:PatientKey;primaryKey;autoIncrement"`
	PatientId  string     `gorm:"column:PatientId;type:nvarchar(64)"`
	FirstName  string     `gorm:"column:FirstName;type:nvarchar(100)"`
	LastName   string     `gorm:"column:LastName;type:nvarchar(100)"`
	BirthDate  *time.Time `gorm:"column:BirthDate;type:date"`
	Phone      *string    `gorm:"column:Phone;type:nvarchar(32)"`
	Email      *string    `gorm:"column:Email;type:nvarchar(255)"`
}

// TableName especifica o nome da tabela no banco
func (Patient) TableName() string {
	return "dbo.Patients"
}
