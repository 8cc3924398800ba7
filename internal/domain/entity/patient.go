package entity

import (
	"strings"
	"time"
)

type BenefitGroup string

const (
	BenefitGroupNone        BenefitGroup = "none"
	BenefitGroupMilitary    BenefitGroup = "military"
	BenefitGroupElderly     BenefitGroup = "elderly"
	BenefitGroupDisabled    BenefitGroup = "disabled"
	BenefitGroupStaffFamily BenefitGroup = "staff_family"
)

var benefitDiscounts = map[BenefitGroup]int{
	BenefitGroupMilitary:    20,
	BenefitGroupElderly:     10,
	BenefitGroupDisabled:    5,
	BenefitGroupStaffFamily: 40,
}

// DiscountFor returns the discount percent granted to a benefit group. Unknown and empty
// groups get no discount.
func DiscountFor(group BenefitGroup) int {
	return benefitDiscounts[group]
}

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

type Patient struct {
	ID           int64        `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName    string       `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName     string       `gorm:"type:varchar(100);not null" json:"last_name"`
	MiddleName   string       `gorm:"type:varchar(100)" json:"middle_name,omitempty"`
	PhoneNumber  string       `gorm:"type:varchar(20);uniqueIndex;not null" json:"phone_number"`
	Email        string       `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	BirthDate    time.Time    `gorm:"type:date;not null" json:"birth_date"`
	Gender       Gender       `gorm:"type:varchar(10);not null" json:"gender"`
	BenefitGroup BenefitGroup `gorm:"type:varchar(20);not null;default:'none'" json:"benefit_group"`
	CreatedAt    time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Patient) TableName() string {
	return "patients"
}

func (p *Patient) FullName() string {
	return strings.TrimSpace(strings.Join([]string{p.LastName, p.FirstName, p.MiddleName}, " "))
}

func (p *Patient) DiscountPercent() int {
	return DiscountFor(p.BenefitGroup)
}
