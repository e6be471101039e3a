package models

import (
	"time"
)

// User is a marketplace account as shown in the back office
type User struct {
	ID              string     `gorm:"primaryKey;column:id" firestore:"-" json:"id"`
	Name            string     `gorm:"not null;column:name" firestore:"name" json:"name"`
	Email           string     `gorm:"index;column:email" firestore:"email" json:"email"`
	Phone           string     `gorm:"column:phone" firestore:"phone,omitempty" json:"phone,omitempty"`
	Password        *string    `gorm:"column:password" firestore:"-" json:"-"`
	Role            Role       `gorm:"type:text;default:'user';column:role" firestore:"role" json:"role"`
	Status          UserStatus `gorm:"type:text;default:'active';column:status" firestore:"status" json:"status"`
	StaffRole       *StaffRole `gorm:"type:text;column:staffRole" firestore:"staffRole,omitempty" json:"staffRole,omitempty"`
	LTV             *float64   `gorm:"column:ltv" firestore:"ltv,omitempty" json:"ltv,omitempty"`
	Frequency       *float64   `gorm:"column:frequency" firestore:"frequency,omitempty" json:"frequency,omitempty"`
	EngagementScore *float64   `gorm:"column:engagementScore" firestore:"engagementScore,omitempty" json:"engagementScore,omitempty"`
	RiskFlag        *bool      `gorm:"column:riskFlag" firestore:"riskFlag,omitempty" json:"riskFlag,omitempty"`
	CreatedAt       time.Time  `gorm:"autoCreateTime;column:createdAt" firestore:"createdAt,omitempty" json:"createdAt"`
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "User"
}

// Restaurant is a User with marketplace performance metrics
type Restaurant struct {
	User               `gorm:"embedded"`
	Cuisine            string  `gorm:"column:cuisine" firestore:"cuisine,omitempty" json:"cuisine,omitempty"`
	Address            string  `gorm:"column:address" firestore:"address,omitempty" json:"address,omitempty"`
	GMV                float64 `gorm:"column:gmv" firestore:"gmv" json:"gmv"`
	MarginContribution float64 `gorm:"column:marginContribution" firestore:"marginContribution" json:"marginContribution"`
	ConversionRate     float64 `gorm:"column:conversionRate" firestore:"conversionRate" json:"conversionRate"`
	OrdersFromStories  int     `gorm:"column:ordersFromStories" firestore:"ordersFromStories" json:"ordersFromStories"`
	AdsSpend           float64 `gorm:"column:adsSpend" firestore:"adsSpend" json:"adsSpend"`
	DependencyIndex    float64 `gorm:"column:dependencyIndex" firestore:"dependencyIndex" json:"dependencyIndex"`
}

// TableName specifies the table name for Restaurant model
func (Restaurant) TableName() string {
	return "Restaurant"
}

// Dish is a menu item owned by a restaurant
type Dish struct {
	ID           string     `gorm:"primaryKey;column:id" json:"id"`
	RestaurantID string     `gorm:"index;not null;column:restaurantId" json:"restaurantId"`
	Name         string     `gorm:"not null;column:name" json:"name"`
	Description  string     `gorm:"column:description" json:"description"`
	Price        float64    `gorm:"not null;column:price" json:"price"`
	Category     string     `gorm:"column:category" json:"category"`
	Status       DishStatus `gorm:"type:text;default:'pending';column:status" json:"status"`
	RejectReason *string    `gorm:"column:rejectReason" json:"rejectReason,omitempty"`
	CreatedAt    time.Time  `gorm:"autoCreateTime;column:createdAt" json:"createdAt"`
}

// TableName specifies the table name for Dish model
func (Dish) TableName() string {
	return "Dish"
}

// SupportTicket is a customer support case with its message thread
type SupportTicket struct {
	ID            string          `gorm:"primaryKey;column:id" json:"id"`
	Subject       string          `gorm:"not null;column:subject" json:"subject"`
	CustomerName  string          `gorm:"column:customerName" json:"customerName"`
	CustomerEmail string          `gorm:"column:customerEmail" json:"customerEmail"`
	Priority      Priority        `gorm:"type:text;default:'medium';column:priority" json:"priority"`
	Status        TicketStatus    `gorm:"type:text;default:'open';column:status" json:"status"`
	CreatedAt     time.Time       `gorm:"autoCreateTime;column:createdAt" json:"createdAt"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime;column:updatedAt" json:"updatedAt"`
	Messages      []TicketMessage `gorm:"foreignKey:TicketID" json:"messages,omitempty"`
}

// TableName specifies the table name for SupportTicket model
func (SupportTicket) TableName() string {
	return "SupportTicket"
}

// TicketMessage is one entry in a support ticket thread
type TicketMessage struct {
	ID       int       `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	TicketID string    `gorm:"index;not null;column:ticketId" json:"ticketId"`
	Author   string    `gorm:"not null;column:author" json:"author"`
	FromUser bool      `gorm:"column:fromUser" json:"fromUser"`
	Body     string    `gorm:"not null;column:body" json:"body"`
	SentAt   time.Time `gorm:"autoCreateTime;column:sentAt" json:"sentAt"`
}

// TableName specifies the table name for TicketMessage model
func (TicketMessage) TableName() string {
	return "TicketMessage"
}

// StaffSecurity holds the TOTP enrolment of a staff account
type StaffSecurity struct {
	UID                string     `gorm:"primaryKey;column:uid" json:"uid"`
	TwoFactorSecret    *string    `gorm:"column:twoFactorSecret" json:"-"`
	TwoFactorEnabled   bool       `gorm:"default:false;column:twoFactorEnabled" json:"twoFactorEnabled"`
	TwoFactorEnabledAt *time.Time `gorm:"column:twoFactorEnabledAt" json:"twoFactorEnabledAt"`
}

// TableName specifies the table name for StaffSecurity model
func (StaffSecurity) TableName() string {
	return "StaffSecurity"
}

// DirectoryEntry is a document of the admin database `staff` or `mandar` collections
type DirectoryEntry struct {
	Email     string `firestore:"email"`
	Name      string `firestore:"name,omitempty"`
	Role      string `firestore:"role,omitempty"`
	StaffRole string `firestore:"staffRole,omitempty"`
	Phone     string `firestore:"phone,omitempty"`
}

// RegistrationRequest is a restaurant or rider signup, stored as a draft keyed by
// the account id and as a pending request under a fresh id once submitted
type RegistrationRequest struct {
	ID            string            `firestore:"-" json:"id"`
	Kind          RegistrationKind  `firestore:"kind" json:"kind"`
	Status        RequestStatus     `firestore:"status" json:"status"`
	OwnerUID      string            `firestore:"ownerUid" json:"ownerUid"`
	Email         string            `firestore:"email" json:"email"`
	FirstName     string            `firestore:"firstName,omitempty" json:"firstName,omitempty"`
	LastName      string            `firestore:"lastName,omitempty" json:"lastName,omitempty"`
	Phone         string            `firestore:"phone,omitempty" json:"phone,omitempty"`
	BusinessName  string            `firestore:"businessName,omitempty" json:"businessName,omitempty"`
	Cuisine       string            `firestore:"cuisine,omitempty" json:"cuisine,omitempty"`
	Address       string            `firestore:"address,omitempty" json:"address,omitempty"`
	Latitude      float64           `firestore:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude     float64           `firestore:"longitude,omitempty" json:"longitude,omitempty"`
	VehicleType   string            `firestore:"vehicleType,omitempty" json:"vehicleType,omitempty"`
	VehiclePlate  string            `firestore:"vehiclePlate,omitempty" json:"vehiclePlate,omitempty"`
	LicenseNumber string            `firestore:"licenseNumber,omitempty" json:"licenseNumber,omitempty"`
	Documents     map[string]string `firestore:"documents,omitempty" json:"documents,omitempty"`
	FCMToken      string            `firestore:"fcmToken,omitempty" json:"-"`
	ReviewNote    string            `firestore:"reviewNote,omitempty" json:"reviewNote,omitempty"`
	RequestID     string            `firestore:"requestId,omitempty" json:"requestId,omitempty"`
	CreatedAt     time.Time         `firestore:"createdAt,omitempty" json:"createdAt"`
	UpdatedAt     time.Time         `firestore:"updatedAt,omitempty" json:"updatedAt"`
	SubmittedAt   *time.Time        `firestore:"submittedAt,omitempty" json:"submittedAt,omitempty"`
}
