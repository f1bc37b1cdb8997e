package entity

import "time"

// Dog is a boarded dog. OwnerName and OwnerPhone are the deprecated embedded
// owner fields from before customers were their own collection; a dog carries
// either those or a CustomerID, never both. The migrator removes the legacy
// pair on first sight.
type Dog struct {
	ID         string    `bson:"id" json:"id"`
	Name       string    `bson:"name" json:"name"`
	DailyPrice float64   `bson:"dailyPrice" json:"dailyPrice"`
	CustomerID string    `bson:"customerId,omitempty" json:"customerId,omitempty"`
	VetPhone   string    `bson:"vetPhone,omitempty" json:"vetPhone,omitempty"`
	Birthday   string    `bson:"birthday,omitempty" json:"birthday,omitempty"`
	Notes      string    `bson:"notes,omitempty" json:"notes,omitempty"`
	PhotoURL   string    `bson:"photoUrl,omitempty" json:"photoUrl,omitempty"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`

	OwnerName  string `bson:"ownerName,omitempty" json:"ownerName,omitempty"`
	OwnerPhone string `bson:"ownerPhone,omitempty" json:"ownerPhone,omitempty"`
}

// HasLegacyOwner reports whether the dog still embeds owner contact details.
func (d Dog) HasLegacyOwner() bool {
	return d.OwnerName != "" || d.OwnerPhone != ""
}
