package models

import "time"

// Helper is a service-provider profile card in the directory.
type Helper struct {
	ID          string   `firestore:"-" bson:"_id,omitempty" json:"id"` // Assigned by the store on create.
	Name        string   `firestore:"name" bson:"name" json:"name"`
	Title       string   `firestore:"title" bson:"title" json:"title"`
	Email       string   `firestore:"email,omitempty" bson:"email,omitempty" json:"email,omitempty"`
	Contact     string   `firestore:"contact,omitempty" bson:"contact,omitempty" json:"contact,omitempty"`
	Avatar      string   `firestore:"avatar" bson:"avatar" json:"avatar"` // Image URL.
	Banner      string   `firestore:"banner" bson:"banner" json:"banner"` // Image URL.
	Info        string   `firestore:"info" bson:"info" json:"info"`
	Description string   `firestore:"description" bson:"description" json:"description"`
	Rating      float64  `firestore:"rating" bson:"rating" json:"rating"` // Average, 1..5.
	RatingCount int      `firestore:"ratingCount" bson:"ratingCount" json:"ratingCount"`
	Category    string   `firestore:"category" bson:"category" json:"category"`
	Tags        []string `firestore:"tags" bson:"tags" json:"tags"`
	Zipcodes    []string `firestore:"zipcodes" bson:"zipcodes" json:"zipcodes"`
	Reviews     []Review `firestore:"reviews" bson:"reviews" json:"reviews"`
}

func (h *Helper) SetID(id string) { h.ID = id }

// Review is a single rating left on a helper. Reviews are kept in insertion order.
type Review struct {
	ReviewID       string    `firestore:"reviewId" bson:"reviewId" json:"reviewId"`
	ReviewerUserID string    `firestore:"reviewerUserId" bson:"reviewerUserId" json:"reviewerUserId"`
	Rating         int       `firestore:"rating" bson:"rating" json:"rating"` // 1..5 stars.
	Comment        string    `firestore:"comment,omitempty" bson:"comment,omitempty" json:"comment,omitempty"`
	Photos         []string  `firestore:"photos,omitempty" bson:"photos,omitempty" json:"photos,omitempty"`
	CreatedAt      time.Time `firestore:"createdAt" bson:"createdAt" json:"createdAt"`
}
