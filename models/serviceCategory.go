package models

// ServiceCategory is a user-extensible service type such as "Plumbing".
type ServiceCategory struct {
	ID            string   `firestore:"-" bson:"_id,omitempty" json:"id"`
	Name          string   `firestore:"name" bson:"name" json:"name"`
	Subcategories []string `firestore:"subcategories" bson:"subcategories" json:"subcategories"`
}

func (c *ServiceCategory) SetID(id string) { c.ID = id }
