package models

// CardHolder is a user-owned named set of helper references. HelperIDs are
// back-references only; helpers are never embedded or owned.
type CardHolder struct {
	ID        string   `firestore:"-" bson:"_id,omitempty" json:"id"`
	UserID    string   `firestore:"userId" bson:"userId" json:"userId"`
	Name      string   `firestore:"name" bson:"name" json:"name"`
	HelperIDs []string `firestore:"helperIds" bson:"helperIds" json:"helperIds"`
}

func (c *CardHolder) SetID(id string) { c.ID = id }
