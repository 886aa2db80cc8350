package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Worktime is a branch's opening hours.
type Worktime struct {
	From string `bson:"from" json:"from"`
	To   string `bson:"to" json:"to"`
}

// Branch is a physical store. Staffs holds user ids; a staff member belongs
// to at most one branch at a time. Orders holds back-links to pickup orders.
type Branch struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"_id,omitempty"`
	Name        string               `bson:"name" json:"name"`
	Address     string               `bson:"address" json:"address"`
	Location    string               `bson:"location" json:"location"`
	PhoneNumber string               `bson:"phoneNumber" json:"phoneNumber"`
	Worktime    Worktime             `bson:"worktime" json:"worktime"`
	Staffs      []primitive.ObjectID `bson:"staffs" json:"staffs"`
	Orders      []primitive.ObjectID `bson:"orders" json:"orders"`
}
