package models

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Manufacturer is a company that supplies products. The contact reference is
// required and must resolve to an existing Contact after every successful
// write; the two documents are created, updated and deleted together.
type Manufacturer struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Country     string             `json:"country,omitempty" bson:"country,omitempty"`
	Website     string             `json:"website,omitempty" bson:"website,omitempty"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	Address     string             `json:"address,omitempty" bson:"address,omitempty"`
	ContactID   primitive.ObjectID `json:"-" bson:"contact"`

	// Contact is the joined contact document. Not stored on the
	// manufacturer; populated by the service layer.
	Contact *Contact `json:"contact,omitempty" bson:"-"`
}

// ManufacturerInput is the payload for creating a manufacturer together with
// its nested contact.
type ManufacturerInput struct {
	Name        string       `json:"name" validate:"required,min=2,max=100"`
	Country     string       `json:"country" validate:"omitempty,min=2,max=100"`
	Website     string       `json:"website" validate:"omitempty,url"`
	Description string       `json:"description" validate:"omitempty,max=500"`
	Address     string       `json:"address" validate:"omitempty,max=200"`
	Contact     ContactInput `json:"contact" validate:"required"`
}

func (in *ManufacturerInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Country = strings.TrimSpace(in.Country)
	in.Website = strings.TrimSpace(in.Website)
	in.Description = strings.TrimSpace(in.Description)
	in.Address = strings.TrimSpace(in.Address)
	in.Contact.Normalize()
}

// ToManufacturer builds the stored document from a validated input. The
// contact reference is attached by the service once the contact exists.
func (in ManufacturerInput) ToManufacturer(contactID primitive.ObjectID) *Manufacturer {
	return &Manufacturer{
		Name:        in.Name,
		Country:     in.Country,
		Website:     in.Website,
		Description: in.Description,
		Address:     in.Address,
		ContactID:   contactID,
	}
}

// ManufacturerPatch is a partial manufacturer update. The contact reference
// itself is never reassigned; a present Contact patch is applied to the
// already linked contact document.
type ManufacturerPatch struct {
	Name        *string       `json:"name" validate:"omitempty,min=2,max=100"`
	Country     *string       `json:"country" validate:"omitempty,min=2,max=100"`
	Website     *string       `json:"website" validate:"omitempty,url"`
	Description *string       `json:"description" validate:"omitempty,max=500"`
	Address     *string       `json:"address" validate:"omitempty,max=200"`
	Contact     *ContactPatch `json:"contact"`
}

func (p *ManufacturerPatch) Normalize() {
	p.Name = trimPtr(p.Name)
	p.Country = trimPtr(p.Country)
	p.Website = trimPtr(p.Website)
	p.Description = trimPtr(p.Description)
	p.Address = trimPtr(p.Address)
	if p.Contact != nil {
		p.Contact.Normalize()
		if p.Contact.IsEmpty() {
			p.Contact = nil
		}
	}
}
