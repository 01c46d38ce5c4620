package models

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Contact is a person reachable for a manufacturer. A contact is owned by
// exactly one manufacturer and is only ever written through the manufacturer
// composite operations.
type Contact struct {
	ID    primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name  string             `json:"name" bson:"name"`
	Email string             `json:"email" bson:"email"`
	Phone string             `json:"phone,omitempty" bson:"phone,omitempty"`
}

// ContactInput is the payload for creating a contact as part of a
// manufacturer creation.
type ContactInput struct {
	Name  string `json:"name" validate:"required,min=2,max=50"`
	Email string `json:"email" validate:"required,email,max=100"`
	Phone string `json:"phone" validate:"omitempty,min=7,max=20"`
}

// Normalize trims string fields before validation. An empty phone is treated
// as absent.
func (in *ContactInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
}

// ToContact builds the stored document from a validated input.
func (in ContactInput) ToContact() *Contact {
	return &Contact{Name: in.Name, Email: in.Email, Phone: in.Phone}
}

// ContactPatch is a partial contact update. Nil fields are left untouched.
type ContactPatch struct {
	Name  *string `json:"name" validate:"omitempty,min=2,max=50"`
	Email *string `json:"email" validate:"omitempty,email,max=100"`
	Phone *string `json:"phone" validate:"omitempty,min=7,max=20"`
}

// Normalize trims present fields and drops fields that trim to the empty
// string, so an empty string behaves like an absent field.
func (p *ContactPatch) Normalize() {
	p.Name = trimPtr(p.Name)
	p.Email = trimPtr(p.Email)
	p.Phone = trimPtr(p.Phone)
}

// IsEmpty reports whether the patch carries no fields.
func (p ContactPatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.Phone == nil
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
