package dto

import (
	"time"

	"github.com/xiebiao/grocery/internal/domain/address"
)

// AddressRequest 新增/修改地址
type AddressRequest struct {
	FullName     string `json:"full_name" binding:"required,max=100"`
	Phone        string `json:"phone" binding:"required,max=20"`
	AddressLine1 string `json:"address_line1" binding:"required,max=200"`
	AddressLine2 string `json:"address_line2" binding:"omitempty,max=200"`
	City         string `json:"city" binding:"required,max=50"`
	State        string `json:"state" binding:"required,max=50"`
	Pincode      string `json:"pincode" binding:"required,max=10"`
	AddressType  string `json:"address_type" binding:"omitempty,oneof=HOME WORK OTHER home work other" example:"HOME"`
	IsDefault    bool   `json:"is_default"`
}

func (r AddressRequest) ToFields() address.Fields {
	return address.Fields{
		FullName:     r.FullName,
		Phone:        r.Phone,
		AddressLine1: r.AddressLine1,
		AddressLine2: r.AddressLine2,
		City:         r.City,
		State:        r.State,
		Pincode:      r.Pincode,
		Type:         r.AddressType,
		IsDefault:    r.IsDefault,
	}
}

type AddressResponse struct {
	ID           uint      `json:"id"`
	FullName     string    `json:"full_name"`
	Phone        string    `json:"phone"`
	AddressLine1 string    `json:"address_line1"`
	AddressLine2 string    `json:"address_line2,omitempty"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	Pincode      string    `json:"pincode"`
	AddressType  string    `json:"address_type"`
	IsDefault    bool      `json:"is_default"`
	CreatedAt    time.Time `json:"created_at"`
}

func ToAddressResponse(a *address.Address) *AddressResponse {
	return &AddressResponse{
		ID:           a.ID,
		FullName:     a.FullName,
		Phone:        a.Phone,
		AddressLine1: a.AddressLine1,
		AddressLine2: a.AddressLine2,
		City:         a.City,
		State:        a.State,
		Pincode:      a.Pincode,
		AddressType:  string(a.Type),
		IsDefault:    a.IsDefault,
		CreatedAt:    a.CreatedAt,
	}
}

func ToAddressList(list []*address.Address) []*AddressResponse {
	out := make([]*AddressResponse, len(list))
	for i, a := range list {
		out[i] = ToAddressResponse(a)
	}
	return out
}
