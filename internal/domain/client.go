package domain

import "time"

// Client a person or company the office represents (clients table)
type Client struct {
	ID        string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	FullName  string    `gorm:"column:full_name;size:200" json:"full_name"`
	CpfCnpj   string    `gorm:"column:cpf_cnpj;size:20;uniqueIndex" json:"cpf_cnpj"`
	Phone     string    `gorm:"column:phone;size:30" json:"phone"`
	Email     string    `gorm:"column:email;size:255;uniqueIndex" json:"email"`
	Address   string    `gorm:"column:address;size:500" json:"address"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`

	// who registered the client
	CreatedByID string `gorm:"column:created_by_id;type:uuid;index" json:"created_by_id"`
	CreatedBy   *User  `gorm:"foreignKey:CreatedByID" json:"-"`
}

func (Client) TableName() string {
	return "clients"
}

// CreateClientRequest create/update payload for clients
type CreateClientRequest struct {
	FullName string `json:"full_name" binding:"required"`
	CpfCnpj  string `json:"cpf_cnpj" binding:"required"`
	Phone    string `json:"phone"`
	Email    string `json:"email" binding:"required,email"`
	Address  string `json:"address"`
}

// ClientResponse represents a client in API responses
type ClientResponse struct {
	ID            string    `json:"id"`
	FullName      string    `json:"full_name"`
	CpfCnpj       string    `json:"cpf_cnpj"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	Address       string    `json:"address"`
	CreatedAt     time.Time `json:"created_at"`
	CreatedByID   string    `json:"created_by_id"`
	CreatedByName string    `json:"created_by_name,omitempty"`
}

// ToResponse converts Client to ClientResponse
func (c *Client) ToResponse() *ClientResponse {
	resp := &ClientResponse{
		ID:          c.ID,
		FullName:    c.FullName,
		CpfCnpj:     c.CpfCnpj,
		Phone:       c.Phone,
		Email:       c.Email,
		Address:     c.Address,
		CreatedAt:   c.CreatedAt,
		CreatedByID: c.CreatedByID,
	}
	if c.CreatedBy != nil {
		resp.CreatedByName = c.CreatedBy.Name
	}
	return resp
}
