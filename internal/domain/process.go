package domain

import "time"

// Process statuses used by the office
const (
	ProcessStatusActive   = "Em Andamento"
	ProcessStatusOngoing  = "Ativo"
	ProcessStatusArchived = "Arquivado"
	ProcessStatusFinished = "Finalizado"
)

// Process a legal case (processes table)
type Process struct {
	ID          string     `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Number      string     `gorm:"column:number;size:25;uniqueIndex" json:"number"` // unified CNJ process number
	Title       string     `gorm:"column:title;size:200" json:"title"`
	Description string     `gorm:"column:description;size:1000" json:"description"`
	Status      string     `gorm:"column:status;size:50" json:"status"`
	OpenedAt    time.Time  `gorm:"column:opened_at" json:"opened_at"`
	ClosedAt    *time.Time `gorm:"column:closed_at" json:"closed_at,omitempty"`

	ClientID string  `gorm:"column:client_id;type:uuid;index" json:"client_id"`
	Client   *Client `gorm:"foreignKey:ClientID" json:"-"`

	ResponsibleUserID string `gorm:"column:responsible_user_id;type:uuid;index" json:"responsible_user_id"`
	ResponsibleUser   *User  `gorm:"foreignKey:ResponsibleUserID" json:"-"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Process) TableName() string {
	return "processes"
}

// CreateProcessRequest create payload for processes
type CreateProcessRequest struct {
	Number      string    `json:"number" binding:"required,max=25"`
	Title       string    `json:"title" binding:"required,max=200"`
	Description string    `json:"description" binding:"max=1000"`
	Status      string    `json:"status"`
	OpenedAt    time.Time `json:"opened_at"`
	ClientID    string    `json:"client_id" binding:"required"`
}

// UpdateProcessRequest update payload for processes
type UpdateProcessRequest struct {
	Title       string     `json:"title" binding:"required,max=200"`
	Description string     `json:"description" binding:"max=1000"`
	Status      string     `json:"status" binding:"required"`
	ClosedAt    *time.Time `json:"closed_at"`
}

// ProcessResponse represents a process in API responses
type ProcessResponse struct {
	ID                  string     `json:"id"`
	Number              string     `json:"number"`
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	Status              string     `json:"status"`
	OpenedAt            time.Time  `json:"opened_at"`
	ClosedAt            *time.Time `json:"closed_at,omitempty"`
	ClientID            string     `json:"client_id"`
	ClientName          string     `json:"client_name,omitempty"`
	ResponsibleUserID   string     `json:"responsible_user_id"`
	ResponsibleUserName string     `json:"responsible_user_name,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// ToResponse converts Process to ProcessResponse
func (p *Process) ToResponse() *ProcessResponse {
	resp := &ProcessResponse{
		ID:                p.ID,
		Number:            p.Number,
		Title:             p.Title,
		Description:       p.Description,
		Status:            p.Status,
		OpenedAt:          p.OpenedAt,
		ClosedAt:          p.ClosedAt,
		ClientID:          p.ClientID,
		ResponsibleUserID: p.ResponsibleUserID,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
	if p.Client != nil {
		resp.ClientName = p.Client.FullName
	}
	if p.ResponsibleUser != nil {
		resp.ResponsibleUserName = p.ResponsibleUser.Name
	}
	return resp
}
